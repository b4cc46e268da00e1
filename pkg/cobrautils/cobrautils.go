// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cobrautils holds argument validators and help helpers shared by
// every command.
package cobrautils

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CommandSuiteUsage is the RunE of a command that only groups subcommands.
// An unknown subcommand is an error; no arguments prints help.
func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q\nRun '%s --help' for usage", args[0], cmd.CommandPath(), cmd.CommandPath())
	}
	return cmd.Help()
}

// ExactArgs is cobra.ExactArgs with the usage line in the error.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError(cmd, fmt.Sprintf("requires exactly %d %s, received %d", n, plural(n), len(args)))
		}
		return nil
	}
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageError(cmd, fmt.Sprintf("accepts at most %d %s, received %d", n, plural(n), len(args)))
		}
		return nil
	}
}

func plural(n int) string {
	if n == 1 {
		return "arg"
	}
	return "args"
}

func usageError(cmd *cobra.Command, msg string) error {
	return fmt.Errorf("%s\nUsage: %s", msg, strings.TrimSpace(cmd.UseLine()))
}
