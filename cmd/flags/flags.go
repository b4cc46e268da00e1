// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	OutputFlag = "output"
	KeyFlag    = "key"
	YesFlag    = "yes"
	WaitFlag   = "wait"
)

// GroupedFlags is a named set of flags shown under its own heading in help.
type GroupedFlags struct {
	Name string
	Set  *pflag.FlagSet
}

// RegisterFlagGroup adds the flags registered by fn to cmd and returns the
// group so it can be rendered separately by SetGroupedUsage.
func RegisterFlagGroup(cmd *cobra.Command, name string, fn func(set *pflag.FlagSet)) GroupedFlags {
	set := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fn(set)
	cmd.Flags().AddFlagSet(set)
	return GroupedFlags{Name: name, Set: set}
}

// SetGroupedUsage prints ungrouped flags first and then each group under
// its heading.
func SetGroupedUsage(cmd *cobra.Command, groups ...GroupedFlags) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		grouped := map[string]bool{}
		for _, g := range groups {
			g.Set.VisitAll(func(f *pflag.Flag) { grouped[f.Name] = true })
		}
		rest := pflag.NewFlagSet("rest", pflag.ContinueOnError)
		c.LocalFlags().VisitAll(func(f *pflag.Flag) {
			if !grouped[f.Name] {
				rest.AddFlag(f)
			}
		})

		w := c.OutOrStderr()
		fmt.Fprintf(w, "Usage:\n  %s\n", c.UseLine())
		if rest.HasFlags() {
			fmt.Fprintf(w, "\nFlags:\n%s", rest.FlagUsages())
		}
		for _, g := range groups {
			fmt.Fprintf(w, "\n%s:\n%s", g.Name, g.Set.FlagUsages())
		}
		if c.HasAvailableInheritedFlags() {
			fmt.Fprintf(w, "\nGlobal Flags:\n%s", c.InheritedFlags().FlagUsages())
		}
		return nil
	})
}

// AddOutputFlag registers --output. An empty value defers to the output
// config key.
func AddOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, OutputFlag, "o", "", "output format: table, json or yaml")
}

// AddKeyFlag registers --key, the stored key a command acts for.
func AddKeyFlag(cmd *cobra.Command, target *string, goal string) {
	cmd.Flags().StringVarP(target, KeyFlag, "k", "", fmt.Sprintf("name of the key used to %s", goal))
}

// AddYesFlag registers --yes, which skips the final confirmation.
func AddYesFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, YesFlag, "y", false, "confirm without asking")
}

// AddWaitFlag registers --wait, which blocks until a submitted transaction
// is included.
func AddWaitFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, WaitFlag, false, "wait until the transaction is included in a block")
}

// ResolveOutput parses the --output value, falling back to config.
func ResolveOutput(app *application.Launchpad, value string) (ux.OutputFormat, error) {
	if strings.TrimSpace(value) == "" && app != nil && app.Conf != nil {
		value = app.Conf.Output()
	}
	return ux.ParseOutputFormat(value)
}

// Render encodes v for json and yaml and calls table otherwise.
func Render(w io.Writer, format ux.OutputFormat, v any, table func(io.Writer) error) error {
	if format == ux.FormatTable {
		return table(w)
	}
	return ux.Encode(w, format, v)
}
