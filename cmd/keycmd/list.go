// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var listOutput string

// launchpad key list
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobrautils.ExactArgs(0),
		RunE:  listKeys,
	}
	flags.AddOutputFlag(cmd, &listOutput)
	return cmd
}

func listKeys(cmd *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, listOutput)
	if err != nil {
		return err
	}
	keys, err := app.Keystore().List(cmd.Context())
	if err != nil {
		return err
	}
	if len(keys) == 0 && format == ux.FormatTable {
		ux.Logger.PrintToUser("No keys found. Create one with 'launchpad key create <name>'.")
		return nil
	}
	return flags.Render(ux.Logger.Writer(), format, keys, func(w io.Writer) error {
		return ux.KeysTable(w, keys)
	})
}
