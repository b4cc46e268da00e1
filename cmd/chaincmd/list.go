// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package chaincmd

import (
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	listFilter filterFlags
	listOutput string
)

// launchpad chains list
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List launches",
		Long: `The chains list command prints launches with their graduation progress and
pool figures. Results can be filtered by status, searched by name or symbol,
and sorted by any of the listing keys.`,
		Args: cobrautils.ExactArgs(0),
		RunE: listChains,
	}
	flags.AddOutputFlag(cmd, &listOutput)
	group := addFilterFlags(cmd, &listFilter, 20)
	flags.SetGroupedUsage(cmd, group)
	return cmd
}

func listChains(cmd *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, listOutput)
	if err != nil {
		return err
	}
	list, err := listFilter.load(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 && format == ux.FormatTable {
		ux.Logger.PrintToUser("No chains match.")
		return nil
	}
	return flags.Render(ux.Logger.Writer(), format, list, func(w io.Writer) error {
		return ux.ChainsTable(w, list)
	})
}
