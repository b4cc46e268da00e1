// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	listKey    string
	listOutput string
)

// launchpad stake list
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staking positions",
		Args:  cobrautils.ExactArgs(0),
		RunE:  listPositions,
	}
	flags.AddKeyFlag(cmd, &listKey, "list positions for")
	flags.AddOutputFlag(cmd, &listOutput)
	return cmd
}

func listPositions(cmd *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, listOutput)
	if err != nil {
		return err
	}
	info, err := app.ResolveKey(cmd.Context(), listKey, "list positions for")
	if err != nil {
		return err
	}
	positions, err := app.Positions(cmd.Context(), info.Address)
	if err != nil {
		return err
	}
	if len(positions) == 0 && format == ux.FormatTable {
		ux.Logger.PrintToUser("No positions for %s.", info.Name)
		return nil
	}
	return flags.Render(ux.Logger.Writer(), format, positions, func(w io.Writer) error {
		return ux.PositionsTable(w, positions)
	})
}
