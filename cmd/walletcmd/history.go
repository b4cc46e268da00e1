// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package walletcmd

import (
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	historyKey    string
	historyLimit  int
	historyOutput string
)

// launchpad wallet history
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions submitted from this machine",
		Long: `The wallet history command lists the transactions recorded in the local
history database for a key, newest first. Failed submissions are included
with their error.`,
		Args: cobrautils.ExactArgs(0),
		RunE: history,
	}
	flags.AddKeyFlag(cmd, &historyKey, "list history for")
	flags.AddOutputFlag(cmd, &historyOutput)
	cmd.Flags().IntVarP(&historyLimit, "limit", "l", 50, "maximum number of transactions")
	return cmd
}

func history(cmd *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, historyOutput)
	if err != nil {
		return err
	}
	info, err := app.ResolveKey(cmd.Context(), historyKey, "list history for")
	if err != nil {
		return err
	}
	records, err := app.Recorder().ListTransactions(info.Address, historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 && format == ux.FormatTable {
		ux.Logger.PrintToUser("No transactions recorded for %s.", info.Name)
		return nil
	}
	return flags.Render(ux.Logger.Writer(), format, records, func(w io.Writer) error {
		return ux.HistoryTable(w, records)
	})
}
