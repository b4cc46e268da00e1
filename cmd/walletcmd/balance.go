// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package walletcmd

import (
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/spf13/cobra"
)

var (
	balanceKey    string
	balanceOutput string
)

// launchpad wallet balance
func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show balances and stake of your keys",
		Long: `The wallet balance command prints the liquid balance, the staked amount and
their value for every stored key, or only the one named by --key.`,
		Args: cobrautils.ExactArgs(0),
		RunE: balance,
	}
	flags.AddKeyFlag(cmd, &balanceKey, "show")
	flags.AddOutputFlag(cmd, &balanceOutput)
	return cmd
}

func balance(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, err := flags.ResolveOutput(app, balanceOutput)
	if err != nil {
		return err
	}
	var keys []wallet.Info
	if balanceKey != "" {
		info, err := app.Keystore().Get(balanceKey)
		if err != nil {
			return err
		}
		keys = []wallet.Info{info}
	} else if keys, err = app.Keystore().List(ctx); err != nil {
		return err
	}
	if len(keys) == 0 {
		ux.Logger.PrintToUser("No keys found. Create one with 'launchpad key create <name>'.")
		return nil
	}

	addresses := make([]string, len(keys))
	for i, k := range keys {
		addresses[i] = k.Address
	}
	overview, err := app.Backend().GetPortfolioOverview(ctx, addresses)
	if err != nil {
		return err
	}
	return flags.Render(ux.Logger.Writer(), format, overview, func(w io.Writer) error {
		return ux.PortfolioTable(w, overview)
	})
}
