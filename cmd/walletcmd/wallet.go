// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package walletcmd

import (
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Launchpad

// NewCmd creates the wallet command suite
func NewCmd(injectedApp *application.Launchpad) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Send CNPY and inspect balances",
		Long: `The wallet command suite sends CNPY from a stored key, shows the balances
of your keys and lists the transactions this machine has submitted.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	// launchpad wallet send
	cmd.AddCommand(newSendCmd())
	// launchpad wallet balance
	cmd.AddCommand(newBalanceCmd())
	// launchpad wallet history
	cmd.AddCommand(newHistoryCmd())
	return cmd
}
