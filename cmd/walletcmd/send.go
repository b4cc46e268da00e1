// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package walletcmd

import (
	"strings"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/units"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/luxfi/launchpad/pkg/wizard"
	"github.com/spf13/cobra"
)

var (
	sendKey    string
	sendTo     string
	sendAmount string
	sendMemo   string
	sendYes    bool
	sendWait   bool
	sendDryRun bool
)

// launchpad wallet send
func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send CNPY to an address",
		Long: `The wallet send command transfers CNPY on the main chain. The fee is
estimated before you confirm and the amount is checked against your balance
including that fee. Amounts accept up to 6 decimals.

Missing values are prompted for. Pass --yes to skip the confirmation when
running non-interactively, --wait to block until the transfer is included,
and --dry-run to print the signed transaction without submitting it.`,
		Args: cobrautils.ExactArgs(0),
		RunE: send,
	}
	flags.AddKeyFlag(cmd, &sendKey, "send")
	cmd.Flags().StringVar(&sendTo, "to", "", "recipient address")
	cmd.Flags().StringVarP(&sendAmount, "amount", "a", "", "amount of CNPY to send")
	cmd.Flags().StringVar(&sendMemo, "memo", "", "memo attached to the transfer")
	flags.AddYesFlag(cmd, &sendYes)
	flags.AddWaitFlag(cmd, &sendWait)
	cmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "build and sign the transfer but do not submit it")
	return cmd
}

func send(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	info, err := app.ResolveKey(ctx, sendKey, "send")
	if err != nil {
		return err
	}
	if err := prompts.NewValidator("launchpad wallet send").Require(&sendTo, prompts.MissingOpt{
		Flag:   "--to",
		Prompt: "Recipient address",
	}).Resolve(app.Prompt); err != nil {
		return err
	}
	sendTo = strings.TrimSpace(sendTo)
	if err := prompts.ValidateAddress(sendTo); err != nil {
		return err
	}

	if sendDryRun {
		return dryRun(cmd, info)
	}

	available, err := app.Available(ctx, info.Address)
	if err != nil {
		return err
	}
	op := application.NewOperation(wizard.OpSend, info)
	op.To = sendTo
	op.ChainID = chainid.ID(constants.MainChainID)
	op.Available = available
	op.Memo = sendMemo
	st, err := app.RunWizard(ctx, op, sendAmount, sendYes)
	if err != nil || !sendWait {
		return err
	}
	return app.WaitForInclusion(ctx, st)
}

func dryRun(cmd *cobra.Command, info wallet.Info) error {
	if err := prompts.NewValidator("launchpad wallet send --dry-run").Require(&sendAmount, prompts.MissingOpt{
		Flag:   "--amount",
		Prompt: "Amount of CNPY",
	}).Resolve(app.Prompt); err != nil {
		return err
	}
	amount, err := units.ToMicroUnits(sendAmount)
	if err != nil {
		return err
	}
	signed, err := app.BuildSend(cmd.Context(), info, sendTo, amount, sendMemo)
	if err != nil {
		return err
	}
	if err := ux.Encode(ux.Logger.Writer(), ux.FormatJSON, signed); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Signature verified, transaction %s not submitted", signed.ID)
	return nil
}
