// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"strconv"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/wizard"
	"github.com/spf13/cobra"
)

var (
	unstakeKey     string
	unstakeChain   string
	unstakePercent int
	unstakeYes     bool
	unstakeWait    bool
)

// launchpad stake unstake
func newUnstakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstake",
		Short: "Move a stake into the unbonding queue",
		Long: `The stake unstake command unstakes the whole position on a chain, or the
given --percent of it. The amount enters the unbonding queue and can be
claimed once its blocks have passed.`,
		Args: cobrautils.ExactArgs(0),
		RunE: unstake,
	}
	flags.AddKeyFlag(cmd, &unstakeKey, "unstake")
	cmd.Flags().StringVar(&unstakeChain, "chain", "", "chain id of the stake")
	cmd.Flags().IntVar(&unstakePercent, "percent", 100, "percentage of the stake to unstake")
	flags.AddYesFlag(cmd, &unstakeYes)
	flags.AddWaitFlag(cmd, &unstakeWait)
	return cmd
}

func unstake(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := prompts.ValidatePercent(unstakePercent); err != nil {
		return err
	}
	info, err := app.ResolveKey(ctx, unstakeKey, "unstake")
	if err != nil {
		return err
	}
	if err := prompts.NewValidator("launchpad stake unstake").Require(&unstakeChain, prompts.MissingOpt{
		Flag:   "--chain",
		Prompt: "Chain id of the stake",
	}).Resolve(app.Prompt); err != nil {
		return err
	}
	id, err := parseChainID(unstakeChain)
	if err != nil {
		return err
	}
	pos, err := findPosition(ctx, info.Address, id)
	if err != nil {
		return err
	}
	available, err := app.Available(ctx, info.Address)
	if err != nil {
		return err
	}

	kind, preset := wizard.OpUnstake, ""
	if unstakePercent < 100 {
		kind, preset = wizard.OpUnstakePartial, strconv.Itoa(unstakePercent)
	}
	op := application.NewOperation(kind, info)
	op.ChainID = id
	op.Available = available
	op.CurrentlyStaked = pos.Amount
	st, err := app.RunWizard(ctx, op, preset, unstakeYes)
	if err != nil || !unstakeWait {
		return err
	}
	return app.WaitForInclusion(ctx, st)
}
