// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"fmt"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/wizard"
	"github.com/spf13/cobra"
)

var editFlags stakeFlags

// launchpad stake edit
func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Raise a stake or change its committees",
		Long: `The stake edit command replaces the amount of an existing stake. The new
amount cannot be lower than the current stake; use 'stake unstake' to
reduce it. Committees and auto-compound keep their current values unless
given.`,
		Args: cobrautils.ExactArgs(0),
		RunE: editStake,
	}
	addStakeFlags(cmd, &editFlags, "edit the stake")
	return cmd
}

func editStake(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	info, err := app.ResolveKey(ctx, editFlags.key, "edit the stake")
	if err != nil {
		return err
	}
	if err := prompts.NewValidator("launchpad stake edit").Require(&editFlags.chain, prompts.MissingOpt{
		Flag:   "--chain",
		Prompt: "Chain id of the stake",
	}).Resolve(app.Prompt); err != nil {
		return err
	}
	id, err := parseChainID(editFlags.chain)
	if err != nil {
		return err
	}
	pos, err := findPosition(ctx, info.Address, id)
	if err != nil {
		return err
	}

	committees := withoutChain(pos.Committees, id)
	switch {
	case cmd.Flags().Changed("committees"):
		if committees, err = parseCommittees(editFlags.committees, id); err != nil {
			return err
		}
	case prompts.IsInteractive():
		chain, err := app.Backend().GetChain(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load chain %s: %w", id, err)
		}
		if committees, err = chooseCommittees(ctx, chain, committees); err != nil {
			return err
		}
	}
	autoCompound := pos.AutoCompound
	if cmd.Flags().Changed("auto-compound") {
		autoCompound = editFlags.autoCompound
	}

	available, err := app.Available(ctx, info.Address)
	if err != nil {
		return err
	}
	op := application.NewOperation(wizard.OpEditStake, info)
	op.ChainID = id
	op.Available = available
	op.CurrentlyStaked = pos.Amount
	op.Committees = committees
	op.AutoCompound = autoCompound
	st, err := app.RunWizard(ctx, op, editFlags.amount, editFlags.yes)
	if err != nil || !editFlags.wait {
		return err
	}
	return app.WaitForInclusion(ctx, st)
}
