// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"context"
	"fmt"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/wizard"
	"github.com/spf13/cobra"
)

// committeeChoices caps how many chains are offered as committees.
const committeeChoices = 50

type stakeFlags struct {
	key          string
	chain        string
	amount       string
	committees   []string
	autoCompound bool
	yes          bool
	wait         bool
}

var createFlags stakeFlags

// launchpad stake create
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Stake CNPY to a chain",
		Long: `The stake create command stakes CNPY to a chain. Rewards can be restaked
to additional committees: pass their chain ids with --committees, or pick
them from a list when running interactively.

The amount is checked against your balance including the estimated fee.`,
		Args: cobrautils.ExactArgs(0),
		RunE: createStake,
	}
	addStakeFlags(cmd, &createFlags, "stake")
	return cmd
}

func addStakeFlags(cmd *cobra.Command, f *stakeFlags, goal string) {
	flags.AddKeyFlag(cmd, &f.key, goal)
	cmd.Flags().StringVar(&f.chain, "chain", "", "chain id to stake to")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount of CNPY")
	cmd.Flags().StringSliceVar(&f.committees, "committees", nil, "comma separated chain ids to restake to")
	cmd.Flags().BoolVar(&f.autoCompound, "auto-compound", false, "restake rewards automatically")
	flags.AddYesFlag(cmd, &f.yes)
	flags.AddWaitFlag(cmd, &f.wait)
}

func createStake(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	info, err := app.ResolveKey(ctx, createFlags.key, "stake")
	if err != nil {
		return err
	}
	if err := prompts.NewValidator("launchpad stake create").Require(&createFlags.chain, prompts.MissingOpt{
		Flag:   "--chain",
		Prompt: "Chain id to stake to",
	}).Resolve(app.Prompt); err != nil {
		return err
	}
	id, err := parseChainID(createFlags.chain)
	if err != nil {
		return err
	}
	chain, err := app.Backend().GetChain(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load chain %s: %w", id, err)
	}

	var committees []chainid.ID
	if cmd.Flags().Changed("committees") {
		if committees, err = parseCommittees(createFlags.committees, id); err != nil {
			return err
		}
	} else if prompts.IsInteractive() {
		if committees, err = chooseCommittees(ctx, chain, nil); err != nil {
			return err
		}
	}

	available, err := app.Available(ctx, info.Address)
	if err != nil {
		return err
	}
	op := application.NewOperation(wizard.OpStake, info)
	op.ChainID = id
	op.Available = available
	op.Committees = committees
	op.AutoCompound = createFlags.autoCompound
	st, err := app.RunWizard(ctx, op, createFlags.amount, createFlags.yes)
	if err != nil || !createFlags.wait {
		return err
	}
	return app.WaitForInclusion(ctx, st)
}

// chooseCommittees lets the user toggle committees for a stake on active,
// starting from initial.
func chooseCommittees(ctx context.Context, active models.Chain, initial []chainid.ID) ([]chainid.ID, error) {
	list, err := app.Backend().GetChains(ctx, api.ChainFilterOptions{
		Sort:  string(chains.SortMarketCap),
		Limit: committeeChoices,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	list = chains.Pipeline(list, chains.Filter{}, chains.SortMarketCap, committeeChoices)
	options, err := app.CommitteeResolver().Options(ctx, active, list)
	if err != nil {
		return nil, err
	}
	sel := chains.NewSelection(active.ChainID, initial...)
	if err := prompts.CaptureCommittees(app.Prompt, sel, options); err != nil {
		return nil, err
	}
	return withoutChain(sel.Selected(), active.ChainID), nil
}
