// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/spf13/cobra"
)

var app *application.Launchpad

// NewCmd creates the stake command suite
func NewCmd(injectedApp *application.Launchpad) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:     "stake",
		Aliases: []string{"staking"},
		Short:   "Stake CNPY and manage positions",
		Long: `The stake command suite stakes CNPY to a chain, restaking to any committees
you choose, and manages the resulting positions.

Unstaking moves the amount into the unbonding queue. Once its blocks have
passed the entry can be claimed back to your balance; until then it can be
cancelled, which restores the stake.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	// launchpad stake create
	cmd.AddCommand(newCreateCmd())
	// launchpad stake edit
	cmd.AddCommand(newEditCmd())
	// launchpad stake list
	cmd.AddCommand(newListCmd())
	// launchpad stake unstake
	cmd.AddCommand(newUnstakeCmd())
	// launchpad stake queue
	cmd.AddCommand(newQueueCmd())
	// launchpad stake claim
	cmd.AddCommand(newClaimCmd())
	// launchpad stake cancel
	cmd.AddCommand(newCancelCmd())
	return cmd
}

// parseChainID requires the numeric chain id stakes are keyed by.
func parseChainID(ref string) (chainid.ID, error) {
	id, err := chainid.Parse(ref)
	if err != nil || !id.Valid() {
		return 0, fmt.Errorf("%w %q", constants.ErrUnresolvedChain, ref)
	}
	return id, nil
}

func findPosition(ctx context.Context, address string, chain chainid.ID) (models.StakingPosition, error) {
	positions, err := app.Positions(ctx, address)
	if err != nil {
		return models.StakingPosition{}, err
	}
	for _, p := range positions {
		if p.ChainID == chain {
			return p, nil
		}
	}
	return models.StakingPosition{}, fmt.Errorf("no stake on chain %s", chain)
}

// parseCommittees reads --committees. The staked chain itself is implied and
// dropped from the list.
func parseCommittees(refs []string, chain chainid.ID) ([]chainid.ID, error) {
	ids := make([]chainid.ID, 0, len(refs))
	for _, ref := range refs {
		id, err := parseChainID(ref)
		if err != nil {
			return nil, err
		}
		if id != chain && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return chainid.Sorted(ids), nil
}

func withoutChain(ids []chainid.ID, chain chainid.ID) []chainid.ID {
	out := make([]chainid.ID, 0, len(ids))
	for _, id := range ids {
		if id != chain {
			out = append(out, id)
		}
	}
	return out
}
