// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"fmt"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/staking"
	"github.com/luxfi/launchpad/pkg/wizard"
)

// Staking returns the position book. It layers the changes of transactions
// sent from this process over what the backend last reported.
func (app *Launchpad) Staking() *staking.Book {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.book == nil {
		app.book = staking.NewBook(nil)
	}
	return app.book
}

// Positions fetches the stake positions of address and returns them merged
// with local changes the backend does not show yet.
func (app *Launchpad) Positions(ctx context.Context, address string) ([]models.StakingPosition, error) {
	server, err := app.Backend().GetStakingPositions(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load staking positions: %w", err)
	}
	book := app.Staking()
	book.ReconcileAddress(address, server)
	out := []models.StakingPosition{}
	for _, p := range book.Positions() {
		if p.Address == address {
			out = append(out, p)
		}
	}
	return out, nil
}

// UnstakingQueue is Positions for the unbonding queue.
func (app *Launchpad) UnstakingQueue(ctx context.Context, address string) ([]models.UnstakingEntry, error) {
	server, err := app.Backend().GetUnstakingQueue(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to load unstaking queue: %w", err)
	}
	q := app.Staking().Queue()
	q.ResetAddress(address, server)
	out := []models.UnstakingEntry{}
	for _, e := range q.Entries() {
		if e.Address == address {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClaimUnstaked claims a ready entry and drops it from the local queue.
func (app *Launchpad) ClaimUnstaked(ctx context.Context, entryID string) error {
	if err := app.Backend().ClaimUnstaked(ctx, entryID); err != nil {
		return err
	}
	if _, err := app.Staking().Queue().Claim(entryID); err != nil {
		app.Log.Debug("claimed entry not in local queue", "entry", entryID, "error", err)
	}
	return nil
}

// CancelUnstake cancels a pending entry and credits the position locally.
func (app *Launchpad) CancelUnstake(ctx context.Context, entryID string) error {
	if err := app.Backend().CancelUnstake(ctx, entryID); err != nil {
		return err
	}
	if _, err := app.Staking().CancelUnstake(entryID); err != nil {
		app.Log.Debug("cancelled entry not in local queue", "entry", entryID, "error", err)
	}
	return nil
}

// applyStakeChange records the effect of a succeeded staking transaction
// in the book so it shows before the backend catches up.
func (app *Launchpad) applyStakeChange(op wizard.Operation, done wizard.Succeeded) error {
	book := app.Staking()
	if op.Kind == wizard.OpStake {
		book.ApplyStake(op.Address, op.ChainID, done.Amount, op.Committees, op.AutoCompound)
		return nil
	}
	p, ok := book.ForChain(op.Address, op.ChainID)
	if !ok {
		return fmt.Errorf("%w: %s on chain %s", staking.ErrPositionNotFound, op.Address, op.ChainID)
	}
	var err error
	switch op.Kind {
	case wizard.OpEditStake:
		_, err = book.ApplyEdit(p.ID, done.Amount, op.Committees, op.AutoCompound)
	case wizard.OpUnstake:
		_, err = book.ApplyUnstakeAll(p.ID, constants.UnbondingBlocks, constants.BlockTime)
	case wizard.OpUnstakePartial:
		_, err = book.ApplyUnstakeAmount(p.ID, done.Amount, constants.UnbondingBlocks, constants.BlockTime)
	}
	return err
}

func isStakingOp(kind wizard.OpKind) bool {
	switch kind {
	case wizard.OpStake, wizard.OpEditStake, wizard.OpUnstake, wizard.OpUnstakePartial:
		return true
	}
	return false
}
