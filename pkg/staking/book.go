// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking tracks stake positions and the unstaking queue, including
// local changes the server has not reported yet.
package staking

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/units"
)

// EditBelowCurrentMessage is shown when an edit would lower a stake.
const EditBelowCurrentMessage = "New stake amount must be at least the current stake"

var (
	ErrPositionNotFound = errors.New("staking position not found")
	ErrNothingStaked    = errors.New("position has nothing staked")
)

// override is a locally applied change waiting for the server to catch up.
type override struct {
	position models.StakingPosition
	removed  bool
}

// Book merges server positions with optimistic local overrides keyed by
// position id.
type Book struct {
	mu        sync.RWMutex
	server    map[string]models.StakingPosition
	overrides map[string]override
	queue     *Queue
	now       func() time.Time
}

func NewBook(queue *Queue) *Book {
	if queue == nil {
		queue = NewQueue(nil)
	}
	return &Book{
		server:    map[string]models.StakingPosition{},
		overrides: map[string]override{},
		queue:     queue,
		now:       time.Now,
	}
}

func (b *Book) Queue() *Queue {
	return b.queue
}

// Positions returns the merged view ordered by chain then id.
func (b *Book) Positions() []models.StakingPosition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	merged := make(map[string]models.StakingPosition, len(b.server)+len(b.overrides))
	for id, p := range b.server {
		merged[id] = p
	}
	for id, o := range b.overrides {
		if o.removed {
			delete(merged, id)
			continue
		}
		// A fresh local stake replaces whatever the server lists for the
		// same chain under another id.
		for sid, sp := range b.server {
			if sid != id && sp.Address == o.position.Address && sp.ChainID == o.position.ChainID {
				delete(merged, sid)
			}
		}
		merged[id] = o.position
	}
	out := make([]models.StakingPosition, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChainID != out[j].ChainID {
			return out[i].ChainID < out[j].ChainID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (b *Book) Position(id string) (models.StakingPosition, bool) {
	for _, p := range b.Positions() {
		if p.ID == id {
			return p, true
		}
	}
	return models.StakingPosition{}, false
}

// ForChain returns the staked position of address on chain, if any.
func (b *Book) ForChain(address string, chain chainid.ID) (models.StakingPosition, bool) {
	for _, p := range b.Positions() {
		if p.Address == address && p.ChainID == chain && p.Status == models.PositionStaked {
			return p, true
		}
	}
	return models.StakingPosition{}, false
}

// Reconcile installs a fresh server snapshot and drops every override the
// server now reflects.
func (b *Book) Reconcile(server []models.StakingPosition) {
	b.reconcile(func(models.StakingPosition) bool { return true }, server)
}

// ReconcileAddress is Reconcile limited to the positions of one address.
// Positions and overrides of other addresses are left alone.
func (b *Book) ReconcileAddress(address string, server []models.StakingPosition) {
	b.reconcile(func(p models.StakingPosition) bool { return p.Address == address }, server)
}

func (b *Book) reconcile(inScope func(models.StakingPosition) bool, server []models.StakingPosition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, p := range b.server {
		if inScope(p) {
			delete(b.server, id)
		}
	}
	for _, p := range server {
		b.server[p.ID] = p
	}
	for id, o := range b.overrides {
		if inScope(o.position) && b.reflectedLocked(id, o) {
			delete(b.overrides, id)
		}
	}
}

// reflectedLocked reports whether the server snapshot already shows o. New
// stakes carry a local id, so they match on address and chain instead.
func (b *Book) reflectedLocked(id string, o override) bool {
	sp, ok := b.server[id]
	if o.removed {
		return !ok
	}
	if !ok {
		for _, p := range b.server {
			if p.Address == o.position.Address && p.ChainID == o.position.ChainID {
				sp, ok = p, true
				break
			}
		}
	}
	return ok && sp.Amount == o.position.Amount && sp.Status == o.position.Status
}

// ApplyStake records a new stake. It returns the position as shown locally.
func (b *Book) ApplyStake(address string, chain chainid.ID, amount uint64, committees []chainid.ID, autoCompound bool) models.StakingPosition {
	p := models.StakingPosition{
		ID:           uuid.NewString(),
		Address:      address,
		ChainID:      chain,
		Amount:       amount,
		Committees:   chainid.Sorted(append([]chainid.ID{chain}, committees...)),
		AutoCompound: autoCompound,
		Status:       models.PositionStaked,
		StakedAt:     b.now(),
	}
	if existing, ok := b.ForChain(address, chain); ok {
		p.ID = existing.ID
		p.APY = existing.APY
		p.Rewards = existing.Rewards
		p.StakedAt = existing.StakedAt
		p.Amount = existing.Amount + amount
	}
	b.mu.Lock()
	b.overrides[p.ID] = override{position: p}
	b.mu.Unlock()
	return p
}

// ApplyEdit replaces amount and committees of an existing position. The new
// amount may not be below the current stake.
func (b *Book) ApplyEdit(id string, amount uint64, committees []chainid.ID, autoCompound bool) (models.StakingPosition, error) {
	p, ok := b.Position(id)
	if !ok {
		return models.StakingPosition{}, fmt.Errorf("%w: %s", ErrPositionNotFound, id)
	}
	if amount < p.Amount {
		return models.StakingPosition{}, &units.ValidationError{Reason: EditBelowCurrentMessage}
	}
	p.Amount = amount
	p.Committees = chainid.Sorted(append([]chainid.ID{p.ChainID}, committees...))
	p.AutoCompound = autoCompound
	b.mu.Lock()
	b.overrides[id] = override{position: p}
	b.mu.Unlock()
	return p, nil
}

// ApplyUnstakeAll moves the whole stake into the unstaking queue.
func (b *Book) ApplyUnstakeAll(id string, unbondingBlocks uint64, blockTime time.Duration) (models.UnstakingEntry, error) {
	return b.ApplyUnstakePercent(id, 100, unbondingBlocks, blockTime)
}

// ApplyUnstakePercent moves pct percent (rounded down) of a stake into the
// queue. 100 is identical to ApplyUnstakeAll.
func (b *Book) ApplyUnstakePercent(id string, pct int, unbondingBlocks uint64, blockTime time.Duration) (models.UnstakingEntry, error) {
	if pct < 1 || pct > 100 {
		return models.UnstakingEntry{}, &units.ValidationError{Field: "percent", Reason: "must be between 1 and 100"}
	}
	p, ok := b.Position(id)
	if !ok {
		return models.UnstakingEntry{}, fmt.Errorf("%w: %s", ErrPositionNotFound, id)
	}
	return b.ApplyUnstakeAmount(id, units.Percent(p.Amount, pct), unbondingBlocks, blockTime)
}

// ApplyUnstakeAmount moves amount of a stake into the queue. Unstaking the
// whole amount removes the position.
func (b *Book) ApplyUnstakeAmount(id string, amount uint64, unbondingBlocks uint64, blockTime time.Duration) (models.UnstakingEntry, error) {
	p, ok := b.Position(id)
	if !ok {
		return models.UnstakingEntry{}, fmt.Errorf("%w: %s", ErrPositionNotFound, id)
	}
	if amount == 0 || p.Amount == 0 {
		return models.UnstakingEntry{}, ErrNothingStaked
	}
	if amount > p.Amount {
		return models.UnstakingEntry{}, &units.ValidationError{Field: "amount", Reason: "exceeds the staked amount"}
	}

	b.mu.Lock()
	if amount == p.Amount {
		b.overrides[id] = override{position: p, removed: true}
	} else {
		p.Amount -= amount
		b.overrides[id] = override{position: p}
	}
	b.mu.Unlock()

	return b.queue.add(models.UnstakingEntry{
		PositionID:       p.ID,
		Address:          p.Address,
		ChainID:          p.ChainID,
		Amount:           amount,
		RemainingBlocks:  unbondingBlocks,
		RemainingSeconds: int64((time.Duration(unbondingBlocks) * blockTime) / time.Second),
		RequestedAt:      b.now(),
	}), nil
}

// restore credits a cancelled unstake back to its position.
func (b *Book) restore(e models.UnstakingEntry) {
	p, ok := b.Position(e.PositionID)
	b.mu.Lock()
	defer b.mu.Unlock()
	if ok {
		p.Amount += e.Amount
	} else {
		p = models.StakingPosition{
			ID:         e.PositionID,
			Address:    e.Address,
			ChainID:    e.ChainID,
			Amount:     e.Amount,
			Committees: []chainid.ID{e.ChainID},
			StakedAt:   b.now(),
		}
	}
	p.Status = models.PositionStaked
	b.overrides[p.ID] = override{position: p}
}

// CancelUnstake removes a pending queue entry and returns its amount to the
// position it came from.
func (b *Book) CancelUnstake(entryID string) (models.UnstakingEntry, error) {
	e, err := b.queue.Cancel(entryID)
	if err != nil {
		return models.UnstakingEntry{}, err
	}
	b.restore(e)
	return e, nil
}
