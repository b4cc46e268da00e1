// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package staking

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/luxfi/launchpad/pkg/models"
)

var (
	ErrEntryNotFound = errors.New("unstaking entry not found")
	ErrNotReady      = errors.New("unstaking entry is still unbonding")
	ErrAlreadyReady  = errors.New("unstaking entry is ready and can only be claimed")
)

// Queue is the list of stakes waiting out the unbonding period.
type Queue struct {
	mu      sync.Mutex
	entries map[string]models.UnstakingEntry
	// local holds ids of entries added here and not yet seen on the server.
	local map[string]bool
}

func NewQueue(initial []models.UnstakingEntry) *Queue {
	q := &Queue{}
	q.Reset(initial)
	return q
}

// Reset replaces the queue with a server snapshot.
func (q *Queue) Reset(entries []models.UnstakingEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = make(map[string]models.UnstakingEntry, len(entries))
	q.local = map[string]bool{}
	for _, e := range entries {
		q.entries[e.ID] = e
	}
}

// ResetAddress replaces the entries of address with a server snapshot.
// Entries added locally survive until the server lists one for the same
// position and amount.
func (q *Queue) ResetAddress(address string, server []models.UnstakingEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, e := range q.entries {
		if e.Address == address && !q.local[id] {
			delete(q.entries, id)
		}
	}
	for _, e := range server {
		if e.Address == "" {
			e.Address = address
		}
		for id := range q.local {
			l := q.entries[id]
			if l.Address == address && l.PositionID == e.PositionID && l.Amount == e.Amount {
				delete(q.entries, id)
				delete(q.local, id)
				break
			}
		}
		q.entries[e.ID] = e
	}
}

// Local reports whether the entry was added here and is unconfirmed.
func (q *Queue) Local(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.local[id]
}

func (q *Queue) add(e models.UnstakingEntry) models.UnstakingEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Status = models.UnstakePending
	if e.RemainingBlocks == 0 {
		e.Status = models.UnstakeReady
	}
	q.entries[e.ID] = e
	q.local[e.ID] = true
	return e
}

// Entries returns the queue ordered by remaining blocks, soonest first.
func (q *Queue) Entries() []models.UnstakingEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.UnstakingEntry, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RemainingBlocks != out[j].RemainingBlocks {
			return out[i].RemainingBlocks < out[j].RemainingBlocks
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Claim removes a ready entry and returns it.
func (q *Queue) Claim(id string) (models.UnstakingEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[id]
	if !ok {
		return models.UnstakingEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if e.Status != models.UnstakeReady {
		return models.UnstakingEntry{}, fmt.Errorf("%w: %d blocks remaining", ErrNotReady, e.RemainingBlocks)
	}
	delete(q.entries, id)
	delete(q.local, id)
	return e, nil
}

// Cancel removes a pending entry. Ready entries must be claimed instead.
func (q *Queue) Cancel(id string) (models.UnstakingEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[id]
	if !ok {
		return models.UnstakingEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if e.Status == models.UnstakeReady {
		return models.UnstakingEntry{}, ErrAlreadyReady
	}
	delete(q.entries, id)
	delete(q.local, id)
	return e, nil
}

// Advance moves every pending entry forward by blocks and flips entries
// that reach zero to ready.
func (q *Queue) Advance(blocks uint64, secondsPerBlock int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, e := range q.entries {
		if e.Status == models.UnstakeReady {
			continue
		}
		if blocks >= e.RemainingBlocks {
			e.RemainingBlocks = 0
			e.RemainingSeconds = 0
			e.Status = models.UnstakeReady
		} else {
			e.RemainingBlocks -= blocks
			e.RemainingSeconds = max(e.RemainingSeconds-int64(blocks)*secondsPerBlock, 0)
		}
		q.entries[id] = e
	}
}
