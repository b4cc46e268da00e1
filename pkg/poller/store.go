// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package poller

import (
	"sync"

	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/models"
)

// Store holds the latest chain list. The listing flow writes it and the
// poller reads it on every tick, so a tick always sees the current list.
type Store struct {
	mu     sync.RWMutex
	chains []models.Chain
}

func NewStore(initial []models.Chain) *Store {
	s := &Store{}
	s.Replace(initial)
	return s
}

// Replace swaps in a new list, e.g. after a filter or sort change.
func (s *Store) Replace(list []models.Chain) {
	cp := chains.Dedupe(list)
	s.mu.Lock()
	s.chains = cp
	s.mu.Unlock()
}

// Merge appends a further page.
func (s *Store) Merge(page []models.Chain) {
	s.mu.Lock()
	s.chains = chains.Merge(s.chains, page)
	s.mu.Unlock()
}

// Snapshot returns a copy of the list.
func (s *Store) Snapshot() []models.Chain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Chain(nil), s.chains...)
}

// Window returns a copy of the first n chains.
func (s *Store) Window(n int) []models.Chain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.chains) {
		n = len(s.chains)
	}
	return append([]models.Chain(nil), s.chains[:n]...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chains)
}

// apply commits refreshed fields for chains still present and returns the
// ones whose fields actually changed.
func (s *Store) apply(updates map[string]models.VolatileFields) []models.Chain {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed []models.Chain
	for i, c := range s.chains {
		v, ok := updates[c.Key()]
		if !ok || c.Volatile().Equal(v) {
			continue
		}
		s.chains[i] = c.WithVolatile(v)
		changed = append(changed, s.chains[i])
	}
	return changed
}
