// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"context"
	"fmt"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	luxlog "github.com/luxfi/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CommitteeOption is a chain a stake can delegate rewards to.
type CommitteeOption struct {
	ChainID  chainid.ID
	Name     string
	Symbol   string
	Main     bool
	Existing bool
}

func (o CommitteeOption) Label() string {
	label := fmt.Sprintf("%s (%s) #%s", o.Name, o.Symbol, o.ChainID)
	if o.Main {
		label += " [main]"
	}
	return label
}

// BuildCommitteeOptions unions the active chain, the committees it already
// delegates to and the available chains. The active chain always comes first
// and is marked Main. Unresolved ids are dropped.
func BuildCommitteeOptions(active models.Chain, available []models.Chain) []CommitteeOption {
	byID := make(map[chainid.ID]models.Chain, len(available))
	for _, c := range available {
		if c.ChainID.Valid() {
			if _, ok := byID[c.ChainID]; !ok {
				byID[c.ChainID] = c
			}
		}
	}

	var opts []CommitteeOption
	seen := map[chainid.ID]struct{}{}
	add := func(id chainid.ID, c models.Chain, main, existing bool) {
		if !id.Valid() {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		name, symbol := c.Name, c.Symbol
		if name == "" {
			name = "Chain " + id.String()
		}
		if symbol == "" {
			symbol = "?"
		}
		opts = append(opts, CommitteeOption{ChainID: id, Name: name, Symbol: symbol, Main: main, Existing: existing})
	}

	add(active.ChainID, active, true, true)
	for _, id := range active.Committees {
		add(id, byID[id], false, true)
	}
	for _, c := range available {
		add(c.ChainID, c, false, false)
	}
	return opts
}

// Selection is the set of committees chosen for a stake. The main chain is
// always a member and cannot be toggled off.
type Selection struct {
	main     chainid.ID
	selected map[chainid.ID]struct{}
}

func NewSelection(main chainid.ID, initial ...chainid.ID) *Selection {
	s := &Selection{main: main, selected: map[chainid.ID]struct{}{}}
	if main.Valid() {
		s.selected[main] = struct{}{}
	}
	for _, id := range initial {
		if id.Valid() {
			s.selected[id] = struct{}{}
		}
	}
	return s
}

func (s *Selection) Main() chainid.ID {
	return s.main
}

// Toggle flips membership of id and reports whether it is selected afterwards.
// Toggling the main chain or an unresolved id changes nothing.
func (s *Selection) Toggle(id chainid.ID) bool {
	if id == s.main || !id.Valid() {
		return s.Contains(id)
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

func (s *Selection) Contains(id chainid.ID) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the members in ascending order.
func (s *Selection) Selected() []chainid.ID {
	ids := make([]chainid.ID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return chainid.Sorted(ids)
}

// ChainLookup fetches a single chain.
type ChainLookup interface {
	GetChain(ctx context.Context, id chainid.ID) (models.Chain, error)
}

// CommitteeResolver loads details for committee chains with bounded concurrency.
type CommitteeResolver struct {
	lookup      ChainLookup
	concurrency int64
	log         luxlog.Logger
}

func NewCommitteeResolver(lookup ChainLookup, concurrency int, log luxlog.Logger) *CommitteeResolver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &CommitteeResolver{lookup: lookup, concurrency: int64(concurrency), log: log}
}

// LoadCommitteeDetails fetches every id, preserving input order. A failed
// lookup is logged and skipped; only context cancellation aborts the load.
func (r *CommitteeResolver) LoadCommitteeDetails(ctx context.Context, ids []chainid.ID) ([]models.Chain, error) {
	ids = chainid.Sorted(ids)
	sem := semaphore.NewWeighted(r.concurrency)
	results := make([]*models.Chain, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			c, err := r.lookup.GetChain(gctx, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.log.Warn("failed to load committee chain", "chainID", id.String(), "error", err)
				return nil
			}
			results[i] = &c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Chain, 0, len(ids))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Options loads names for committees the active chain already delegates to
// but which are missing from available, then builds the option list.
func (r *CommitteeResolver) Options(ctx context.Context, active models.Chain, available []models.Chain) ([]CommitteeOption, error) {
	known := map[chainid.ID]struct{}{}
	for _, c := range available {
		known[c.ChainID] = struct{}{}
	}
	var missing []chainid.ID
	for _, id := range active.Committees {
		if _, ok := known[id]; !ok && id != active.ChainID {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		extra, err := r.LoadCommitteeDetails(ctx, missing)
		if err != nil {
			return nil, err
		}
		available = append(append([]models.Chain{}, available...), extra...)
	}
	return BuildCommitteeOptions(active, available), nil
}
