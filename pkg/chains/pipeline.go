// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chains holds the listing pipeline shared by every chain view
// (de-duplication, filtering, sorting) and the committee option builder used
// by the staking flow.
package chains

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
)

type SortKey string

const (
	SortTrending    SortKey = "trending"
	SortNewest      SortKey = "newest"
	SortMarketCap   SortKey = "market_cap"
	SortProgress    SortKey = "progress"
	SortPriceChange SortKey = "price_change"
	SortTraders     SortKey = "traders"
	SortName        SortKey = "name"
)

// SortKeys lists every supported key in display order.
var SortKeys = []SortKey{SortTrending, SortNewest, SortMarketCap, SortProgress, SortPriceChange, SortTraders, SortName}

func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortTrending, nil
	}
	k := SortKey(strings.ToLower(strings.ReplaceAll(s, "-", "_")))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Filter narrows a chain list. Zero values match everything.
type Filter struct {
	Status models.ChainStatus
	Query  string
	// MinProgress keeps chains at or above this graduation percentage.
	MinProgress int
	// ExcludeGraduated drops chains that already graduated.
	ExcludeGraduated bool
}

func (f Filter) Match(c models.Chain) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.ExcludeGraduated && graduation.IsGraduated(c) {
		return false
	}
	if f.MinProgress > 0 && graduation.Progress(c) < f.MinProgress {
		return false
	}
	if q := strings.TrimSpace(strings.ToLower(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Symbol), q) &&
			!strings.Contains(strings.ToLower(c.ID), q) {
			return false
		}
	}
	return true
}

// Dedupe keeps the first occurrence of every chain.
func Dedupe(in []models.Chain) []models.Chain {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Chain, 0, len(in))
	for _, c := range in {
		k := c.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Merge appends a freshly fetched page to an existing list. Chains already
// present are refreshed in place rather than duplicated.
func Merge(existing, page []models.Chain) []models.Chain {
	index := make(map[string]int, len(existing))
	out := make([]models.Chain, len(existing), len(existing)+len(page))
	copy(out, existing)
	for i, c := range out {
		index[c.Key()] = i
	}
	for _, c := range page {
		if i, ok := index[c.Key()]; ok {
			out[i] = c
			continue
		}
		index[c.Key()] = len(out)
		out = append(out, c)
	}
	return out
}

// Sort orders chains by key. Ties fall back to the canonical chain id so the
// order is stable across refreshes.
func Sort(in []models.Chain, key SortKey) {
	slices.SortStableFunc(in, func(a, b models.Chain) int {
		if c := compare(a, b, key); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ChainID, b.ChainID); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func compare(a, b models.Chain, key SortKey) int {
	switch key {
	case SortNewest:
		return b.CreatedAt.Compare(a.CreatedAt)
	case SortMarketCap:
		return cmp.Compare(pool(b).MarketCapUSD, pool(a).MarketCapUSD)
	case SortProgress:
		return cmp.Compare(graduation.Progress(b), graduation.Progress(a))
	case SortPriceChange:
		return cmp.Compare(pool(b).PriceChange24hPercent, pool(a).PriceChange24hPercent)
	case SortTraders:
		return cmp.Compare(pool(b).UniqueTraders, pool(a).UniqueTraders)
	case SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	default:
		return cmp.Compare(pool(b).Volume24hCNPY, pool(a).Volume24hCNPY)
	}
}

func pool(c models.Chain) models.VirtualPool {
	if c.VirtualPool == nil {
		return models.VirtualPool{}
	}
	return *c.VirtualPool
}

// Pipeline de-duplicates, filters, sorts and truncates a chain list. A
// non-positive limit keeps everything. The input slice is not modified.
func Pipeline(in []models.Chain, f Filter, key SortKey, limit int) []models.Chain {
	out := make([]models.Chain, 0, len(in))
	for _, c := range Dedupe(in) {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	Sort(out, key)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Find returns the chain with the given opaque id or canonical id string.
func Find(list []models.Chain, ref string) (models.Chain, bool) {
	for _, c := range list {
		if c.ID == ref || (c.ChainID.Valid() && c.ChainID.String() == ref) {
			return c, true
		}
	}
	return models.Chain{}, false
}
