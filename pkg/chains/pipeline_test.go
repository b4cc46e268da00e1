// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"testing"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/stretchr/testify/require"
)

func chain(id uint64, name string, volume, reserve float64, created time.Time) models.Chain {
	c := models.Chain{
		ID:                  chainid.ID(id).String(),
		Name:                name,
		Symbol:              name[:3],
		Status:              models.StatusVirtualActive,
		GraduationThreshold: 1000,
		VirtualPool:         &models.VirtualPool{Volume24hCNPY: volume, CNPYReserve: reserve},
		CreatedAt:           created,
	}
	c.Normalize()
	return c
}

func ids(list []models.Chain) []chainid.ID {
	out := make([]chainid.ID, len(list))
	for i, c := range list {
		out[i] = c.ChainID
	}
	return out
}

func TestDedupeKeepsFirst(t *testing.T) {
	now := time.Now()
	a := chain(1, "alpha", 10, 0, now)
	dup := chain(1, "alpha-dup", 99, 0, now)
	b := chain(2, "bravo", 5, 0, now)
	unresolvedA := models.Chain{ID: "uuid-a"}
	unresolvedB := models.Chain{ID: "uuid-b"}

	out := Dedupe([]models.Chain{a, dup, b, unresolvedA, unresolvedB, unresolvedA})
	require.Len(t, out, 4)
	require.Equal(t, "alpha", out[0].Name)
}

func TestMergeRefreshesInPlace(t *testing.T) {
	now := time.Now()
	page1 := []models.Chain{chain(1, "alpha", 1, 0, now), chain(2, "bravo", 1, 0, now)}
	page2 := []models.Chain{chain(2, "bravo", 50, 0, now), chain(3, "charlie", 1, 0, now)}

	merged := Merge(page1, page2)
	require.Equal(t, []chainid.ID{1, 2, 3}, ids(merged))
	require.Equal(t, float64(50), merged[1].VirtualPool.Volume24hCNPY)
	require.Equal(t, float64(1), page1[1].VirtualPool.Volume24hCNPY)
}

func TestSortKeys(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []models.Chain{
		chain(1, "charlie", 10, 900, base),
		chain(2, "alpha", 30, 100, base.Add(2*time.Hour)),
		chain(3, "bravo", 20, 500, base.Add(time.Hour)),
	}

	tests := []struct {
		key      SortKey
		expected []chainid.ID
	}{
		{SortTrending, []chainid.ID{2, 3, 1}},
		{SortNewest, []chainid.ID{2, 3, 1}},
		{SortProgress, []chainid.ID{1, 3, 2}},
		{SortName, []chainid.ID{2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			out := Pipeline(list, Filter{}, tt.key, 0)
			require.Equal(t, tt.expected, ids(out))
		})
	}
}

func TestSortTiesUseChainID(t *testing.T) {
	now := time.Now()
	list := []models.Chain{chain(9, "nine", 5, 0, now), chain(4, "four", 5, 0, now), chain(6, "six", 5, 0, now)}
	Sort(list, SortTrending)
	require.Equal(t, []chainid.ID{4, 6, 9}, ids(list))
}

func TestFilter(t *testing.T) {
	now := time.Now()
	graduated := chain(3, "gamma", 0, 1000, now)
	graduated.Status = models.StatusGraduated
	list := []models.Chain{chain(1, "alpha", 0, 100, now), chain(2, "beta", 0, 600, now), graduated}

	require.Equal(t, []chainid.ID{3}, ids(Pipeline(list, Filter{Status: models.StatusGraduated}, SortTrending, 0)))
	require.Equal(t, []chainid.ID{2}, ids(Pipeline(list, Filter{Query: "BET"}, SortTrending, 0)))
	require.Equal(t, []chainid.ID{2}, ids(Pipeline(list, Filter{MinProgress: 50, ExcludeGraduated: true}, SortTrending, 0)))
	require.Len(t, Pipeline(list, Filter{}, SortTrending, 2), 2)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("market-cap")
	require.NoError(t, err)
	require.Equal(t, SortMarketCap, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	require.Equal(t, SortTrending, k)

	_, err = ParseSortKey("hot")
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	c := models.Chain{ID: "uuid-x", RawChainID: chainid.RawString("virt-chain-10011")}
	c.Normalize()
	list := []models.Chain{c}

	got, ok := Find(list, "10011")
	require.True(t, ok)
	require.Equal(t, "uuid-x", got.ID)

	_, ok = Find(list, "uuid-x")
	require.True(t, ok)

	_, ok = Find(list, "nope")
	require.False(t, ok)
}
