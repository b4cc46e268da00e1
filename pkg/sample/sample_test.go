// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package sample

import (
	"testing"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestChainsDeterministic(t *testing.T) {
	a := Chains(30, 7)
	b := Chains(30, 7)
	require.Equal(t, a, b)
	require.Len(t, a, 31)
	require.True(t, a[0].IsMainChain)
}

func TestChainsResolveAcrossEncodings(t *testing.T) {
	list := Chains(12, 1)
	seen := map[chainid.ID]bool{}
	statuses := map[models.ChainStatus]bool{}
	for _, c := range list {
		require.True(t, c.ChainID.Valid(), c.ID)
		require.False(t, seen[c.ChainID])
		seen[c.ChainID] = true
		statuses[c.Status] = true
		p := graduation.Progress(c)
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
	}
	require.True(t, statuses[models.StatusPendingLaunch])
	require.True(t, statuses[models.StatusGraduated])
	require.Len(t, chains.Dedupe(list), len(list))
}

func TestStakesAndPortfolio(t *testing.T) {
	list := Chains(6, 1)
	stakes := Stakes("alice", list)
	require.NotEmpty(t, stakes)
	for _, s := range stakes {
		require.Contains(t, s.Committees, chainid.ID(1))
	}
	p := Portfolio("alice", list)
	require.Len(t, p.Accounts, len(list))
	require.NotZero(t, p.Available("alice", 1))
}
