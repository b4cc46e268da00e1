// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/luxfi/launchpad/internal/testutils"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/stretchr/testify/require"
)

const cnpy = constants.MicroUnitsPerCNPY

func setup(t *testing.T) (*application.Launchpad, *bytes.Buffer) {
	t.Helper()
	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })
	t.Setenv(constants.EnvKeyPassword, testutils.TestPassword)
	testApp, out := testutils.SetupTestInTempDir(t, nil)
	testutils.CreateKey(t, testApp, "alice")
	return testApp, out
}

func execute(testApp *application.Launchpad, args ...string) error {
	cmd := NewCmd(testApp)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func positions(t *testing.T, testApp *application.Launchpad, out *bytes.Buffer) []models.StakingPosition {
	t.Helper()
	out.Reset()
	require.NoError(t, execute(testApp, "list", "-o", "json"))
	var list []models.StakingPosition
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	return list
}

func queue(t *testing.T, testApp *application.Launchpad, out *bytes.Buffer) []models.UnstakingEntry {
	t.Helper()
	out.Reset()
	require.NoError(t, execute(testApp, "queue", "-o", "json"))
	var list []models.UnstakingEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	return list
}

func TestStakeLifecycle(t *testing.T) {
	testApp, out := setup(t)

	require.NoError(t, execute(testApp, "create", "--chain", "2", "--amount", "100", "--committees", "3,2", "--yes"))
	list := positions(t, testApp, out)
	require.Len(t, list, 1)
	require.Equal(t, chainid.ID(2), list[0].ChainID)
	require.Equal(t, uint64(100*cnpy), list[0].Amount)
	require.Equal(t, []chainid.ID{2, 3}, list[0].Committees)

	require.NoError(t, execute(testApp, "edit", "--chain", "2", "--amount", "150", "--auto-compound", "--yes"))
	list = positions(t, testApp, out)
	require.Equal(t, uint64(150*cnpy), list[0].Amount)
	require.True(t, list[0].AutoCompound)
	require.Equal(t, []chainid.ID{2, 3}, list[0].Committees)

	require.NoError(t, execute(testApp, "unstake", "--chain", "2", "--percent", "50", "--yes"))
	entries := queue(t, testApp, out)
	require.Len(t, entries, 1)
	require.Equal(t, uint64(75*cnpy), entries[0].Amount)

	err := execute(testApp, "claim", entries[0].ID)
	require.ErrorContains(t, err, "remaining")

	require.NoError(t, execute(testApp, "cancel", entries[0].ID))
	require.Empty(t, queue(t, testApp, out))
	require.Equal(t, uint64(150*cnpy), positions(t, testApp, out)[0].Amount)

	require.NoError(t, execute(testApp, "unstake", "--chain", "2", "--yes"))
	require.Empty(t, positions(t, testApp, out))
	entries = queue(t, testApp, out)
	require.Len(t, entries, 1)
	require.Equal(t, uint64(150*cnpy), entries[0].Amount)
}

func TestStakeValidation(t *testing.T) {
	testApp, _ := setup(t)

	require.ErrorContains(t, execute(testApp, "create", "--amount", "1", "--yes"), "--chain")
	require.ErrorContains(t, execute(testApp, "create", "--chain", "abc", "--amount", "1", "--yes"), "invalid chain id")
	require.ErrorContains(t, execute(testApp, "edit", "--chain", "2", "--amount", "1", "--yes"), "no stake on chain 2")
	require.ErrorContains(t, execute(testApp, "unstake", "--chain", "2", "--percent", "0"), "percentage")

	require.NoError(t, execute(testApp, "create", "--chain", "2", "--amount", "100", "--yes"))
	// lowering a stake is rejected and re-prompted
	require.ErrorIs(t, execute(testApp, "edit", "--chain", "2", "--amount", "50", "--yes"), prompts.ErrNonInteractive)
}

func TestEmptyListings(t *testing.T) {
	testApp, out := setup(t)
	require.NoError(t, execute(testApp, "list"))
	require.Contains(t, out.String(), "No positions")
	require.NoError(t, execute(testApp, "queue"))
	require.Contains(t, out.String(), "Nothing is unstaking")
}
