// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recorder

import (
	"path/filepath"
	"testing"
	"time"

	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), luxlog.NewNoOpLogger())
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	recs := []*TxRecord{
		{Hash: "h1", Type: "send", Address: "alice", ChainID: 1, Amount: 10, Fee: 1, Status: TxSubmitted, CreatedAt: base},
		{Type: "stake", Address: "alice", ChainID: 2, Amount: 20, Status: TxFailed, Error: "insufficient funds", CreatedAt: base.Add(time.Minute)},
		{Hash: "h3", Type: "send", Address: "bob", ChainID: 1, Amount: 30, Status: TxSubmitted, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range recs {
		require.NoError(t, r.RecordTransaction(rec))
		require.NotZero(t, rec.ID)
	}

	alice, err := r.ListTransactions("alice", 0)
	require.NoError(t, err)
	require.Len(t, alice, 2)
	require.Equal(t, "stake", alice[0].Type)
	require.Equal(t, "insufficient funds", alice[0].Error)
	require.Equal(t, "h1", alice[1].Hash)
	require.True(t, base.Equal(alice[1].CreatedAt))

	all, err := r.ListTransactions("", 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "bob", all[0].Address)

	require.NoError(t, r.UpdateStatus("h1", TxConfirmed))
	require.Error(t, r.UpdateStatus("missing", TxConfirmed))
	alice, err = r.ListTransactions("alice", 0)
	require.NoError(t, err)
	require.Equal(t, TxConfirmed, alice[1].Status)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	require.NoError(t, r.RecordTransaction(&TxRecord{}))
	list, err := r.ListTransactions("", 10)
	require.NoError(t, err)
	require.Empty(t, list)
	require.NoError(t, r.Close())
}
