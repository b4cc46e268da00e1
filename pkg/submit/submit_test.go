// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package submit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxfi/launchpad/internal/mocks"
	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/tx"
	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedSend(t *testing.T) *tx.SignedTransaction {
	t.Helper()
	fee := uint64(100)
	unsigned, err := tx.Build(tx.Draft{Msg: tx.NewSendMessage("alice", "bob", 5_000_000), Fee: &fee, Height: 10, ChainID: 1})
	require.NoError(t, err)
	return &tx.SignedTransaction{Transaction: *unsigned, ID: "local-1"}
}

func newRecorder(t *testing.T) *recorder.SQLiteRecorder {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "h.db"), luxlog.NewNoOpLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })
	return rec
}

func TestSubmitSuccessRecords(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("SendRawTransaction", mock.Anything, mock.Anything).
		Return(api.SendResult{TransactionHash: "0x1234567890abcdef1234567890"}, nil).Once()
	rec := newRecorder(t)

	s := NewSubmitter(backend, rec, luxlog.NewNoOpLogger())
	receipt, err := s.Submit(context.Background(), signedSend(t))
	require.NoError(t, err)
	require.Equal(t, "0x1234567890abcdef1234567890", receipt.Hash)
	require.Equal(t, "local-1", receipt.LocalID)

	history, err := rec.ListTransactions("alice", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, recorder.TxSubmitted, history[0].Status)
	require.Equal(t, uint64(5_000_000), history[0].Amount)
	backend.AssertExpectations(t)
}

func TestSubmitRecordsFullUnstakeAmount(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("SendRawTransaction", mock.Anything, mock.Anything).
		Return(api.SendResult{TransactionHash: "0xabc"}, nil).Once()
	rec := newRecorder(t)
	fee := uint64(100)
	unsigned, err := tx.Build(tx.Draft{Msg: tx.NewUnstakeMessage("alice"), Fee: &fee, Height: 10, ChainID: 2})
	require.NoError(t, err)
	signed := &tx.SignedTransaction{Transaction: *unsigned, ID: "local-2"}

	s := NewSubmitter(backend, rec, luxlog.NewNoOpLogger())
	_, err = s.Submit(context.Background(), signed, WithAmount(42_000_000))
	require.NoError(t, err)

	history, err := rec.ListTransactions("alice", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, uint64(42_000_000), history[0].Amount)
	require.Equal(t, string(tx.MessageUnstake), history[0].Type)
}

func TestSubmitFailureKeepsServerMessage(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("SendRawTransaction", mock.Anything, mock.Anything).
		Return(api.SendResult{}, &api.Error{Status: 400, Message: "insufficient funds for fee"}).Once()
	rec := newRecorder(t)

	s := NewSubmitter(backend, rec, luxlog.NewNoOpLogger())
	_, err := s.Submit(context.Background(), signedSend(t))
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "insufficient funds for fee", subErr.Error())

	history, err := rec.ListTransactions("alice", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, recorder.TxFailed, history[0].Status)
	require.Equal(t, "insufficient funds for fee", history[0].Error)
	backend.AssertNumberOfCalls(t, "SendRawTransaction", 1)
}

func TestSubmitEmptyHashIsFailure(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("SendRawTransaction", mock.Anything, mock.Anything).Return(api.SendResult{}, nil)
	s := NewSubmitter(backend, nil, luxlog.NewNoOpLogger())
	_, err := s.Submit(context.Background(), signedSend(t))
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
}

func TestShortHash(t *testing.T) {
	require.Equal(t, "0x12345678...abcdef", ShortHash("0x1234567890000000abcdef"))
	require.Equal(t, "0123456789abcdef", ShortHash("0123456789abcdef"))
	require.Equal(t, "", ShortHash(""))
}

func TestWaitForInclusion(t *testing.T) {
	backend := &mocks.Backend{}
	backend.On("GetTransaction", mock.Anything, "h").Return(api.TransactionStatus{}, &api.Error{Status: 404}).Twice()
	backend.On("GetTransaction", mock.Anything, "h").Return(api.TransactionStatus{Hash: "h", Height: 7}, nil).Once()

	s := NewSubmitter(backend, nil, luxlog.NewNoOpLogger())
	st, err := s.WaitForInclusion(context.Background(), "h", 5*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, uint64(7), st.Height)

	never := &mocks.Backend{}
	never.On("GetTransaction", mock.Anything, "x").Return(api.TransactionStatus{}, &api.Error{Status: 404})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = NewSubmitter(never, nil, luxlog.NewNoOpLogger()).WaitForInclusion(ctx, "x", 5*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
