// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submit sends signed transactions and reports their hashes.
package submit

import (
	"context"
	"errors"
	"time"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/tx"
	luxlog "github.com/luxfi/log"
)

// SubmissionError carries the backend's rejection message unchanged.
type SubmissionError struct {
	Message string
	Cause   error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

type Receipt struct {
	Hash        string
	LocalID     string
	SubmittedAt time.Time
}

type Submitter struct {
	api api.TxAPI
	rec recorder.Recorder
	log luxlog.Logger
	now func() time.Time
}

func NewSubmitter(txAPI api.TxAPI, rec recorder.Recorder, log luxlog.Logger) *Submitter {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Submitter{api: txAPI, rec: rec, log: log, now: time.Now}
}

// Option adjusts what Submit records in the history.
type Option func(*recorder.TxRecord)

// WithAmount records amount instead of the message amount. A full unstake
// carries no amount on the wire.
func WithAmount(amount uint64) Option {
	return func(rec *recorder.TxRecord) {
		rec.Amount = amount
	}
}

// Submit sends signed once. There is no retry and nothing is rolled back on
// failure; the attempt is recorded either way.
func (s *Submitter) Submit(ctx context.Context, signed *tx.SignedTransaction, opts ...Option) (Receipt, error) {
	res, err := s.api.SendRawTransaction(ctx, signed)
	if err == nil && res.TransactionHash == "" {
		err = errors.New("backend returned no transaction hash")
	}
	rec := record(signed, s.now())
	for _, opt := range opts {
		opt(rec)
	}
	if err != nil {
		subErr := &SubmissionError{Message: err.Error(), Cause: err}
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			subErr.Message = apiErr.Message
		}
		rec.Status = recorder.TxFailed
		rec.Error = subErr.Message
		s.store(rec)
		s.log.Warn("transaction rejected", "type", string(signed.Type), "error", subErr.Message)
		return Receipt{}, subErr
	}

	rec.Hash = res.TransactionHash
	rec.Status = recorder.TxSubmitted
	s.store(rec)
	s.log.Info("transaction submitted", "type", string(signed.Type), "hash", res.TransactionHash)
	return Receipt{Hash: res.TransactionHash, LocalID: signed.ID, SubmittedAt: rec.CreatedAt}, nil
}

func (s *Submitter) store(rec *recorder.TxRecord) {
	if err := s.rec.RecordTransaction(rec); err != nil {
		s.log.Warn("failed to record transaction", "error", err)
	}
}

// WaitForInclusion polls until the backend knows the transaction or ctx ends.
// Not-found responses and transient errors keep polling.
func (s *Submitter) WaitForInclusion(ctx context.Context, hash string, interval time.Duration) (api.TransactionStatus, error) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		st, err := s.api.GetTransaction(ctx, hash)
		switch {
		case err == nil:
			if uerr := s.rec.UpdateStatus(hash, recorder.TxConfirmed); uerr != nil {
				s.log.Debug("could not update history", "hash", hash, "error", uerr)
			}
			return st, nil
		case !api.IsNotFound(err):
			s.log.Debug("transaction lookup failed", "hash", hash, "error", err)
		}
		select {
		case <-ctx.Done():
			return api.TransactionStatus{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func record(signed *tx.SignedTransaction, at time.Time) *recorder.TxRecord {
	rec := &recorder.TxRecord{
		LocalID:   signed.ID,
		Type:      string(signed.Type),
		ChainID:   chainid.ID(signed.ChainID),
		Fee:       signed.Fee,
		CreatedAt: at,
	}
	switch m := signed.Msg.(type) {
	case *tx.SendMessage:
		rec.Address, rec.Amount = m.FromAddress, m.Amount
	case *tx.StakeMessage:
		rec.Address, rec.Amount = m.Address, m.Amount
	case *tx.EditStakeMessage:
		rec.Address, rec.Amount = m.Address, m.Amount
	case *tx.UnstakeMessage:
		rec.Address, rec.Amount = m.Address, m.Amount
	}
	return rec
}

// ShortHash abbreviates hashes longer than 16 characters to the first 10 and
// last 6, joined by an ellipsis.
func ShortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:10] + "..." + h[len(h)-6:]
}
