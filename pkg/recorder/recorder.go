// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package recorder keeps a local history of submitted transactions.
package recorder

import (
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
)

type TxStatus string

const (
	TxSubmitted TxStatus = "submitted"
	TxFailed    TxStatus = "failed"
	TxConfirmed TxStatus = "confirmed"
)

// TxRecord is one submission attempt.
type TxRecord struct {
	ID        int64      `json:"id" yaml:"id"`
	Hash      string     `json:"hash,omitempty" yaml:"hash,omitempty"`
	LocalID   string     `json:"local_id" yaml:"local_id"`
	Type      string     `json:"type" yaml:"type"`
	Address   string     `json:"address" yaml:"address"`
	ChainID   chainid.ID `json:"chain_id" yaml:"chain_id"`
	Amount    uint64     `json:"amount" yaml:"amount"`
	Fee       uint64     `json:"fee" yaml:"fee"`
	Status    TxStatus   `json:"status" yaml:"status"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// Recorder persists transaction history.
type Recorder interface {
	RecordTransaction(rec *TxRecord) error
	UpdateStatus(hash string, status TxStatus) error
	ListTransactions(address string, limit int) ([]TxRecord, error)
	Close() error
}
