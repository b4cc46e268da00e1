// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api is the REST client for the launchpad backend.
package api

import (
	"context"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/tx"
)

// ChainFilterOptions are the server-side listing parameters.
type ChainFilterOptions struct {
	Status models.ChainStatus
	Search string
	Sort   string
	Page   int
	Limit  int
	// Include asks the server to embed related objects, e.g. "virtual_pool".
	Include []string
}

// FeeRequest describes the transaction a fee is estimated for. Amount is in
// micro-units.
type FeeRequest struct {
	TxType  tx.MessageType `json:"tx_type"`
	From    string         `json:"from"`
	To      string         `json:"to,omitempty"`
	Amount  uint64         `json:"amount"`
	ChainID chainid.ID     `json:"chain_id"`
}

type SendResult struct {
	TransactionHash string `json:"transaction_hash"`
}

type TransactionStatus struct {
	Hash   string    `json:"hash"`
	Status string    `json:"status"`
	Height uint64    `json:"height"`
	Time   time.Time `json:"time"`
}

type ChainsAPI interface {
	GetChains(ctx context.Context, opts ChainFilterOptions) ([]models.Chain, error)
	GetChain(ctx context.Context, id chainid.ID) (models.Chain, error)
	GetVolatile(ctx context.Context, id chainid.ID) (models.VolatileFields, error)
}

type FeeAPI interface {
	EstimateFee(ctx context.Context, req FeeRequest) (string, error)
}

type HeightAPI interface {
	GetChainHeight(ctx context.Context, id chainid.ID) (uint64, error)
}

type TxAPI interface {
	SendRawTransaction(ctx context.Context, signed *tx.SignedTransaction) (SendResult, error)
	GetTransaction(ctx context.Context, hash string) (TransactionStatus, error)
}

type PortfolioAPI interface {
	GetPortfolioOverview(ctx context.Context, addresses []string) (models.PortfolioOverview, error)
}

type StakingAPI interface {
	GetStakingPositions(ctx context.Context, address string) ([]models.StakingPosition, error)
	GetUnstakingQueue(ctx context.Context, address string) ([]models.UnstakingEntry, error)
	ClaimUnstaked(ctx context.Context, entryID string) error
	CancelUnstake(ctx context.Context, entryID string) error
}

// Backend is everything the launchpad client talks to.
type Backend interface {
	ChainsAPI
	FeeAPI
	HeightAPI
	TxAPI
	PortfolioAPI
	StakingAPI
}

var _ Backend = (*Client)(nil)
