// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
)

type PositionStatus string

const (
	PositionStaked    PositionStatus = "staked"
	PositionUnstaking PositionStatus = "unstaking"
)

// StakingPosition is a wallet's stake on one chain. Amounts are micro-units.
type StakingPosition struct {
	ID           string         `json:"id" yaml:"id"`
	Address      string         `json:"address" yaml:"address"`
	ChainID      chainid.ID     `json:"chain_id" yaml:"chain_id"`
	ChainName    string         `json:"chain_name,omitempty" yaml:"chain_name,omitempty"`
	Amount       uint64         `json:"amount" yaml:"amount"`
	APY          float64        `json:"apy" yaml:"apy"`
	Committees   []chainid.ID   `json:"committees" yaml:"committees"`
	AutoCompound bool           `json:"auto_compound" yaml:"auto_compound"`
	Rewards      uint64         `json:"rewards" yaml:"rewards"`
	Status       PositionStatus `json:"status" yaml:"status"`
	StakedAt     time.Time      `json:"staked_at" yaml:"staked_at"`
}

type UnstakeStatus string

const (
	UnstakePending UnstakeStatus = "pending"
	UnstakeReady   UnstakeStatus = "ready"
)

// UnstakingEntry is a pending withdrawal waiting out the unbonding period.
type UnstakingEntry struct {
	ID               string        `json:"id" yaml:"id"`
	PositionID       string        `json:"position_id" yaml:"position_id"`
	Address          string        `json:"address" yaml:"address"`
	ChainID          chainid.ID    `json:"chain_id" yaml:"chain_id"`
	Amount           uint64        `json:"amount" yaml:"amount"`
	RemainingBlocks  uint64        `json:"remaining_blocks" yaml:"remaining_blocks"`
	RemainingSeconds int64         `json:"remaining_seconds" yaml:"remaining_seconds"`
	Status           UnstakeStatus `json:"status" yaml:"status"`
	RequestedAt      time.Time     `json:"requested_at" yaml:"requested_at"`
}

func (e UnstakingEntry) RemainingTime() time.Duration {
	return time.Duration(e.RemainingSeconds) * time.Second
}
