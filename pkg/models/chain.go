// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
)

type ChainStatus string

const (
	StatusPendingLaunch ChainStatus = "pending_launch"
	StatusVirtualActive ChainStatus = "virtual_active"
	StatusGraduated     ChainStatus = "graduated"
)

func (s ChainStatus) Valid() bool {
	switch s {
	case StatusPendingLaunch, StatusVirtualActive, StatusGraduated:
		return true
	}
	return false
}

// VirtualPool is a point-in-time snapshot of a chain's bonding-curve pool.
// Snapshots are replaced wholesale on refresh, never merged.
type VirtualPool struct {
	CNPYReserve           float64   `json:"cnpy_reserve" yaml:"cnpy_reserve"`
	TokenReserve          float64   `json:"token_reserve" yaml:"token_reserve"`
	CurrentPriceCNPY      float64   `json:"current_price_cnpy" yaml:"current_price_cnpy"`
	MarketCapUSD          float64   `json:"market_cap_usd" yaml:"market_cap_usd"`
	Volume24hCNPY         float64   `json:"volume_24h_cnpy" yaml:"volume_24h_cnpy"`
	PriceChange24hPercent float64   `json:"price_24h_change_percent" yaml:"price_24h_change_percent"`
	UniqueTraders         int       `json:"unique_traders" yaml:"unique_traders"`
	TotalTransactions     int       `json:"total_transactions" yaml:"total_transactions"`
	UpdatedAt             time.Time `json:"updated_at" yaml:"updated_at"`
}

// Graduation carries the server's view of graduation progress.
type Graduation struct {
	IsGraduated          bool     `json:"is_graduated" yaml:"is_graduated"`
	ThresholdCNPY        float64  `json:"threshold_cnpy" yaml:"threshold_cnpy"`
	CurrentCNPYReserve   float64  `json:"current_cnpy_reserve" yaml:"current_cnpy_reserve"`
	CNPYRemaining        float64  `json:"cnpy_remaining" yaml:"cnpy_remaining"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty" yaml:"completion_percentage,omitempty"`
}

func (g *Graduation) equal(o *Graduation) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.IsGraduated != o.IsGraduated || g.ThresholdCNPY != o.ThresholdCNPY ||
		g.CurrentCNPYReserve != o.CurrentCNPYReserve || g.CNPYRemaining != o.CNPYRemaining {
		return false
	}
	if g.CompletionPercentage == nil || o.CompletionPercentage == nil {
		return g.CompletionPercentage == o.CompletionPercentage
	}
	return *g.CompletionPercentage == *o.CompletionPercentage
}

type PricePoint struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Price     float64   `json:"price" yaml:"price"`
}

// Chain is a token launch as served by the chains API.
type Chain struct {
	ID                  string       `json:"id" yaml:"id"`
	RawChainID          chainid.Raw  `json:"chain_id" yaml:"-"`
	ChainID             chainid.ID   `json:"-" yaml:"chain_id"`
	Name                string       `json:"chain_name" yaml:"name"`
	Symbol              string       `json:"token_symbol" yaml:"symbol"`
	Description         string       `json:"chain_description,omitempty" yaml:"description,omitempty"`
	BrandColor          string       `json:"brand_color,omitempty" yaml:"brand_color,omitempty"`
	Status              ChainStatus  `json:"status" yaml:"status"`
	GraduationThreshold float64      `json:"graduation_threshold" yaml:"graduation_threshold"`
	VirtualPool         *VirtualPool `json:"virtual_pool,omitempty" yaml:"virtual_pool,omitempty"`
	Graduation          *Graduation  `json:"graduation,omitempty" yaml:"graduation,omitempty"`
	PriceHistory        []PricePoint `json:"price_history,omitempty" yaml:"price_history,omitempty"`
	Committees          []chainid.ID `json:"committees,omitempty" yaml:"committees,omitempty"`
	IsMainChain         bool         `json:"is_main_chain,omitempty" yaml:"is_main_chain,omitempty"`
	CreatedAt           time.Time    `json:"created_at" yaml:"created_at"`
}

// Normalize derives the canonical ChainID. It runs once when a chain enters
// the process (API decode, sample generation); nothing downstream re-derives it.
func (c *Chain) Normalize() {
	c.ChainID = chainid.Resolve(c.ID, c.RawChainID)
}

func (c *Chain) UnmarshalJSON(data []byte) error {
	type plain Chain
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Chain(p)
	c.Normalize()
	return nil
}

// Key identifies a chain for de-duplication, falling back to the opaque id
// when the canonical id is unresolved.
func (c Chain) Key() string {
	if c.ChainID.Valid() {
		return c.ChainID.String()
	}
	return "id:" + c.ID
}

// VolatileFields are the parts of a chain the refresh poller re-fetches.
type VolatileFields struct {
	VirtualPool  *VirtualPool `json:"virtual_pool,omitempty"`
	Graduation   *Graduation  `json:"graduation,omitempty"`
	PriceHistory []PricePoint `json:"price_history,omitempty"`
}

// Volatile extracts the refreshable fields.
func (c Chain) Volatile() VolatileFields {
	return VolatileFields{
		VirtualPool:  c.VirtualPool,
		Graduation:   c.Graduation,
		PriceHistory: c.PriceHistory,
	}
}

// WithVolatile returns a copy of c with the refreshable fields replaced.
func (c Chain) WithVolatile(v VolatileFields) Chain {
	c.VirtualPool = v.VirtualPool
	c.Graduation = v.Graduation
	c.PriceHistory = v.PriceHistory
	return c
}

// Equal is a shallow comparison of two volatile snapshots.
func (v VolatileFields) Equal(o VolatileFields) bool {
	switch {
	case v.VirtualPool == nil || o.VirtualPool == nil:
		if v.VirtualPool != o.VirtualPool {
			return false
		}
	case *v.VirtualPool != *o.VirtualPool:
		return false
	}
	if !v.Graduation.equal(o.Graduation) {
		return false
	}
	return slices.EqualFunc(v.PriceHistory, o.PriceHistory, func(a, b PricePoint) bool {
		return a.Price == b.Price && a.Timestamp.Equal(b.Timestamp)
	})
}
