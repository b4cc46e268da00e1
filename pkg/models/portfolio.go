// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import "github.com/luxfi/launchpad/pkg/chainid"

// AccountBalance is one address's holdings on one chain.
type AccountBalance struct {
	Address   string     `json:"address" yaml:"address"`
	ChainID   chainid.ID `json:"chain_id" yaml:"chain_id"`
	ChainName string     `json:"chain_name" yaml:"chain_name"`
	Symbol    string     `json:"token_symbol" yaml:"symbol"`
	Balance   uint64     `json:"balance" yaml:"balance"`
	Staked    uint64     `json:"staked" yaml:"staked"`
	ValueCNPY float64    `json:"value_cnpy" yaml:"value_cnpy"`
	ValueUSD  float64    `json:"value_usd" yaml:"value_usd"`
}

type PortfolioOverview struct {
	Accounts       []AccountBalance `json:"accounts" yaml:"accounts"`
	TotalValueUSD  float64          `json:"total_value_usd" yaml:"total_value_usd"`
	TotalValueCNPY float64          `json:"total_value_cnpy" yaml:"total_value_cnpy"`
}

// Available returns the liquid balance for address on chain.
func (p PortfolioOverview) Available(address string, chain chainid.ID) uint64 {
	var total uint64
	for _, a := range p.Accounts {
		if a.Address == address && a.ChainID == chain {
			total += a.Balance
		}
	}
	return total
}
