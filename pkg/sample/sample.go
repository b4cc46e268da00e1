// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sample generates deterministic offline data for demos and tests.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
)

var names = []string{
	"Aurora", "Basalt", "Cinder", "Delta", "Ember", "Fjord", "Granite", "Harbor",
	"Iris", "Juniper", "Kestrel", "Lumen", "Meridian", "Nimbus", "Onyx", "Pylon",
	"Quartz", "Rowan", "Sable", "Tundra", "Umber", "Vesper", "Willow", "Zephyr",
}

var colors = []string{"#1dd1a1", "#5f27cd", "#ff9f43", "#0abde3", "#ee5253", "#10ac84"}

// Epoch anchors generated timestamps so output is reproducible.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// MainChain is the root chain every stake delegates to.
func MainChain() models.Chain {
	c := models.Chain{
		ID:                  "1",
		RawChainID:          chainid.RawNumber(constants.MainChainID),
		Name:                "Canopy",
		Symbol:              constants.TokenSymbol,
		Description:         "The root chain.",
		BrandColor:          "#1dd1a1",
		Status:              models.StatusGraduated,
		GraduationThreshold: 0,
		Graduation:          &models.Graduation{IsGraduated: true},
		IsMainChain:         true,
		CreatedAt:           Epoch.AddDate(-1, 0, 0),
	}
	c.Normalize()
	return c
}

// Chains returns the main chain followed by n launches. The same seed always
// yields the same chains. Ids alternate between the three encodings the
// backend produces: numeric id, uuid with a "virt-chain-N" chain_id, and uuid
// with a numeric chain_id.
func Chains(n int, seed int64) []models.Chain {
	r := rand.New(rand.NewSource(seed))
	out := make([]models.Chain, 0, n+1)
	out = append(out, MainChain())

	for i := 0; i < n; i++ {
		num := uint64(constants.MainChainID) + 1 + uint64(i)
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}
		threshold := float64(50_000 + r.Intn(10)*10_000)
		reserve := threshold * r.Float64() * 1.1
		status := models.StatusVirtualActive
		switch {
		case i%7 == 6:
			status = models.StatusPendingLaunch
			reserve = 0
		case reserve >= threshold:
			status = models.StatusGraduated
		}

		c := models.Chain{
			Name:                name,
			Symbol:              symbol(name),
			Description:         fmt.Sprintf("%s launchpad chain.", name),
			BrandColor:          colors[i%len(colors)],
			Status:              status,
			GraduationThreshold: threshold,
			CreatedAt:           Epoch.Add(time.Duration(i) * 6 * time.Hour),
			Committees:          []chainid.ID{chainid.ID(constants.MainChainID)},
		}
		id := mustUUID(r)
		switch i % 3 {
		case 0:
			c.ID = chainid.ID(num).String()
		case 1:
			c.ID = id
			c.RawChainID = chainid.RawString(fmt.Sprintf("virt-chain-%d", num))
		default:
			c.ID = id
			c.RawChainID = chainid.RawNumber(num)
		}

		price := 0.0001 + r.Float64()*0.01
		if status != models.StatusPendingLaunch {
			c.VirtualPool = &models.VirtualPool{
				CNPYReserve:           round2(reserve),
				TokenReserve:          round2(reserve / price),
				CurrentPriceCNPY:      price,
				MarketCapUSD:          round2(reserve * (1.5 + r.Float64())),
				Volume24hCNPY:         round2(reserve * r.Float64() * 0.4),
				PriceChange24hPercent: round2(r.Float64()*40 - 20),
				UniqueTraders:         r.Intn(900) + 10,
				TotalTransactions:     r.Intn(5000) + 20,
				UpdatedAt:             Epoch,
			}
			c.PriceHistory = history(r, price, c.CreatedAt)
		}
		c.Graduation = &models.Graduation{
			IsGraduated:        status == models.StatusGraduated,
			ThresholdCNPY:      threshold,
			CurrentCNPYReserve: round2(reserve),
			CNPYRemaining:      round2(max(threshold-reserve, 0)),
		}
		c.Normalize()
		out = append(out, c)
	}
	return out
}

// Stakes returns positions for address on the main chain and every third
// launch, delegating to the main chain and the launch itself.
func Stakes(address string, list []models.Chain) []models.StakingPosition {
	var out []models.StakingPosition
	for i, c := range list {
		if !c.ChainID.Valid() || (i%3 != 0 && !c.IsMainChain) {
			continue
		}
		committees := chainid.Sorted([]chainid.ID{chainid.ID(constants.MainChainID), c.ChainID})
		out = append(out, models.StakingPosition{
			ID:           fmt.Sprintf("stake-%s-%s", address, c.ChainID),
			Address:      address,
			ChainID:      c.ChainID,
			ChainName:    c.Name,
			Amount:       uint64(100+i*25) * constants.MicroUnitsPerCNPY,
			APY:          8 + float64(i%5),
			Committees:   committees,
			AutoCompound: i%2 == 0,
			Rewards:      uint64(i+1) * 125_000,
			Status:       models.PositionStaked,
			StakedAt:     Epoch.AddDate(0, 0, i),
		})
	}
	return out
}

// Portfolio returns a balance per chain for address.
func Portfolio(address string, list []models.Chain) models.PortfolioOverview {
	var p models.PortfolioOverview
	for i, c := range list {
		if !c.ChainID.Valid() {
			continue
		}
		bal := uint64(1_000+i*150) * constants.MicroUnitsPerCNPY
		price := 1.0
		if c.VirtualPool != nil {
			price = c.VirtualPool.CurrentPriceCNPY
		}
		value := float64(bal) / constants.MicroUnitsPerCNPY * price
		p.Accounts = append(p.Accounts, models.AccountBalance{
			Address:   address,
			ChainID:   c.ChainID,
			ChainName: c.Name,
			Symbol:    c.Symbol,
			Balance:   bal,
			ValueCNPY: round2(value),
			ValueUSD:  round2(value * 0.42),
		})
		p.TotalValueCNPY += round2(value)
		p.TotalValueUSD += round2(value * 0.42)
	}
	return p
}

func history(r *rand.Rand, price float64, from time.Time) []models.PricePoint {
	points := make([]models.PricePoint, 24)
	p := price * 0.8
	for i := range points {
		p *= 1 + (r.Float64()-0.45)*0.05
		points[i] = models.PricePoint{Timestamp: from.Add(time.Duration(i) * time.Hour), Price: p}
	}
	return points
}

func symbol(name string) string {
	s := make([]byte, 0, 4)
	for i := 0; i < len(name) && len(s) < 4; i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			s = append(s, c)
		}
	}
	return string(s)
}

func mustUUID(r *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		panic(err)
	}
	return id.String()
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
