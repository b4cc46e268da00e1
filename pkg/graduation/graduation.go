// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package graduation computes how far a chain's bonding-curve pool is from
// its graduation threshold.
package graduation

import (
	"math"

	"github.com/luxfi/launchpad/pkg/models"
)

// Progress returns the graduation completion of a chain as an integer in
// [0,100]. A server supplied completion percentage wins; otherwise the
// percentage is derived from reserve and threshold. A zero or missing
// threshold yields 0.
func Progress(chain models.Chain) int {
	if g := chain.Graduation; g != nil && g.CompletionPercentage != nil {
		return clampRound(*g.CompletionPercentage)
	}
	reserve, threshold := Figures(chain)
	if threshold <= 0 || !finite(threshold) || !finite(reserve) {
		if chain.Status == models.StatusGraduated || (chain.Graduation != nil && chain.Graduation.IsGraduated) {
			return 100
		}
		return 0
	}
	return clampRound(reserve / threshold * 100)
}

// Figures returns the reserve and threshold a chain's progress is computed from.
func Figures(chain models.Chain) (reserve, threshold float64) {
	threshold = chain.GraduationThreshold
	if g := chain.Graduation; g != nil {
		if threshold <= 0 {
			threshold = g.ThresholdCNPY
		}
		reserve = g.CurrentCNPYReserve
	}
	if p := chain.VirtualPool; p != nil {
		reserve = p.CNPYReserve
	}
	return reserve, threshold
}

// Remaining is the CNPY still needed to graduate, never negative.
func Remaining(chain models.Chain) float64 {
	if g := chain.Graduation; g != nil && g.CNPYRemaining > 0 {
		return g.CNPYRemaining
	}
	reserve, threshold := Figures(chain)
	if !finite(reserve) || !finite(threshold) {
		return 0
	}
	return math.Max(threshold-reserve, 0)
}

// IsGraduated reports whether a chain has crossed its threshold.
func IsGraduated(chain models.Chain) bool {
	if chain.Status == models.StatusGraduated {
		return true
	}
	if chain.Graduation != nil && chain.Graduation.IsGraduated {
		return true
	}
	return Progress(chain) >= 100
}

func clampRound(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	return int(math.Round(math.Min(math.Max(p, 0), 100)))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
