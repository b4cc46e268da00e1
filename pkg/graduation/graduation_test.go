// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package graduation

import (
	"math"
	"testing"

	"github.com/luxfi/launchpad/pkg/models"
	"github.com/stretchr/testify/require"
)

func pct(f float64) *float64 {
	return &f
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		chain    models.Chain
		expected int
	}{
		{
			name: "half way from reserve",
			chain: models.Chain{
				GraduationThreshold: 100000,
				VirtualPool:         &models.VirtualPool{CNPYReserve: 50000},
			},
			expected: 50,
		},
		{
			name: "server percentage wins",
			chain: models.Chain{
				GraduationThreshold: 100000,
				VirtualPool:         &models.VirtualPool{CNPYReserve: 50000},
				Graduation:          &models.Graduation{CompletionPercentage: pct(72.6)},
			},
			expected: 73,
		},
		{
			name:     "server percentage clamped high",
			chain:    models.Chain{Graduation: &models.Graduation{CompletionPercentage: pct(180)}},
			expected: 100,
		},
		{
			name:     "server percentage clamped low",
			chain:    models.Chain{Graduation: &models.Graduation{CompletionPercentage: pct(-4)}},
			expected: 0,
		},
		{
			name:     "zero threshold",
			chain:    models.Chain{VirtualPool: &models.VirtualPool{CNPYReserve: 50000}},
			expected: 0,
		},
		{
			name: "reserve beyond threshold",
			chain: models.Chain{
				GraduationThreshold: 1000,
				VirtualPool:         &models.VirtualPool{CNPYReserve: 5000},
			},
			expected: 100,
		},
		{
			name: "threshold from graduation block",
			chain: models.Chain{
				Graduation: &models.Graduation{ThresholdCNPY: 400, CurrentCNPYReserve: 100},
			},
			expected: 25,
		},
		{
			name:     "graduated without figures",
			chain:    models.Chain{Status: models.StatusGraduated},
			expected: 100,
		},
		{
			name: "nan reserve",
			chain: models.Chain{
				GraduationThreshold: 100,
				VirtualPool:         &models.VirtualPool{CNPYReserve: math.NaN()},
			},
			expected: 0,
		},
		{
			name:     "nan percentage",
			chain:    models.Chain{Graduation: &models.Graduation{CompletionPercentage: pct(math.NaN())}},
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.chain)
			require.Equal(t, tt.expected, got)
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, 100)
		})
	}
}

func TestRemaining(t *testing.T) {
	chain := models.Chain{
		GraduationThreshold: 100000,
		VirtualPool:         &models.VirtualPool{CNPYReserve: 50000},
	}
	require.InDelta(t, 50000, Remaining(chain), 0.0001)

	chain.VirtualPool.CNPYReserve = 200000
	require.Zero(t, Remaining(chain))
	require.True(t, IsGraduated(chain))
}
