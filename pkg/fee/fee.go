// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fee estimates transaction fees ahead of review.
package fee

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/units"
)

// EstimationError wraps any failure to obtain a usable fee.
type EstimationError struct {
	Cause error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("fee estimation failed: %v", e.Cause)
}

func (e *EstimationError) Unwrap() error {
	return e.Cause
}

// Fee is an estimated fee. Raw is the server's string, MicroUnits its value.
type Fee struct {
	Raw        string
	MicroUnits uint64
}

func (f Fee) String() string {
	return units.FormatCNPY(f.MicroUnits)
}

type Estimator struct {
	api api.FeeAPI
}

func NewEstimator(feeAPI api.FeeAPI) *Estimator {
	return &Estimator{api: feeAPI}
}

// Estimate asks the backend once. It never retries.
func (e *Estimator) Estimate(ctx context.Context, req api.FeeRequest) (Fee, error) {
	raw, err := e.api.EstimateFee(ctx, req)
	if err != nil {
		return Fee{}, &EstimationError{Cause: err}
	}
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Fee{}, &EstimationError{Cause: fmt.Errorf("server returned invalid fee %q", raw)}
	}
	return Fee{Raw: raw, MicroUnits: v}, nil
}
