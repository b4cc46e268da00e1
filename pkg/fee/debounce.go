// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package fee

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/constants"
)

// Result is delivered for the latest trigger only.
type Result struct {
	Request api.FeeRequest
	Fee     Fee
	Err     error
}

// Debouncer coalesces rapid amount edits into one estimate. Each Trigger
// restarts the quiet period and cancels any call already in flight, so only
// the most recent request can produce a Result.
type Debouncer struct {
	estimator *Estimator
	quiet     time.Duration
	onResult  func(Result)

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer returns a debouncer with the given quiet period, raised to
// the 500ms floor when shorter.
func NewDebouncer(estimator *Estimator, quiet time.Duration, onResult func(Result)) *Debouncer {
	if quiet < constants.MinFeeDebounce {
		quiet = constants.MinFeeDebounce
	}
	return &Debouncer{estimator: estimator, quiet: quiet, onResult: onResult}
}

func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

func (d *Debouncer) Trigger(ctx context.Context, req api.FeeRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.resetLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(ctx, gen, req) })
}

func (d *Debouncer) fire(parent context.Context, gen uint64, req api.FeeRequest) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.mu.Unlock()

	f, err := d.estimator.Estimate(ctx, req)
	cancel()

	d.mu.Lock()
	current := !d.stopped && gen == d.gen
	d.mu.Unlock()
	if current {
		d.onResult(Result{Request: req, Fee: f, Err: err})
	}
}

// Stop cancels the pending timer and any in-flight call. Later results are
// dropped and further triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	d.resetLocked()
}

func (d *Debouncer) resetLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
