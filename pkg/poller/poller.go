// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poller refreshes the volatile fields of the chains in view.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	luxlog "github.com/luxfi/log"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

var ErrAlreadyStarted = errors.New("poller already started")

// VolatileSource fetches the refreshable fields of one chain.
type VolatileSource interface {
	GetVolatile(ctx context.Context, id chainid.ID) (models.VolatileFields, error)
}

type Config struct {
	Interval  time.Duration
	Window    int
	BatchSize int
}

func DefaultConfig() Config {
	return Config{
		Interval:  constants.DefaultPollInterval,
		Window:    constants.DefaultPollWindow,
		BatchSize: constants.DefaultPollBatchSize,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	return c
}

// Poller periodically re-fetches volatile fields for the first Window chains
// of its Store, in batches of BatchSize. Per-chain failures are logged and
// skipped; they never abort a tick.
type Poller struct {
	cfg      Config
	source   VolatileSource
	store    *Store
	vis      Visibility
	log      luxlog.Logger
	onUpdate func([]models.Chain)

	mu     sync.Mutex
	epoch  uint64
	cron   *cron.Cron
	cancel context.CancelFunc
}

func New(cfg Config, source VolatileSource, store *Store, vis Visibility, log luxlog.Logger, onUpdate func([]models.Chain)) *Poller {
	if vis == nil {
		vis = AlwaysVisible
	}
	if onUpdate == nil {
		onUpdate = func([]models.Chain) {}
	}
	return &Poller{
		cfg:      cfg.withDefaults(),
		source:   source,
		store:    store,
		vis:      vis,
		log:      log,
		onUpdate: onUpdate,
	}
}

func (p *Poller) Config() Config {
	return p.cfg
}

// Tick runs one refresh and returns the chains that changed.
func (p *Poller) Tick(ctx context.Context) []models.Chain {
	if !p.vis.Visible() {
		return nil
	}
	p.mu.Lock()
	epoch := p.epoch
	p.mu.Unlock()

	window := p.store.Window(p.cfg.Window)
	updates := make(map[string]models.VolatileFields, len(window))
	var umu sync.Mutex

	for start := 0; start < len(window); start += p.cfg.BatchSize {
		if ctx.Err() != nil {
			return nil
		}
		end := min(start+p.cfg.BatchSize, len(window))
		var g errgroup.Group
		for _, c := range window[start:end] {
			if !c.ChainID.Valid() {
				continue
			}
			g.Go(func() error {
				v, err := p.source.GetVolatile(ctx, c.ChainID)
				if err != nil {
					if ctx.Err() == nil {
						p.log.Warn("failed to refresh chain", "chainID", c.ChainID.String(), "error", err)
					}
					return nil
				}
				umu.Lock()
				updates[c.Key()] = v
				umu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	p.mu.Lock()
	stale := epoch != p.epoch || ctx.Err() != nil
	p.mu.Unlock()
	if stale || len(updates) == 0 {
		return nil
	}

	changed := p.store.apply(updates)
	if len(changed) > 0 {
		p.log.Debug("refreshed chains", "changed", len(changed), "fetched", len(updates))
		p.onUpdate(changed)
	}
	return changed
}

// Start schedules Tick every Interval until Stop or ctx is done.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.cfg.Interval), func() { p.Tick(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("register poll task: %w", err)
	}
	c.Start()
	p.cron, p.cancel = c, cancel
	p.log.Debug("poller started", "interval", p.cfg.Interval.String(), "window", p.cfg.Window, "batch", p.cfg.BatchSize)
	return nil
}

// Stop removes the schedule and cancels in-flight fetches. Results that
// arrive afterwards are discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.epoch++
	c, cancel := p.cron, p.cancel
	p.cron, p.cancel = nil, nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
	p.log.Debug("poller stopped")
}
