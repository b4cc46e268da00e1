// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package chaincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/poller"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	watchFilter filterFlags
	watchOnce   bool
)

// launchpad chains watch
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow graduation progress as pools move",
		Long: `The chains watch command loads a page of launches and refreshes their pool
figures every poll-interval, printing a line whenever a chain's graduation
progress or price changes. Only the first poll-window chains are refreshed.

Refreshing pauses while output is not a terminal. Press Enter to pause or
resume, and Ctrl+C to stop.`,
		Args: cobrautils.ExactArgs(0),
		RunE: watchChains,
	}
	cmd.Flags().BoolVar(&watchOnce, "once", false, "refresh a single time and exit")
	group := addFilterFlags(cmd, &watchFilter, 0)
	flags.SetGroupedUsage(cmd, group)
	return cmd
}

func watchChains(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	list, err := watchFilter.load(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ux.Logger.PrintToUser("No chains match.")
		return nil
	}

	store := poller.NewStore(list)
	cfg := app.PollerConfig()
	// a single refresh is explicit, so it runs even when piped
	var vis poller.Visibility = poller.AlwaysVisible
	var term *poller.TerminalVisibility
	if !watchOnce {
		term = poller.NewTerminalVisibility(os.Stdout)
		vis = term
	}
	p := poller.New(cfg, app.Backend(), store, vis, app.Log, printUpdates)

	if watchOnce {
		changed := p.Tick(ctx)
		if len(changed) == 0 {
			ux.Logger.PrintToUser("No changes.")
		}
		return nil
	}

	ux.Logger.PrintToUser("Watching %d chains every %s. Press Enter to pause, Ctrl+C to stop.", min(len(list), cfg.Window), cfg.Interval)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if isTerminal(os.Stdin) {
		go togglePause(ctx, term)
	}
	if err := p.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	p.Stop()
	return nil
}

func printUpdates(changed []models.Chain) {
	for _, c := range changed {
		line := fmt.Sprintf("%-8s %-24s %s", c.ChainID, c.Name, ux.GraduationLine(graduation.Progress(c)))
		if c.VirtualPool != nil {
			line += fmt.Sprintf("  %.6f CNPY %s", c.VirtualPool.CurrentPriceCNPY, ux.FormatPercentChange(c.VirtualPool.PriceChange24hPercent))
		}
		ux.Logger.PrintToUser("%s", line)
	}
}

// togglePause flips refreshing on every line read from stdin. The reader
// goroutine ends with the process; a blocked read cannot be cancelled.
func togglePause(ctx context.Context, term *poller.TerminalVisibility) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if term.Toggle() {
			ux.Logger.PrintToUser("Paused. Press Enter to resume.")
		} else {
			ux.Logger.PrintToUser("Resumed.")
		}
	}
}
