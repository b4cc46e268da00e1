// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package chaincmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var app *application.Launchpad

// NewCmd creates the chains command suite for browsing launches
func NewCmd(injectedApp *application.Launchpad) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:     "chains",
		Aliases: []string{"chain"},
		Short:   "Browse token launches",
		Long: `The chains command suite lists launches, shows a single launch with its
graduation progress, and watches launches as their pools move.

Chains are identified by their numeric chain id. The opaque id the API
returns is accepted too.`,
		RunE: cobrautils.CommandSuiteUsage,
	}

	// launchpad chains list
	cmd.AddCommand(newListCmd())
	// launchpad chains show
	cmd.AddCommand(newShowCmd())
	// launchpad chains watch
	cmd.AddCommand(newWatchCmd())
	return cmd
}

type filterFlags struct {
	status           string
	search           string
	sort             string
	limit            int
	page             int
	minProgress      int
	excludeGraduated bool
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags, defaultLimit int) flags.GroupedFlags {
	return flags.RegisterFlagGroup(cmd, "Filter Flags", func(set *pflag.FlagSet) {
		set.StringVar(&f.status, "status", "", "only chains in this status: pending_launch, virtual_active or graduated")
		set.StringVarP(&f.search, "search", "s", "", "match name, symbol or id")
		set.StringVar(&f.sort, "sort", string(chains.SortTrending), "sort key: "+sortKeys())
		set.IntVarP(&f.limit, "limit", "l", defaultLimit, "maximum number of chains, 0 for all")
		set.IntVar(&f.page, "page", 1, "page of results when --limit is set")
		set.IntVar(&f.minProgress, "min-progress", 0, "only chains at or above this graduation percentage")
		set.BoolVar(&f.excludeGraduated, "exclude-graduated", false, "hide chains that already graduated")
	})
}

func sortKeys() string {
	keys := make([]string, len(chains.SortKeys))
	for i, k := range chains.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

// load fetches one page from the backend and runs it through the local
// pipeline, which also drops duplicate chains the API may return.
func (f *filterFlags) load(ctx context.Context) ([]models.Chain, error) {
	status := models.ChainStatus(f.status)
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q (use pending_launch, virtual_active or graduated)", f.status)
	}
	key, err := chains.ParseSortKey(f.sort)
	if err != nil {
		return nil, err
	}
	if f.minProgress < 0 || f.minProgress > 100 {
		return nil, fmt.Errorf("--min-progress must be between 0 and 100")
	}
	list, err := app.Backend().GetChains(ctx, api.ChainFilterOptions{
		Status:  status,
		Search:  f.search,
		Sort:    string(key),
		Page:    f.page,
		Limit:   f.limit,
		Include: []string{"virtual_pool"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	filter := chains.Filter{
		Status:           status,
		Query:            f.search,
		MinProgress:      f.minProgress,
		ExcludeGraduated: f.excludeGraduated,
	}
	return chains.Pipeline(list, filter, key, f.limit), nil
}

// resolveChain accepts a numeric chain id or an opaque API id.
func resolveChain(ctx context.Context, ref string) (models.Chain, error) {
	backend := app.Backend()
	if id, err := chainid.Parse(ref); err == nil && id.Valid() {
		c, err := backend.GetChain(ctx, id)
		if err == nil {
			return c, nil
		}
		if !api.IsNotFound(err) {
			return models.Chain{}, err
		}
	}
	list, err := backend.GetChains(ctx, api.ChainFilterOptions{Search: ref})
	if err != nil {
		return models.Chain{}, err
	}
	if c, ok := chains.Find(list, ref); ok {
		return c, nil
	}
	return models.Chain{}, fmt.Errorf("%w: %q", constants.ErrChainNotFound, ref)
}
