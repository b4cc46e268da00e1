// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package chaincmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var showOutput string

// launchpad chains show
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <chain>",
		Short: "Show one launch and its graduation progress",
		Long: `The chains show command prints a launch's details, its bonding-curve pool
and how far it is from graduating.`,
		Args: cobrautils.ExactArgs(1),
		RunE: showChain,
	}
	flags.AddOutputFlag(cmd, &showOutput)
	return cmd
}

func showChain(cmd *cobra.Command, args []string) error {
	format, err := flags.ResolveOutput(app, showOutput)
	if err != nil {
		return err
	}
	chain, err := resolveChain(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return flags.Render(ux.Logger.Writer(), format, chain, func(w io.Writer) error {
		return printChain(w, chain, isTerminal(w))
	})
}

func printChain(w io.Writer, c models.Chain, tty bool) error {
	fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Symbol)
	fmt.Fprintf(w, "Chain ID:    %s\n", c.ChainID)
	fmt.Fprintf(w, "Status:      %s\n", c.Status)
	if c.Description != "" {
		fmt.Fprintf(w, "About:       %s\n", c.Description)
	}
	if len(c.Committees) > 0 {
		ids := make([]string, 0, len(c.Committees))
		for _, id := range chainid.Sorted(c.Committees) {
			ids = append(ids, id.String())
		}
		fmt.Fprintf(w, "Committees:  %s\n", strings.Join(ids, ", "))
	}
	if p := c.VirtualPool; p != nil {
		fmt.Fprintf(w, "Price:       %.6f CNPY (%s 24h)\n", p.CurrentPriceCNPY, ux.FormatPercentChange(p.PriceChange24hPercent))
		fmt.Fprintf(w, "Market cap:  %s\n", ux.FormatUSD(p.MarketCapUSD))
		fmt.Fprintf(w, "Traders:     %d\n", p.UniqueTraders)
	}
	fmt.Fprintln(w)
	return ux.GraduationBar(w, c, tty)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
