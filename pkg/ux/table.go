// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/submit"
	"github.com/luxfi/launchpad/pkg/units"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultTable creates a left-aligned table with headers.
func DefaultTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewTable(w)
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	table.Header(anyHeaders...)
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignLeft
	})
	return table
}

func renderRows(table *tablewriter.Table, rows [][]string) error {
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func ChainsTable(w io.Writer, list []models.Chain) error {
	table := DefaultTable(w, "ID", "Name", "Symbol", "Status", "Graduation", "Price (CNPY)", "24h Volume", "24h", "Market Cap")
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		price, volume, change, mcap := "-", "-", "-", "-"
		if p := c.VirtualPool; p != nil {
			price = fmt.Sprintf("%.6f", p.CurrentPriceCNPY)
			volume = printer.Sprintf("%.2f", p.Volume24hCNPY)
			change = FormatPercentChange(p.PriceChange24hPercent)
			mcap = FormatUSD(p.MarketCapUSD)
		}
		rows = append(rows, []string{
			c.ChainID.String(), c.Name, c.Symbol, string(c.Status),
			fmt.Sprintf("%d%%", graduation.Progress(c)), price, volume, change, mcap,
		})
	}
	return renderRows(table, rows)
}

func PositionsTable(w io.Writer, list []models.StakingPosition) error {
	table := DefaultTable(w, "Position", "Chain", "Staked", "APY", "Rewards", "Committees", "Compound", "Status")
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		chain := p.ChainID.String()
		if p.ChainName != "" {
			chain = fmt.Sprintf("%s (#%s)", p.ChainName, p.ChainID)
		}
		rows = append(rows, []string{
			p.ID, chain, units.FormatCNPY(p.Amount), fmt.Sprintf("%.2f%%", p.APY),
			units.FormatCNPY(p.Rewards), joinIDs(p.Committees), yesNo(p.AutoCompound), string(p.Status),
		})
	}
	return renderRows(table, rows)
}

func UnstakingTable(w io.Writer, list []models.UnstakingEntry) error {
	table := DefaultTable(w, "Entry", "Chain", "Amount", "Blocks Left", "Time Left", "Status")
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			e.ID, e.ChainID.String(), units.FormatCNPY(e.Amount),
			ConvertToStringWithThousandSeparator(e.RemainingBlocks), e.RemainingTime().String(), string(e.Status),
		})
	}
	return renderRows(table, rows)
}

func PortfolioTable(w io.Writer, p models.PortfolioOverview) error {
	table := DefaultTable(w, "Address", "Chain", "Balance", "Staked", "Value (CNPY)", "Value (USD)")
	rows := make([][]string, 0, len(p.Accounts)+1)
	for _, a := range p.Accounts {
		chain := a.ChainName
		if chain == "" {
			chain = "#" + a.ChainID.String()
		}
		rows = append(rows, []string{
			a.Address, chain, units.FormatDecimal(a.Balance) + " " + a.Symbol, units.FormatDecimal(a.Staked),
			printer.Sprintf("%.2f", a.ValueCNPY), FormatUSD(a.ValueUSD),
		})
	}
	rows = append(rows, []string{"Total", "", "", "", printer.Sprintf("%.2f", p.TotalValueCNPY), FormatUSD(p.TotalValueUSD)})
	return renderRows(table, rows)
}

func HistoryTable(w io.Writer, list []recorder.TxRecord) error {
	table := DefaultTable(w, "Time", "Type", "Chain", "Amount", "Fee", "Status", "Hash")
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		hash := submit.ShortHash(r.Hash)
		if r.Status == recorder.TxFailed && r.Error != "" {
			hash = r.Error
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Type, r.ChainID.String(),
			units.FormatCNPY(r.Amount), units.FormatCNPY(r.Fee), string(r.Status), hash,
		})
	}
	return renderRows(table, rows)
}

func KeysTable(w io.Writer, list []wallet.Info) error {
	table := DefaultTable(w, "Name", "Curve", "Address", "Account", "Locked")
	rows := make([][]string, 0, len(list))
	for _, k := range list {
		rows = append(rows, []string{k.Name, string(k.Curve), k.Address, fmt.Sprint(k.Account), yesNo(k.Locked)})
	}
	return renderRows(table, rows)
}

func joinIDs(ids []chainid.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
