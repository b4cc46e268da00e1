// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/tx"
)

var volatileIncludes = []string{"virtual_pool", "graduation", "price_history"}

func (c *Client) GetChains(ctx context.Context, opts ChainFilterOptions) ([]models.Chain, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if len(opts.Include) > 0 {
		q.Set("include", strings.Join(opts.Include, ","))
	}
	var chains []models.Chain
	if err := c.get(ctx, "/api/v1/chains", q, &chains); err != nil {
		return nil, err
	}
	return chains, nil
}

func (c *Client) GetChain(ctx context.Context, id chainid.ID) (models.Chain, error) {
	var chain models.Chain
	q := url.Values{"include": {strings.Join(volatileIncludes, ",")}}
	if err := c.get(ctx, "/api/v1/chains/"+id.String(), q, &chain); err != nil {
		return models.Chain{}, err
	}
	return chain, nil
}

// GetVolatile fetches only the fields the refresh poller tracks.
func (c *Client) GetVolatile(ctx context.Context, id chainid.ID) (models.VolatileFields, error) {
	var v models.VolatileFields
	q := url.Values{"fields": {strings.Join(volatileIncludes, ",")}}
	if err := c.get(ctx, "/api/v1/chains/"+id.String()+"/volatile", q, &v); err != nil {
		return models.VolatileFields{}, err
	}
	return v, nil
}

func (c *Client) EstimateFee(ctx context.Context, req FeeRequest) (string, error) {
	var out struct {
		EstimatedFee json.Number `json:"estimated_fee"`
	}
	if err := c.post(ctx, "/api/v1/wallet/transactions/estimate-fee", req, &out); err != nil {
		return "", err
	}
	return out.EstimatedFee.String(), nil
}

func (c *Client) GetChainHeight(ctx context.Context, id chainid.ID) (uint64, error) {
	var out struct {
		Height json.RawMessage `json:"height"`
	}
	if err := c.get(ctx, "/api/v1/chains/"+id.String()+"/height", nil, &out); err != nil {
		return 0, err
	}
	return parseHeight(out.Height)
}

// parseHeight accepts a JSON number, a decimal string or a 0x hex string.
func parseHeight(raw json.RawMessage) (uint64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, fmt.Errorf("response has no height")
	}
	if h, err := strconv.ParseUint(s, 10, 64); err == nil {
		return h, nil
	}
	h, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse height %q: %w", s, err)
	}
	return h, nil
}

func (c *Client) SendRawTransaction(ctx context.Context, signed *tx.SignedTransaction) (SendResult, error) {
	var out SendResult
	if err := c.post(ctx, "/api/v1/wallet/transactions/send-raw", &signed.Transaction, &out); err != nil {
		return SendResult{}, err
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, hash string) (TransactionStatus, error) {
	var out TransactionStatus
	if err := c.get(ctx, "/api/v1/wallet/transactions/"+url.PathEscape(hash), nil, &out); err != nil {
		return TransactionStatus{}, err
	}
	return out, nil
}

func (c *Client) GetPortfolioOverview(ctx context.Context, addresses []string) (models.PortfolioOverview, error) {
	var out models.PortfolioOverview
	body := map[string][]string{"addresses": addresses}
	if err := c.post(ctx, "/api/v1/wallet/portfolio/overview", body, &out); err != nil {
		return models.PortfolioOverview{}, err
	}
	return out, nil
}

func (c *Client) GetStakingPositions(ctx context.Context, address string) ([]models.StakingPosition, error) {
	var out []models.StakingPosition
	if err := c.get(ctx, "/api/v1/wallet/staking/positions", url.Values{"address": {address}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUnstakingQueue(ctx context.Context, address string) ([]models.UnstakingEntry, error) {
	var out []models.UnstakingEntry
	if err := c.get(ctx, "/api/v1/wallet/staking/unstaking", url.Values{"address": {address}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClaimUnstaked(ctx context.Context, entryID string) error {
	return c.post(ctx, "/api/v1/wallet/staking/unstaking/"+url.PathEscape(entryID)+"/claim", struct{}{}, nil)
}

func (c *Client) CancelUnstake(ctx context.Context, entryID string) error {
	return c.post(ctx, "/api/v1/wallet/staking/unstaking/"+url.PathEscape(entryID)+"/cancel", struct{}{}, nil)
}
