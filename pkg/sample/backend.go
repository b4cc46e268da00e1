// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package sample

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/staking"
	"github.com/luxfi/launchpad/pkg/tx"
)

const (
	// Fee is the flat fee the offline backend quotes for every transaction.
	Fee = 10_000
	// StartingBalance is credited to an address the first time it is seen.
	StartingBalance = 1_000 * constants.MicroUnitsPerCNPY
	// USDPerCNPY prices portfolio values.
	USDPerCNPY = 0.42
)

var _ api.Backend = (*Backend)(nil)

// Backend is an in-memory launchpad backend. It accepts signed
// transactions, verifies their signatures and applies them to its own
// balances and staking book. Each accepted transaction produces one block.
type Backend struct {
	mu       sync.Mutex
	chains   []models.Chain
	balances map[string]uint64
	book     *staking.Book
	txs      map[string]api.TransactionStatus
	height   uint64
	now      func() time.Time
}

// NewBackend serves Chains(n, seed).
func NewBackend(n int, seed int64) *Backend {
	return &Backend{
		chains:   Chains(n, seed),
		balances: map[string]uint64{},
		book:     staking.NewBook(nil),
		txs:      map[string]api.TransactionStatus{},
		height:   1,
		now:      time.Now,
	}
}

// Fund sets the liquid balance of address.
func (b *Backend) Fund(address string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[address] = amount
}

// Height is the current block height.
func (b *Backend) Height() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height
}

// balanceLocked returns address's balance, crediting newcomers.
func (b *Backend) balanceLocked(address string) uint64 {
	bal, ok := b.balances[address]
	if !ok {
		bal = StartingBalance
		b.balances[address] = bal
	}
	return bal
}

func notFound(format string, args ...any) error {
	return &api.Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func rejected(format string, args ...any) error {
	return &api.Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func (b *Backend) GetChains(_ context.Context, opts api.ChainFilterOptions) ([]models.Chain, error) {
	key, err := chains.ParseSortKey(opts.Sort)
	if err != nil {
		return nil, rejected("%s", err)
	}
	b.mu.Lock()
	all := chains.Pipeline(b.chains, chains.Filter{Status: opts.Status, Query: opts.Search}, key, 0)
	b.mu.Unlock()

	if opts.Limit <= 0 {
		return all, nil
	}
	page := max(opts.Page, 1)
	start := (page - 1) * opts.Limit
	if start >= len(all) {
		return []models.Chain{}, nil
	}
	return all[start:min(start+opts.Limit, len(all))], nil
}

func (b *Backend) GetChain(_ context.Context, id chainid.ID) (models.Chain, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.chains {
		if c.ChainID == id {
			return c, nil
		}
	}
	return models.Chain{}, notFound("chain %s not found", id)
}

// GetVolatile advances a launching chain's pool by one percent of its
// threshold per call so watch output moves. A chain that reaches the
// threshold graduates.
func (b *Backend) GetVolatile(_ context.Context, id chainid.ID) (models.VolatileFields, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.chains {
		if c.ChainID != id {
			continue
		}
		if c.Status == models.StatusVirtualActive && c.VirtualPool != nil && c.GraduationThreshold > 0 {
			pool := *c.VirtualPool
			pool.CNPYReserve = min(round2(pool.CNPYReserve+c.GraduationThreshold/100), c.GraduationThreshold)
			pool.UpdatedAt = b.now()
			grad := &models.Graduation{
				ThresholdCNPY:      c.GraduationThreshold,
				CurrentCNPYReserve: pool.CNPYReserve,
				CNPYRemaining:      round2(c.GraduationThreshold - pool.CNPYReserve),
			}
			if pool.CNPYReserve >= c.GraduationThreshold {
				grad.IsGraduated = true
				c.Status = models.StatusGraduated
			}
			c.VirtualPool = &pool
			c.Graduation = grad
			b.chains[i] = c
		}
		return c.Volatile(), nil
	}
	return models.VolatileFields{}, notFound("chain %s not found", id)
}

func (b *Backend) EstimateFee(_ context.Context, req api.FeeRequest) (string, error) {
	if !req.TxType.Valid() {
		return "", rejected("unknown transaction type %q", req.TxType)
	}
	return strconv.Itoa(Fee), nil
}

func (b *Backend) GetChainHeight(ctx context.Context, id chainid.ID) (uint64, error) {
	if _, err := b.GetChain(ctx, id); err != nil {
		return 0, err
	}
	return b.Height(), nil
}

// SendRawTransaction verifies and applies signed. A rejected transaction
// changes nothing.
func (b *Backend) SendRawTransaction(_ context.Context, signed *tx.SignedTransaction) (api.SendResult, error) {
	if err := tx.Verify(signed); err != nil {
		return api.SendResult{}, rejected("invalid signature: %s", err)
	}
	if signed.Fee < Fee {
		return api.SendResult{}, rejected("fee below minimum of %d", Fee)
	}
	id := signed.ID
	if id == "" {
		var err error
		if id, err = tx.ComputeID(signed); err != nil {
			return api.SendResult{}, rejected("%s", err)
		}
	}
	hash := "0x" + id

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.txs[hash]; dup {
		return api.SendResult{}, rejected("transaction already exists")
	}
	if err := b.applyLocked(signed); err != nil {
		return api.SendResult{}, err
	}
	b.txs[hash] = api.TransactionStatus{Hash: hash, Status: "committed", Height: b.height, Time: b.now()}
	b.height++
	b.book.Queue().Advance(1, int64(constants.BlockTime/time.Second))
	return api.SendResult{TransactionHash: hash}, nil
}

func (b *Backend) applyLocked(signed *tx.SignedTransaction) error {
	chain := chainid.ID(signed.ChainID)
	switch m := signed.Msg.(type) {
	case *tx.SendMessage:
		return b.debitLocked(m.FromAddress, m.Amount+signed.Fee, func() error {
			b.balances[m.ToAddress] = b.balanceLocked(m.ToAddress) + m.Amount
			return nil
		})
	case *tx.StakeMessage:
		return b.debitLocked(m.Address, m.Amount+signed.Fee, func() error {
			b.book.ApplyStake(m.Address, chain, m.Amount, committees(m.Committees), m.Compound)
			return nil
		})
	case *tx.EditStakeMessage:
		p, ok := b.book.ForChain(m.Address, chain)
		if !ok {
			return rejected("no stake on chain %s", chain)
		}
		if m.Amount < p.Amount {
			return rejected("%s", staking.EditBelowCurrentMessage)
		}
		return b.debitLocked(m.Address, m.Amount-p.Amount+signed.Fee, func() error {
			_, err := b.book.ApplyEdit(p.ID, m.Amount, committees(m.Committees), m.Compound)
			return err
		})
	case *tx.UnstakeMessage:
		p, ok := b.book.ForChain(m.Address, chain)
		if !ok {
			return rejected("no stake on chain %s", chain)
		}
		if m.Amount > p.Amount {
			return rejected("unstake amount exceeds the staked amount")
		}
		amount := m.Amount
		if amount == 0 {
			amount = p.Amount
		}
		return b.debitLocked(m.Address, signed.Fee, func() error {
			_, err := b.book.ApplyUnstakeAmount(p.ID, amount, constants.UnbondingBlocks, constants.BlockTime)
			return err
		})
	default:
		return rejected("unsupported transaction type %q", signed.Type)
	}
}

// debitLocked takes amount from address and runs apply. The transaction is
// rejected when the balance is short or apply fails, and a failed apply
// refunds the debit.
func (b *Backend) debitLocked(address string, amount uint64, apply func() error) error {
	bal := b.balanceLocked(address)
	if bal < amount {
		return rejected("insufficient funds")
	}
	b.balances[address] = bal - amount
	if err := apply(); err != nil {
		b.balances[address] = bal
		return rejected("%s", err.Error())
	}
	return nil
}

func committees(ids []uint64) []chainid.ID {
	out := make([]chainid.ID, 0, len(ids))
	for _, id := range ids {
		out = append(out, chainid.ID(id))
	}
	return out
}

func (b *Backend) GetTransaction(_ context.Context, hash string) (api.TransactionStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.txs[hash]
	if !ok {
		return api.TransactionStatus{}, notFound("transaction %s not found", hash)
	}
	return st, nil
}

// GetPortfolioOverview reports each address's main chain balance and the
// total it has staked.
func (b *Backend) GetPortfolioOverview(_ context.Context, addresses []string) (models.PortfolioOverview, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	main := MainChain()
	var p models.PortfolioOverview
	for _, addr := range addresses {
		var staked uint64
		for _, pos := range b.book.Positions() {
			if pos.Address == addr {
				staked += pos.Amount
			}
		}
		bal := b.balanceLocked(addr)
		value := round2(float64(bal+staked) / constants.MicroUnitsPerCNPY)
		p.Accounts = append(p.Accounts, models.AccountBalance{
			Address:   addr,
			ChainID:   main.ChainID,
			ChainName: main.Name,
			Symbol:    main.Symbol,
			Balance:   bal,
			Staked:    staked,
			ValueCNPY: value,
			ValueUSD:  round2(value * USDPerCNPY),
		})
		p.TotalValueCNPY += value
		p.TotalValueUSD += round2(value * USDPerCNPY)
	}
	return p, nil
}

func (b *Backend) GetStakingPositions(_ context.Context, address string) ([]models.StakingPosition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.StakingPosition{}
	for _, p := range b.book.Positions() {
		if p.Address != address {
			continue
		}
		if c, ok := chains.Find(b.chains, p.ChainID.String()); ok {
			p.ChainName = c.Name
		}
		out = append(out, p)
	}
	return out, nil
}

func (b *Backend) GetUnstakingQueue(_ context.Context, address string) ([]models.UnstakingEntry, error) {
	out := []models.UnstakingEntry{}
	for _, e := range b.book.Queue().Entries() {
		if e.Address == address {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClaimUnstaked pays a ready entry back to its owner.
func (b *Backend) ClaimUnstaked(_ context.Context, entryID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.book.Queue().Claim(entryID)
	if err != nil {
		return rejected("%s", err)
	}
	b.balances[e.Address] = b.balanceLocked(e.Address) + e.Amount
	return nil
}

// CancelUnstake returns a pending entry to its position.
func (b *Backend) CancelUnstake(_ context.Context, entryID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.book.CancelUnstake(entryID); err != nil {
		return rejected("%s", err)
	}
	return nil
}
