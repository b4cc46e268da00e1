// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wizard drives the stake, edit, unstake and send flows from amount
// entry through review to submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/fee"
	"github.com/luxfi/launchpad/pkg/staking"
	"github.com/luxfi/launchpad/pkg/submit"
	"github.com/luxfi/launchpad/pkg/tx"
	"github.com/luxfi/launchpad/pkg/units"
	"github.com/luxfi/launchpad/pkg/wallet"
	luxlog "github.com/luxfi/log"
)

const (
	LockedBanner      = "Wallet is locked. Unlock it to confirm this transaction."
	ZeroAmountMessage = "Amount must be greater than zero"
	OverBalanceReason = "Amount exceeds available balance"
	NothingStaked     = "Nothing is staked on this chain"
	PercentRange      = "Percentage must be a whole number from 1 to 100"
)

var (
	// ErrInvalidTransition is returned when an action does not apply to the
	// current step.
	ErrInvalidTransition = errors.New("action not available in the current step")
	// ErrStale is returned when the wizard was closed while a step ran. The
	// step's result is discarded.
	ErrStale = errors.New("wizard was closed before the step finished")
	// ErrCancelled is returned by Run when the user backs out.
	ErrCancelled = errors.New("cancelled")
)

// Submitter sends a signed transaction.
type Submitter interface {
	Submit(ctx context.Context, signed *tx.SignedTransaction, opts ...submit.Option) (submit.Receipt, error)
}

// Deps are the collaborators a Controller needs.
type Deps struct {
	Fees      *fee.Estimator
	Heights   api.HeightAPI
	Keys      tx.KeySource
	Submitter Submitter
	NetworkID uint64
	// FeeDebounce is the quiet period before an amount edit is priced.
	FeeDebounce time.Duration
	Log         luxlog.Logger
	Now         func() time.Time
}

type Controller struct {
	deps   Deps
	op     Operation
	signer *tx.Signer

	mu        sync.Mutex
	state     State
	epoch     uint64
	banner    string
	input     string
	amount    uint64
	fee       *fee.Fee
	feeAmount uint64
	debouncer *fee.Debouncer
	cancel    context.CancelFunc
}

func New(op Operation, deps Deps) (*Controller, error) {
	if err := op.validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Fees == nil:
		return nil, errors.New("wizard: missing fee estimator")
	case deps.Heights == nil:
		return nil, errors.New("wizard: missing height source")
	case deps.Keys == nil:
		return nil, errors.New("wizard: missing key source")
	case deps.Submitter == nil:
		return nil, errors.New("wizard: missing submitter")
	}
	if deps.Log == nil {
		deps.Log = luxlog.NewNoOpLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	c := &Controller{
		deps:   deps,
		op:     op,
		signer: tx.NewSigner(deps.Keys),
		state:  Selecting{},
	}
	c.debouncer = c.newDebouncerLocked()
	return c, nil
}

func (c *Controller) Operation() Operation {
	return c.op
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Banner is the current dismissible error, or "".
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

func (c *Controller) DismissBanner() {
	c.mu.Lock()
	c.banner = ""
	c.mu.Unlock()
}

// Fee is the most recent estimate for the entered amount.
func (c *Controller) Fee() (fee.Fee, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fee == nil || c.feeAmount != c.amount {
		return fee.Fee{}, false
	}
	return *c.fee, true
}

// ParseAmount turns user input into micro-units for the operation. Full
// unstake ignores the input and uses the whole position. Partial unstake
// reads a percentage.
func (c *Controller) ParseAmount(input string) (uint64, error) {
	staked := c.op.CurrentlyStaked
	switch c.op.Kind {
	case OpUnstake:
		if staked == 0 {
			return 0, &units.ValidationError{Reason: NothingStaked}
		}
		return staked, nil
	case OpUnstakePartial:
		if staked == 0 {
			return 0, &units.ValidationError{Reason: NothingStaked}
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(input), "%"))
		if err != nil || pct < 1 || pct > 100 {
			return 0, &units.ValidationError{Field: "percentage", Reason: PercentRange}
		}
		amount := units.Percent(staked, pct)
		if amount == 0 {
			return 0, &units.ValidationError{Reason: ZeroAmountMessage}
		}
		return amount, nil
	}

	amount, err := units.ToMicroUnits(input)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, &units.ValidationError{Reason: ZeroAmountMessage}
	}
	limit := c.op.Available
	if c.op.Kind == OpEditStake {
		limit += staked
		if amount < staked {
			return 0, &units.ValidationError{Reason: staking.EditBelowCurrentMessage}
		}
	}
	if amount > limit {
		return 0, &units.ValidationError{Reason: OverBalanceReason}
	}
	return amount, nil
}

// Validate reports why Continue would be disabled for input, or nil.
func (c *Controller) Validate(input string) error {
	_, err := c.ParseAmount(input)
	return err
}

func (c *Controller) CanContinue(input string) bool {
	return c.Validate(input) == nil
}

// Input records an amount edit. A valid amount is priced after the debounce
// quiet period; rapid edits produce a single estimate for the last one.
func (c *Controller) Input(ctx context.Context, input string) error {
	amount, err := c.ParseAmount(input)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state.(Selecting); !ok {
		return ErrInvalidTransition
	}
	c.input = input
	if err != nil {
		c.amount = 0
		return err
	}
	c.amount = amount
	if c.fee != nil && c.feeAmount == amount {
		return nil
	}
	c.debouncer.Trigger(ctx, c.feeRequest(amount))
	return nil
}

// Continue moves from Selecting to Reviewing once a fee is known for the
// amount. Without a cached estimate it asks once; on failure the wizard
// stays in Selecting and the error is shown as the banner.
func (c *Controller) Continue(ctx context.Context, input string) error {
	amount, err := c.ParseAmount(input)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if _, ok := c.state.(Selecting); !ok {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.input = input
	c.amount = amount
	if c.fee != nil && c.feeAmount == amount {
		c.state = Reviewing{Amount: amount, Fee: *c.fee}
		c.banner = ""
		c.mu.Unlock()
		return nil
	}
	// Drop any pending debounced estimate; this call replaces it.
	c.debouncer.Stop()
	c.debouncer = c.newDebouncerLocked()
	epoch := c.epoch
	req := c.feeRequest(amount)
	c.mu.Unlock()

	f, err := c.deps.Fees.Estimate(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrStale
	}
	if err != nil {
		c.banner = err.Error()
		c.deps.Log.Warn("fee estimation failed", "op", string(c.op.Kind), "error", err)
		return err
	}
	c.fee, c.feeAmount = &f, amount
	c.banner = ""
	c.state = Reviewing{Amount: amount, Fee: f}
	return nil
}

// Back returns from Reviewing to Selecting, keeping the entered amount.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state.(Reviewing); !ok {
		return ErrInvalidTransition
	}
	c.state = Selecting{}
	return nil
}

// CanConfirm is true while reviewing with the signing key unlocked.
func (c *Controller) CanConfirm() bool {
	c.mu.Lock()
	_, reviewing := c.state.(Reviewing)
	c.mu.Unlock()
	return reviewing && c.deps.Keys.IsUnlocked(c.op.KeyName)
}

// Confirm builds, signs and submits the reviewed transaction. The chain
// height is fetched immediately before building. A locked key leaves the
// wizard in Reviewing with the locked banner.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	rev, ok := c.state.(Reviewing)
	if !ok {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	if !c.deps.Keys.IsUnlocked(c.op.KeyName) {
		c.banner = LockedBanner
		c.mu.Unlock()
		return &wallet.WalletLockedError{Name: c.op.KeyName}
	}
	c.banner = ""
	c.state = Submitting{Amount: rev.Amount, Fee: rev.Fee}
	epoch := c.epoch
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	hash, err := c.submit(ctx, rev)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.deps.Log.Debug("discarding result of closed wizard", "op", string(c.op.Kind))
		return ErrStale
	}
	c.cancel = nil
	var locked *wallet.WalletLockedError
	switch {
	case errors.As(err, &locked):
		c.state = rev
		c.banner = LockedBanner
		return err
	case err != nil:
		c.state = Failed{Message: failureMessage(err)}
		c.deps.Log.Error("transaction failed", "op", string(c.op.Kind), "error", err)
		return err
	}
	c.state = Succeeded{Amount: rev.Amount, Hash: hash}
	c.deps.Log.Info("transaction submitted", "op", string(c.op.Kind), "hash", hash)
	return nil
}

func (c *Controller) submit(ctx context.Context, rev Reviewing) (string, error) {
	height, err := c.deps.Heights.GetChainHeight(ctx, c.op.ChainID)
	if err != nil {
		return "", fmt.Errorf("could not fetch chain height: %w", err)
	}
	feeValue := rev.Fee.MicroUnits
	t, err := tx.Build(tx.Draft{
		Msg:       c.op.message(rev.Amount),
		Fee:       &feeValue,
		Memo:      c.op.Memo,
		Height:    height,
		ChainID:   c.op.ChainID,
		NetworkID: c.deps.NetworkID,
		CreatedAt: c.deps.Now(),
	})
	if err != nil {
		return "", err
	}
	signed, err := c.signer.Sign(c.op.KeyName, t)
	if err != nil {
		return "", err
	}
	receipt, err := c.deps.Submitter.Submit(ctx, signed, submit.WithAmount(rev.Amount))
	if err != nil {
		return "", err
	}
	return receipt.Hash, nil
}

func failureMessage(err error) string {
	var se *submit.SubmissionError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// TryAgain returns from Failed to Selecting with the amount and fee cleared.
func (c *Controller) TryAgain() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state.(Failed); !ok {
		return ErrInvalidTransition
	}
	c.resetLocked()
	return nil
}

// StakeAgain starts a new round after a success.
func (c *Controller) StakeAgain() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.state.(Succeeded); !ok {
		return ErrInvalidTransition
	}
	c.resetLocked()
	return nil
}

// Close abandons the wizard. Work still in flight is cancelled and its
// result ignored. The controller may be reused afterwards from Selecting.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.debouncer.Stop()
	c.debouncer = c.newDebouncerLocked()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.state = Selecting{}
	c.banner = ""
	c.input = ""
	c.amount = 0
	c.fee = nil
	c.feeAmount = 0
}

func (c *Controller) feeRequest(amount uint64) api.FeeRequest {
	return api.FeeRequest{
		TxType:  c.op.TxType(),
		From:    c.op.Address,
		To:      c.op.To,
		Amount:  amount,
		ChainID: c.op.ChainID,
	}
}

func (c *Controller) newDebouncerLocked() *fee.Debouncer {
	epoch := c.epoch
	return fee.NewDebouncer(c.deps.Fees, c.deps.FeeDebounce, func(r fee.Result) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if epoch != c.epoch || r.Request.Amount != c.amount {
			return
		}
		if _, ok := c.state.(Selecting); !ok {
			return
		}
		if r.Err != nil {
			c.banner = r.Err.Error()
			return
		}
		f := r.Fee
		c.fee, c.feeAmount = &f, r.Request.Amount
		c.banner = ""
	})
}
