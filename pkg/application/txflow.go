// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/fee"
	"github.com/luxfi/launchpad/pkg/tx"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/luxfi/launchpad/pkg/wizard"
)

// Inclusion waits poll at inclusionPollInterval and warn once a wait runs
// past inclusionWarnAfter.
var (
	inclusionPollInterval = constants.InclusionPollInterval
	inclusionWarnAfter    = constants.BlockTime * 3
)

// Available returns the liquid main chain balance of address.
func (app *Launchpad) Available(ctx context.Context, address string) (uint64, error) {
	p, err := app.Backend().GetPortfolioOverview(ctx, []string{address})
	if err != nil {
		return 0, fmt.Errorf("failed to load balance: %w", err)
	}
	return p.Available(address, chainid.ID(constants.MainChainID)), nil
}

// NewOperation fills the key fields of an operation from info.
func NewOperation(kind wizard.OpKind, info wallet.Info) wizard.Operation {
	return wizard.Operation{
		Kind:      kind,
		KeyName:   info.Name,
		Address:   info.Address,
		PublicKey: info.PublicKey,
	}
}

// RunWizard unlocks the operation's key, then drives the wizard with the
// app's prompter. With yes the final confirmation is answered for the user
// and failures are not retried. It returns the state the wizard ended in.
func (app *Launchpad) RunWizard(ctx context.Context, op wizard.Operation, amount string, yes bool) (wizard.State, error) {
	if err := app.Unlock(ctx, op.KeyName); err != nil {
		return nil, err
	}
	c, err := app.NewWizard(op)
	if err != nil {
		return nil, err
	}
	if isStakingOp(op.Kind) {
		// Load the positions so edits and unstakes find them in the book.
		if _, err := app.Positions(ctx, op.Address); err != nil {
			app.Log.Warn("could not refresh staking positions", "error", err)
		}
	}
	var p wizard.Prompter = app.Prompt
	if yes {
		p = autoConfirm{app.Prompt}
	}
	st, err := c.Run(ctx, p, ux.Logger, amount)
	if done, ok := st.(wizard.Succeeded); ok && isStakingOp(op.Kind) {
		if aerr := app.applyStakeChange(op, done); aerr != nil {
			app.Log.Warn("could not record staking change locally", "op", string(op.Kind), "error", aerr)
		}
	}
	return st, err
}

type autoConfirm struct {
	wizard.Prompter
}

func (a autoConfirm) CaptureYesNo(prompt string) (bool, error) {
	return prompt != wizard.RetryPrompt, nil
}

// WaitForInclusion polls the backend until the transaction of a succeeded
// wizard run is known. Other states return immediately.
func (app *Launchpad) WaitForInclusion(ctx context.Context, st wizard.State) error {
	done, ok := st.(wizard.Succeeded)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, constants.InclusionWaitTimeout)
	defer cancel()
	step := ux.NewStepTracker(ux.Logger, inclusionWarnAfter)
	step.Start("Waiting for " + done.ShortHash())

	stop := make(chan struct{})
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		ticker := time.NewTicker(inclusionPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				step.CheckWarn()
			}
		}
	}()
	status, err := app.Submitter().WaitForInclusion(ctx, done.Hash, inclusionPollInterval)
	close(stop)
	<-watched
	if err != nil {
		step.Failed(err.Error())
		return fmt.Errorf("transaction %s was not included: %w", done.ShortHash(), err)
	}
	step.Complete(fmt.Sprintf("included at height %d", status.Height))
	return nil
}

// BuildSend estimates the fee, then builds and signs a main chain transfer
// without submitting it. The signature is checked before returning.
func (app *Launchpad) BuildSend(ctx context.Context, info wallet.Info, to string, amount uint64, memo string) (*tx.SignedTransaction, error) {
	if err := app.Unlock(ctx, info.Name); err != nil {
		return nil, err
	}
	backend := app.Backend()
	main := chainid.ID(constants.MainChainID)
	f, err := fee.NewEstimator(backend).Estimate(ctx, api.FeeRequest{
		TxType:  tx.MessageSend,
		From:    info.Address,
		To:      to,
		Amount:  amount,
		ChainID: main,
	})
	if err != nil {
		return nil, err
	}
	height, err := backend.GetChainHeight(ctx, main)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chain height: %w", err)
	}
	networkID := uint64(constants.DefaultNetworkID)
	if app.Conf != nil {
		networkID = app.Conf.NetworkID()
	}
	t, err := tx.Build(tx.Draft{
		Msg:       tx.NewSendMessage(info.Address, to, amount),
		Fee:       &f.MicroUnits,
		Memo:      memo,
		Height:    height,
		ChainID:   main,
		NetworkID: networkID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	signed, err := tx.NewSigner(app.Keystore()).Sign(info.Name, t)
	if err != nil {
		return nil, err
	}
	if err := tx.Verify(signed); err != nil {
		return nil, fmt.Errorf("signature check failed: %w", err)
	}
	return signed, nil
}
