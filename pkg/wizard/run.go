// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/launchpad/pkg/units"
)

// RetryPrompt is asked after a failed estimate or submission.
const RetryPrompt = "Try again?"

// Prompter is the subset of prompts.Prompter the wizard uses.
type Prompter interface {
	CaptureValidatedString(promptStr string, validator func(string) error) (string, error)
	CaptureYesNo(promptStr string) (bool, error)
}

// Output is the subset of ux.UserLog the wizard writes to.
type Output interface {
	PrintToUser(msg string, args ...interface{})
	GreenCheckmarkToUser(msg string, args ...interface{})
	RedXToUser(msg string, args ...interface{})
}

// Run walks the user through the operation until it succeeds, they give
// up, or ctx is done. A preset amount skips the first amount prompt. It
// returns the state the run ended in; the controller itself is closed and
// back in Selecting afterwards.
func (c *Controller) Run(ctx context.Context, p Prompter, out Output, preset string) (State, error) {
	defer c.Close()
	err := c.run(ctx, p, out, preset)
	return c.State(), err
}

func (c *Controller) run(ctx context.Context, p Prompter, out Output, preset string) error {
	input := preset
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch st := c.State().(type) {
		case Selecting:
			if input == "" && c.op.Kind != OpUnstake {
				var err error
				input, err = p.CaptureValidatedString(c.amountPrompt(), c.Validate)
				if err != nil {
					return err
				}
			}
			err := c.Continue(ctx, input)
			input = ""
			if err == nil {
				continue
			}
			var verr *units.ValidationError
			if errors.As(err, &verr) {
				out.RedXToUser("%s", verr.Error())
				if c.op.Kind == OpUnstake {
					return err
				}
				continue
			}
			out.RedXToUser("%s", c.Banner())
			c.DismissBanner()
			retry, perr := p.CaptureYesNo(RetryPrompt)
			if perr != nil {
				return perr
			}
			if !retry {
				return err
			}

		case Reviewing:
			c.printReview(out, st)
			if !c.CanConfirm() {
				err := c.Confirm(ctx)
				out.RedXToUser("%s", c.Banner())
				return err
			}
			ok, err := p.CaptureYesNo(fmt.Sprintf("%s %s?", c.op.Verb(), units.FormatCNPY(st.Amount)))
			if err != nil {
				return err
			}
			if !ok {
				return ErrCancelled
			}
			out.PrintToUser("Submitting transaction...")
			if err := c.Confirm(ctx); err != nil && !isFailedState(c.State()) {
				return err
			}

		case Succeeded:
			out.GreenCheckmarkToUser("%s of %s submitted", c.op.Verb(), units.FormatCNPY(st.Amount))
			out.PrintToUser("Transaction hash: %s", st.ShortHash())
			return nil

		case Failed:
			out.RedXToUser("Transaction failed: %s", st.Message)
			retry, err := p.CaptureYesNo(RetryPrompt)
			if err != nil {
				return err
			}
			if !retry {
				return errors.New(st.Message)
			}
			if err := c.TryAgain(); err != nil {
				return err
			}

		default:
			return fmt.Errorf("wizard stopped in %s", st.Kind())
		}
	}
}

func isFailedState(s State) bool {
	_, ok := s.(Failed)
	return ok
}

func (c *Controller) amountPrompt() string {
	switch c.op.Kind {
	case OpUnstakePartial:
		return fmt.Sprintf("Percentage of %s to unstake", units.FormatCNPY(c.op.CurrentlyStaked))
	case OpEditStake:
		return fmt.Sprintf("New stake amount (current %s, available %s)",
			units.FormatCNPY(c.op.CurrentlyStaked), units.FormatCNPY(c.op.Available))
	}
	return fmt.Sprintf("Amount to %s (available %s)", c.op.Kind, units.FormatCNPY(c.op.Available))
}

func (c *Controller) printReview(out Output, st Reviewing) {
	out.PrintToUser("%s on chain %s", c.op.Verb(), c.op.ChainID)
	if c.op.To != "" {
		out.PrintToUser("  To:     %s", c.op.To)
	}
	out.PrintToUser("  Amount: %s", units.FormatCNPY(st.Amount))
	out.PrintToUser("  Fee:    %s", st.Fee)
}
