// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
)

// ErrNonInteractive is returned when a prompt is attempted in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// NonInteractivePrompter fails every prompt, so scripts learn which flag
// is missing instead of hanging.
type NonInteractivePrompter struct {
	FailMessage string
}

func NewNonInteractivePrompter() *NonInteractivePrompter {
	return &NonInteractivePrompter{}
}

func (p *NonInteractivePrompter) fail(operation string) error {
	msg := p.FailMessage
	if msg == "" {
		msg = "use flags to provide required values, or unset " + EnvNonInteractive
	}
	return fmt.Errorf("%w: %s - %s", ErrNonInteractive, operation, msg)
}

func (p *NonInteractivePrompter) CaptureYesNo(promptStr string) (bool, error) {
	return false, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureNoYes(promptStr string) (bool, error) {
	return false, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureList(promptStr string, _ []string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureListWithSize(promptStr string, _ []string, _ int) ([]string, error) {
	return nil, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureString(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureStringAllowEmpty(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureValidatedString(promptStr string, _ func(string) error) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CapturePassword(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureInt(promptStr string, _ func(int) error) (int, error) {
	return 0, p.fail(promptStr)
}

func (p *NonInteractivePrompter) CaptureAmount(promptStr string, _ func(uint64) error) (uint64, error) {
	return 0, p.fail(promptStr)
}

var _ Prompter = (*NonInteractivePrompter)(nil)
