// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// MissingOpt describes a required option that was not provided.
type MissingOpt struct {
	Flag   string // e.g. "--to"
	Env    string // optional, e.g. "LAUNCHPAD_KEY"
	Prompt string // label used when prompting
	Note   string
	Secret bool
}

// MissingError lists every missing option in one error.
func MissingError(cmd string, missing []MissingOpt) error {
	if len(missing) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("missing required options:\n")
	for _, m := range missing {
		fmt.Fprintf(&b, "  %s", m.Flag)
		if m.Env != "" {
			fmt.Fprintf(&b, " (or %s)", m.Env)
		}
		if m.Note != "" {
			fmt.Fprintf(&b, " - %s", m.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "run '%s --help' to see all options", cmd)
	return errors.New(b.String())
}

// Validator collects required options for a command, then prompts for the
// missing ones or fails with MissingError when prompting is not possible.
type Validator struct {
	cmd     string
	missing []MissingOpt
	values  []*string
}

func NewValidator(cmd string) *Validator {
	return &Validator{cmd: cmd}
}

func (v *Validator) Require(target *string, opt MissingOpt) *Validator {
	if *target == "" {
		v.missing = append(v.missing, opt)
		v.values = append(v.values, target)
	}
	return v
}

func (v *Validator) Missing() []MissingOpt {
	return v.missing
}

// Resolve fills each missing value from prompter.
func (v *Validator) Resolve(prompter Prompter) error {
	if len(v.missing) == 0 {
		return nil
	}
	if IsNonInteractive() {
		return MissingError(v.cmd, v.missing)
	}
	for i, m := range v.missing {
		label := m.Prompt
		if label == "" {
			label = strings.TrimLeft(m.Flag, "-")
		}
		var (
			val string
			err error
		)
		if m.Secret {
			val, err = prompter.CapturePassword(label)
		} else {
			val, err = prompter.CaptureValidatedString(label, validateNonEmpty)
		}
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", m.Flag, err)
		}
		*v.values[i] = val
	}
	return nil
}
