// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/luxfi/launchpad/pkg/constants"
	"golang.org/x/term"
)

const (
	// EnvNonInteractive forces non-interactive mode when truthy.
	EnvNonInteractive = constants.EnvNonInteractive

	// EnvCI is set by most CI systems.
	EnvCI = "CI"
)

var forceNonInteractive atomic.Bool

// SetNonInteractive forces non-interactive mode for the process, as the
// --non-interactive flag does.
func SetNonInteractive(v bool) {
	forceNonInteractive.Store(v)
}

// isTruthyEnv accepts 1, true, t, yes, y and on, case-insensitively.
func isTruthyEnv(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

var stdinIsTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive is true unless forced off, CI is set, or stdin is not a
// terminal.
func IsInteractive() bool {
	if forceNonInteractive.Load() {
		return false
	}
	if isTruthyEnv(EnvNonInteractive) || isTruthyEnv(EnvCI) {
		return false
	}
	return stdinIsTTY()
}

func IsNonInteractive() bool {
	return !IsInteractive()
}

// NewPrompterForMode returns a prompter that fails fast when prompting is
// not possible.
func NewPrompterForMode() Prompter {
	if IsNonInteractive() {
		return NewNonInteractivePrompter()
	}
	return NewPrompter()
}
