// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package poller

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// Visibility gates polling: nothing is fetched while the view is hidden.
type Visibility interface {
	Visible() bool
}

type VisibilityFunc func() bool

func (f VisibilityFunc) Visible() bool { return f() }

// AlwaysVisible never pauses polling.
var AlwaysVisible = VisibilityFunc(func() bool { return true })

// TerminalVisibility treats output as visible while it is a terminal and the
// user has not paused the view.
type TerminalVisibility struct {
	fd     uintptr
	paused atomic.Bool
}

func NewTerminalVisibility(f *os.File) *TerminalVisibility {
	return &TerminalVisibility{fd: f.Fd()}
}

func (t *TerminalVisibility) Visible() bool {
	if t.paused.Load() {
		return false
	}
	return isatty.IsTerminal(t.fd) || isatty.IsCygwinTerminal(t.fd)
}

func (t *TerminalVisibility) Pause()  { t.paused.Store(true) }
func (t *TerminalVisibility) Resume() { t.paused.Store(false) }

// Toggle flips the pause flag and reports whether the view is now paused.
func (t *TerminalVisibility) Toggle() bool {
	for {
		old := t.paused.Load()
		if t.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
