// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func withTTY(t *testing.T, tty bool) {
	t.Helper()
	orig := stdinIsTTY
	stdinIsTTY = func() bool { return tty }
	t.Cleanup(func() { stdinIsTTY = orig })
}

func TestIsNonInteractiveEnvVar(t *testing.T) {
	withTTY(t, true)
	t.Setenv(EnvCI, "")

	tests := []struct {
		envValue string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(EnvNonInteractive+"="+tc.envValue, func(t *testing.T) {
			t.Setenv(EnvNonInteractive, tc.envValue)
			require.Equal(t, tc.expected, IsNonInteractive())
		})
	}
}

func TestIsNonInteractiveCI(t *testing.T) {
	withTTY(t, true)
	t.Setenv(EnvNonInteractive, "")
	t.Setenv(EnvCI, "true")
	require.True(t, IsNonInteractive())
}

func TestIsNonInteractiveWithoutTTY(t *testing.T) {
	withTTY(t, false)
	t.Setenv(EnvNonInteractive, "")
	t.Setenv(EnvCI, "")
	require.True(t, IsNonInteractive())
	_, ok := NewPrompterForMode().(*NonInteractivePrompter)
	require.True(t, ok)
}

func TestSetNonInteractive(t *testing.T) {
	withTTY(t, true)
	t.Setenv(EnvNonInteractive, "")
	t.Setenv(EnvCI, "")
	require.True(t, IsInteractive())

	SetNonInteractive(true)
	defer SetNonInteractive(false)
	require.False(t, IsInteractive())
}
