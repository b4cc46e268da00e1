// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestRootHasEveryCommand(t *testing.T) {
	app = application.New()
	root := NewRootCmd()
	for _, name := range Commands {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "log-level", constants.ConfigAPIURL, "sample", "non-interactive", "verbose", "debug", "quiet"} {
		require.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestSetupEnvHonoursHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.EnvHome, home)
	dir, err := setupEnv()
	require.NoError(t, err)
	require.Equal(t, home, dir)
	require.DirExists(t, home+"/"+constants.KeyDir)
	require.DirExists(t, home+"/"+constants.DataDir)
}

func TestUnknownSubcommand(t *testing.T) {
	app = application.New()
	root := NewRootCmd()
	root.PersistentPreRunE = nil
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{StakeCmd, "frobnicate"})
	require.ErrorContains(t, root.Execute(), "unknown command")
}

func TestReportError(t *testing.T) {
	app = application.New()
	var out bytes.Buffer
	reportError(&out, errors.New("no stake on chain 7"))
	require.Equal(t, "\nERROR: no stake on chain 7\n\n", out.String())
}
