// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/config"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// TestPassword unlocks every key made by CreateKey.
const TestPassword = "correct horse battery"

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(luxlog.NewNoOpLogger(), io.Discard)
	return require.New(t)
}

// SetupTestInTempDir builds an app rooted in a temp dir that talks to the
// sample backend. User output is captured in the returned buffer. A nil
// prompter fails every prompt.
func SetupTestInTempDir(t *testing.T, prompter prompts.Prompter) (*application.Launchpad, *bytes.Buffer) {
	t.Helper()
	testDir := t.TempDir()
	if prompter == nil {
		prompter = prompts.NewNonInteractivePrompter()
	}

	v := viper.New()
	v.AddConfigPath(testDir)
	v.SetConfigName(constants.DefaultConfigFileName)
	v.SetConfigType(constants.DefaultConfigFileType)
	config.SetDefaults(v, testDir)
	app := application.New()
	app.Setup(testDir, luxlog.NewNoOpLogger(), config.NewWithViper(v), prompter)
	app.KeystoreOptions = []wallet.Option{wallet.WithKDFCost(1, 1024)}
	app.UseSampleBackend(true)
	t.Cleanup(func() { _ = app.Close() })

	out := &bytes.Buffer{}
	ux.NewUserLog(luxlog.NewNoOpLogger(), out)
	return app, out
}

// CreateKey stores an ed25519 key protected by TestPassword.
func CreateKey(t *testing.T, app *application.Launchpad, name string) wallet.Info {
	t.Helper()
	info, _, err := app.Keystore().Create(context.Background(), name, wallet.CreateOptions{
		Password: TestPassword,
		Curve:    wallet.CurveEd25519,
	})
	require.NoError(t, err)
	return info
}
