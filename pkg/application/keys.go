// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/wallet"
)

var ErrNoKeys = errors.New("no keys found, run 'launchpad key create' first")

// ResolveKey picks the key a command acts for: the explicit name, then the
// configured default-key, then an interactive choice among stored keys.
func (app *Launchpad) ResolveKey(ctx context.Context, name, goal string) (wallet.Info, error) {
	ks := app.Keystore()
	if name == "" && app.Conf != nil {
		name = app.Conf.DefaultKey()
	}
	if name != "" {
		return ks.Get(name)
	}
	infos, err := ks.List(ctx)
	if err != nil {
		return wallet.Info{}, err
	}
	if len(infos) == 0 {
		return wallet.Info{}, ErrNoKeys
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	chosen, err := prompts.CaptureKeyName(app.Prompt, goal, names)
	if err != nil {
		return wallet.Info{}, err
	}
	for _, info := range infos {
		if info.Name == chosen {
			return info, nil
		}
	}
	return wallet.Info{}, fmt.Errorf("%w: %s", wallet.ErrKeyNotFound, chosen)
}

// Unlock opens a signing session for name unless one is live. The password
// comes from LAUNCHPAD_KEY_PASSWORD or, when interactive, a prompt. Without
// either the key stays locked and the caller sees the lock when it tries to
// sign.
func (app *Launchpad) Unlock(ctx context.Context, name string) error {
	ks := app.Keystore()
	if ks.IsUnlocked(name) {
		return nil
	}
	password := os.Getenv(constants.EnvKeyPassword)
	if password == "" {
		if !prompts.IsInteractive() {
			app.Log.Debug("no password available, key stays locked", "name", name)
			return nil
		}
		var err error
		if password, err = app.Prompt.CapturePassword(fmt.Sprintf("Password for key %q", name)); err != nil {
			return err
		}
	}
	return ks.Unlock(ctx, name, password)
}
