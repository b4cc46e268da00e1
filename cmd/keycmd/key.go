// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"
	"os"

	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/spf13/cobra"
)

var app *application.Launchpad

// NewCmd creates the key command suite
func NewCmd(injectedApp *application.Launchpad) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Create and manage signing keys",
		Long: `The key command suite creates, imports and lists the keys used to sign
transactions. Keys are stored under ~/.launchpad/keys encrypted with a
password (argon2id and AES-GCM) and must be unlocked before they can sign.

Passwords are read from LAUNCHPAD_KEY_PASSWORD when it is set, otherwise
they are prompted for.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	// launchpad key create
	cmd.AddCommand(newCreateCmd())
	// launchpad key import
	cmd.AddCommand(newImportCmd())
	// launchpad key list
	cmd.AddCommand(newListCmd())
	// launchpad key show
	cmd.AddCommand(newShowCmd())
	// launchpad key unlock
	cmd.AddCommand(newUnlockCmd())
	// launchpad key lock
	cmd.AddCommand(newLockCmd())
	// launchpad key delete
	cmd.AddCommand(newDeleteCmd())
	return cmd
}

// newPassword reads the password protecting a new key. Prompted passwords
// are asked for twice.
func newPassword(name string) (string, error) {
	if pw := os.Getenv(constants.EnvKeyPassword); pw != "" {
		return pw, prompts.ValidatePassword(pw)
	}
	if !prompts.IsInteractive() {
		return "", fmt.Errorf("%w: set %s to choose the key password", prompts.ErrNonInteractive, constants.EnvKeyPassword)
	}
	pw, err := app.Prompt.CapturePassword(fmt.Sprintf("Password for key %q", name))
	if err != nil {
		return "", err
	}
	if err := prompts.ValidatePassword(pw); err != nil {
		return "", err
	}
	again, err := app.Prompt.CapturePassword("Repeat password")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", fmt.Errorf("passwords do not match")
	}
	return pw, nil
}
