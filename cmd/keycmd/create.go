// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"
	"strings"

	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/spf13/cobra"
)

var (
	curveName    string
	account      uint32
	fromMnemonic bool
)

// launchpad key create
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new key from a fresh mnemonic",
		Long: `The key create command generates a 24 word mnemonic, derives a signing key
from it and stores the key encrypted with a password.

The mnemonic is printed once and never stored. Write it down: it is the only
way to recover the key. Use --recover to derive the key from a mnemonic you
already have instead.`,
		Args: cobrautils.ExactArgs(1),
		RunE: createKey,
	}
	addCurveFlag(cmd)
	cmd.Flags().Uint32Var(&account, "account", 0, "derivation account index")
	cmd.Flags().BoolVar(&fromMnemonic, "recover", false, "derive the key from an existing mnemonic")
	return cmd
}

func addCurveFlag(cmd *cobra.Command) {
	names := make([]string, len(wallet.Curves))
	for i, c := range wallet.Curves {
		names[i] = string(c)
	}
	cmd.Flags().StringVar(&curveName, "curve", string(wallet.CurveSecp256k1), "signature scheme: "+strings.Join(names, ", "))
}

func createKey(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := prompts.ValidateKeyName(name); err != nil {
		return err
	}
	curve, err := wallet.ParseCurve(curveName)
	if err != nil {
		return err
	}
	if _, err := app.Keystore().Get(name); err == nil {
		return fmt.Errorf("%w: %s", wallet.ErrKeyExists, name)
	}

	var mnemonic string
	if fromMnemonic {
		if mnemonic, err = app.Prompt.CaptureValidatedString("Mnemonic phrase", validateMnemonic); err != nil {
			return err
		}
	}
	password, err := newPassword(name)
	if err != nil {
		return err
	}

	info, phrase, err := app.Keystore().Create(cmd.Context(), name, wallet.CreateOptions{
		Password: password,
		Mnemonic: mnemonic,
		Curve:    curve,
		Account:  account,
	})
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}
	app.Log.Info("key created", "name", info.Name, "curve", string(info.Curve))

	ux.Logger.GreenCheckmarkToUser("Key %s created", info.Name)
	ux.Logger.PrintToUser("Address: %s", info.Address)
	if !fromMnemonic {
		ux.Logger.PrintLineSeparator()
		ux.Logger.PrintToUser("Recovery phrase (shown once, store it offline):")
		ux.Logger.PrintToUser("")
		ux.Logger.PrintToUser("  %s", phrase)
		ux.Logger.PrintToUser("")
		ux.Logger.PrintLineSeparator()
	}
	return nil
}

func validateMnemonic(s string) error {
	if !wallet.ValidateMnemonic(strings.TrimSpace(s)) {
		return fmt.Errorf("not a valid mnemonic phrase")
	}
	return nil
}
