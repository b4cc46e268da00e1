// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"errors"

	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/spf13/cobra"
)

var lockAll bool

// launchpad key unlock
func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock [name]",
		Short: "Check a key's password and open a signing session",
		Long: `The key unlock command verifies the password of a key and opens a signing
session that lasts key-session-timeout after the last signature.

Sessions live in memory only, so one opened here ends with this command.
Signing commands such as 'stake create' unlock the key themselves, reading
LAUNCHPAD_KEY_PASSWORD or prompting.`,
		Args: cobrautils.MaximumNArgs(1),
		RunE: unlockKey,
	}
}

func unlockKey(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	info, err := app.ResolveKey(cmd.Context(), name, "unlock")
	if err != nil {
		return err
	}
	if err := app.Unlock(cmd.Context(), info.Name); err != nil {
		return err
	}
	if !app.Keystore().IsUnlocked(info.Name) {
		return wallet.ErrNoPassword
	}
	ux.Logger.GreenCheckmarkToUser("Password for %s is correct, key unlocked", info.Name)
	return nil
}

// launchpad key lock
func newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [name]",
		Short: "End signing sessions",
		Args:  cobrautils.MaximumNArgs(1),
		RunE:  lockKey,
	}
	cmd.Flags().BoolVar(&lockAll, "all", false, "lock every key")
	return cmd
}

func lockKey(_ *cobra.Command, args []string) error {
	ks := app.Keystore()
	switch {
	case lockAll:
		ks.LockAll()
		ux.Logger.PrintToUser("All keys locked.")
		return nil
	case len(args) == 0:
		return errors.New("name a key or pass --all")
	}
	if _, err := ks.Get(args[0]); err != nil {
		return err
	}
	ks.Lock(args[0])
	ux.Logger.PrintToUser("Key %s locked.", args[0])
	return nil
}
