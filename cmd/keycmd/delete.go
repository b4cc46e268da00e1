// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var deleteYes bool

// launchpad key delete
func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored key",
		Long: `The key delete command removes a key from disk. Without its mnemonic or
private key it cannot be recovered.`,
		Args: cobrautils.ExactArgs(1),
		RunE: deleteKey,
	}
	flags.AddYesFlag(cmd, &deleteYes)
	return cmd
}

func deleteKey(cmd *cobra.Command, args []string) error {
	name := args[0]
	info, err := app.Keystore().Get(name)
	if err != nil {
		return err
	}
	if !deleteYes {
		ok, err := app.Prompt.CaptureNoYes(fmt.Sprintf("Delete key %s (%s)? This cannot be undone", name, info.Address))
		if err != nil {
			return err
		}
		if !ok {
			ux.Logger.PrintToUser("Aborted.")
			return nil
		}
	}
	if err := app.Keystore().Delete(cmd.Context(), name); err != nil {
		return err
	}
	ux.Logger.PrintToUser("Key %s deleted.", name)
	return nil
}
