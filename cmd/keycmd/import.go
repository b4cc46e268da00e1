// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/spf13/cobra"
)

var privateKeyFile string

// launchpad key import
func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Import a hex private key",
		Long: `The key import command stores an existing private key. The key is read
from --file, a file holding the hex encoded key, or prompted for.`,
		Args: cobrautils.ExactArgs(1),
		RunE: importKey,
	}
	addCurveFlag(cmd)
	cmd.Flags().StringVarP(&privateKeyFile, "file", "f", "", "file holding the hex private key")
	return cmd
}

func importKey(cmd *cobra.Command, args []string) error {
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

	var privateKey string
	if privateKeyFile != "" {
		data, err := os.ReadFile(privateKeyFile)
		if err != nil {
			return fmt.Errorf("failed to read private key: %w", err)
		}
		privateKey = strings.TrimSpace(string(data))
	} else {
		v := prompts.NewValidator("launchpad key import").Require(&privateKey, prompts.MissingOpt{
			Flag:   "--file",
			Prompt: "Private key (hex)",
			Secret: true,
		})
		if err := v.Resolve(app.Prompt); err != nil {
			return err
		}
	}

	password, err := newPassword(name)
	if err != nil {
		return err
	}
	info, err := app.Keystore().Import(cmd.Context(), name, wallet.ImportOptions{
		Password:   password,
		PrivateKey: privateKey,
		Curve:      curve,
	})
	if err != nil {
		return fmt.Errorf("failed to import key: %w", err)
	}
	ux.Logger.GreenCheckmarkToUser("Key %s imported", info.Name)
	ux.Logger.PrintToUser("Address: %s", info.Address)
	return nil
}
