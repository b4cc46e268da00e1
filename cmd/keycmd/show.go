// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/spf13/cobra"
)

var (
	showOutput string
	showQR     bool
)

// launchpad key show
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a key's address and public key",
		Long: `The key show command prints the public half of a key. With --qr it also
draws the address as a QR code so it can be scanned to receive funds.`,
		Args: cobrautils.MaximumNArgs(1),
		RunE: showKey,
	}
	flags.AddOutputFlag(cmd, &showOutput)
	cmd.Flags().BoolVar(&showQR, "qr", false, "draw the address as a QR code")
	return cmd
}

func showKey(cmd *cobra.Command, args []string) error {
	format, err := flags.ResolveOutput(app, showOutput)
	if err != nil {
		return err
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	info, err := app.ResolveKey(cmd.Context(), name, "show")
	if err != nil {
		return err
	}
	return flags.Render(ux.Logger.Writer(), format, info, func(w io.Writer) error {
		return printKey(w, info)
	})
}

func printKey(w io.Writer, info wallet.Info) error {
	fmt.Fprintf(w, "Name:        %s\n", info.Name)
	fmt.Fprintf(w, "Curve:       %s\n", info.Curve)
	fmt.Fprintf(w, "Address:     %s\n", info.Address)
	fmt.Fprintf(w, "Public key:  %s\n", info.PublicKey)
	fmt.Fprintf(w, "Account:     %d\n", info.Account)
	state := "locked"
	if !info.Locked {
		state = "unlocked"
	}
	fmt.Fprintf(w, "State:       %s\n", state)
	if !showQR {
		return nil
	}
	qr, err := ux.QRString(info.Address)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s", qr)
	return err
}
