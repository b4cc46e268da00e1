// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package stakecmd

import (
	"fmt"
	"io"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	queueKey    string
	queueOutput string
)

// launchpad stake queue
func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List unstaking entries",
		Long: `The stake queue command lists the entries in the unbonding queue with the
blocks and time left before each can be claimed.`,
		Args: cobrautils.ExactArgs(0),
		RunE: listQueue,
	}
	flags.AddKeyFlag(cmd, &queueKey, "list the queue for")
	flags.AddOutputFlag(cmd, &queueOutput)
	return cmd
}

func listQueue(cmd *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, queueOutput)
	if err != nil {
		return err
	}
	info, err := app.ResolveKey(cmd.Context(), queueKey, "list the queue for")
	if err != nil {
		return err
	}
	entries, err := app.UnstakingQueue(cmd.Context(), info.Address)
	if err != nil {
		return err
	}
	if len(entries) == 0 && format == ux.FormatTable {
		ux.Logger.PrintToUser("Nothing is unstaking for %s.", info.Name)
		return nil
	}
	return flags.Render(ux.Logger.Writer(), format, entries, func(w io.Writer) error {
		return ux.UnstakingTable(w, entries)
	})
}

// launchpad stake claim
func newClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <entry>",
		Short: "Claim an unstaking entry whose unbonding has finished",
		Args:  cobrautils.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ClaimUnstaked(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to claim %s: %w", args[0], err)
			}
			ux.Logger.GreenCheckmarkToUser("Claimed %s", args[0])
			return nil
		},
	}
}

// launchpad stake cancel
func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <entry>",
		Short: "Cancel an unstaking entry and restore the stake",
		Args:  cobrautils.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.CancelUnstake(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to cancel %s: %w", args[0], err)
			}
			ux.Logger.GreenCheckmarkToUser("Cancelled %s, the stake is restored", args[0])
			return nil
		},
	}
}
