// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/launchpad/cmd/flags"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/cobrautils"
	"github.com/luxfi/launchpad/pkg/config"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	app        *application.Launchpad
	listOutput string
)

// NewCmd creates the config command suite
func NewCmd(injectedApp *application.Launchpad) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
		Long: `The config command suite reads and writes ~/.launchpad/config.yaml.

Every key can also be set with a LAUNCHPAD_ environment variable, upper
case with dashes as underscores (LAUNCHPAD_API_URL for api-url). Flags win
over the environment, which wins over the file.

Keys: ` + strings.Join(config.Keys, ", "),
		RunE: cobrautils.CommandSuiteUsage,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobrautils.ExactArgs(1),
		RunE:  getValue,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Validate and save a value",
		Args:  cobrautils.ExactArgs(2),
		RunE:  setValue,
	})
	list := &cobra.Command{
		Use:   "list",
		Short: "Print every key with its effective value",
		Args:  cobrautils.ExactArgs(0),
		RunE:  listValues,
	}
	flags.AddOutputFlag(list, &listOutput)
	cmd.AddCommand(list)
	return cmd
}

func getValue(_ *cobra.Command, args []string) error {
	if !config.IsKnownKey(args[0]) {
		return fmt.Errorf("unknown config key %q", args[0])
	}
	ux.Logger.PrintToUser("%s", app.Conf.GetConfigStringValue(args[0]))
	return nil
}

func setValue(_ *cobra.Command, args []string) error {
	if err := app.Conf.SetConfigValue(args[0], args[1]); err != nil {
		return err
	}
	app.Log.Info("config updated", "key", args[0])
	ux.Logger.GreenCheckmarkToUser("%s set to %s in %s", args[0], args[1], app.Conf.GetConfigPath())
	return nil
}

func listValues(_ *cobra.Command, _ []string) error {
	format, err := flags.ResolveOutput(app, listOutput)
	if err != nil {
		return err
	}
	values := app.Conf.All()
	return flags.Render(ux.Logger.Writer(), format, values, func(w io.Writer) error {
		table := ux.DefaultTable(w, "Key", "Value")
		for _, k := range config.Keys {
			if err := table.Append([]string{k, values[k]}); err != nil {
				return err
			}
		}
		return table.Render()
	})
}
