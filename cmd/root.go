// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/luxfi/launchpad/cmd/chaincmd"
	"github.com/luxfi/launchpad/cmd/configcmd"
	"github.com/luxfi/launchpad/cmd/keycmd"
	"github.com/luxfi/launchpad/cmd/stakecmd"
	"github.com/luxfi/launchpad/cmd/walletcmd"
	"github.com/luxfi/launchpad/pkg/application"
	"github.com/luxfi/launchpad/pkg/config"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/ux"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const logName = "launchpad"

var (
	app        *application.Launchpad
	logFactory luxlog.Factory

	logLevel       string
	Version        = "0.4.0"
	cfgFile        string
	apiURL         string
	useSample      bool
	nonInteractive bool
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "launchpad",
		Long: `Launchpad CLI - browse token launches and manage a CNPY wallet.

Chains start as virtual launches on a bonding curve and graduate once their
pool reserve reaches the graduation threshold. The wallet sends CNPY, stakes
it to the main chain and any launches you choose to restake to, and unstakes
through the unbonding queue.

COMMAND OVERVIEW:

  chains      List, inspect and watch launches
  key         Create, import and unlock signing keys
  wallet      Send CNPY, show balances and transaction history
  stake       Stake, edit, unstake, claim and cancel
  config      Show and change settings

QUICK START:

  launchpad key create alice
  launchpad chains list --sort progress
  launchpad stake create --key alice --chain 2 --amount 100

Add --sample to any command to run against built-in offline data.`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.launchpad/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level for the application")
	rootCmd.PersistentFlags().StringVar(&apiURL, constants.ConfigAPIURL, "", "launchpad API endpoint (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&useSample, "sample", false, "use built-in offline sample data instead of the API")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Show only errors (quiet mode)")

	rootCmd.AddCommand(chaincmd.NewCmd(app))
	rootCmd.AddCommand(keycmd.NewCmd(app))
	rootCmd.AddCommand(walletcmd.NewCmd(app))
	rootCmd.AddCommand(stakecmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}

	// Adjust log level based on flags BEFORE any logging happens
	switch {
	case cmd.Flags().Changed("debug"):
		logFactory.SetLogLevel(logName, luxlog.Level(level.Debug))
		logFactory.SetDisplayLevel(logName, luxlog.Level(level.Debug))
	case cmd.Flags().Changed("verbose"):
		logFactory.SetLogLevel(logName, luxlog.Level(level.Info))
		logFactory.SetDisplayLevel(logName, luxlog.Level(level.Info))
	case cmd.Flags().Changed("quiet"):
		logFactory.SetLogLevel(logName, luxlog.Level(level.Error))
		logFactory.SetDisplayLevel(logName, luxlog.Level(level.Error))
	case logLevel != "":
		lvl, err := luxlog.ToLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logFactory.SetLogLevel(logName, lvl)
		logFactory.SetDisplayLevel(logName, lvl)
	}

	// Interactive by default on TTY, non-interactive when:
	// LAUNCHPAD_NON_INTERACTIVE=1, CI=1, --non-interactive flag, or stdin is piped
	prompts.SetNonInteractive(nonInteractive)
	app.Setup(baseDir, log, config.New(), prompts.NewPrompterForMode())

	initConfig(cmd, baseDir)
	app.UseSampleBackend(useSample)
	return nil
}

// closeApp locks every key and releases the history database and log
// files, whether or not the command succeeded.
func closeApp() {
	if err := app.Close(); err != nil && app.Log != nil {
		app.Log.Warn("failed to close application", "error", err)
	}
	if logFactory != nil {
		logFactory.Close()
	}
}

func setupEnv() (string, error) {
	baseDir := os.Getenv(constants.EnvHome)
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// no logger here yet
			fmt.Printf("unable to get home directory %s\n", err)
			return "", err
		}
		baseDir = filepath.Join(home, constants.BaseDirName)
	}

	for _, dir := range []string{
		baseDir,
		filepath.Join(baseDir, constants.KeyDir),
		filepath.Join(baseDir, constants.DataDir),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			// no logger here yet
			fmt.Printf("failed creating %s: %s\n", dir, err)
			return "", err
		}
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(level.Info)

	// Set default display level to WARN (quiet by default)
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, constants.DefaultPerms755); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/launchpad/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make(logName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	logFactory = factory
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig(cmd *cobra.Command, baseDir string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(baseDir)
		viper.SetConfigType(constants.DefaultConfigFileType)
		viper.SetConfigName(constants.DefaultConfigFileName)
	}
	config.SetDefaults(viper.GetViper(), baseDir)

	// LAUNCHPAD_API_URL -> api-url, etc.
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = viper.BindEnv(constants.ConfigKeySessionTimeout, constants.EnvSessionTimeout)
	viper.AutomaticEnv()

	if f := cmd.Flags().Lookup(constants.ConfigAPIURL); f != nil {
		_ = viper.BindPFlag(constants.ConfigAPIURL, f)
	}

	if err := viper.ReadInConfig(); err == nil {
		app.Log.Debug("using config file", "config-file", viper.ConfigFileUsed())
	}
	// No config file is normal - most users don't have one, so we silently continue
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		reportError(os.Stderr, err)
	}
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

// reportError prints err for the user and logs it once logging is up.
func reportError(w io.Writer, err error) {
	var log luxlog.Logger
	if app != nil {
		log = app.Log
	}
	ux.New(log, w).PrintError("%s", err)
}
