// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/spf13/viper"
)

// Keys lists every setting `config list` shows, in display order.
var Keys = []string{
	constants.ConfigAPIURL,
	constants.ConfigAPITimeout,
	constants.ConfigNetworkID,
	constants.ConfigDefaultKey,
	constants.ConfigPollInterval,
	constants.ConfigPollWindow,
	constants.ConfigPollBatchSize,
	constants.ConfigFeeDebounce,
	constants.ConfigKeySessionTimeout,
	constants.ConfigHistoryDB,
	constants.ConfigCommitteeFetchConcurrency,
	constants.ConfigOutput,
}

// Config reads settings from the process-wide viper instance, which
// layers flags over LAUNCHPAD_* environment variables over the config file
// over defaults.
type Config struct {
	v *viper.Viper
}

func New() *Config {
	return &Config{v: viper.GetViper()}
}

// NewWithViper uses v instead of the global instance.
func NewWithViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// SetDefaults registers the default of every key. baseDir anchors the
// history database.
func SetDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault(constants.ConfigAPIURL, constants.MainnetAPIEndpoint)
	v.SetDefault(constants.ConfigAPITimeout, constants.APIRequestTimeout)
	v.SetDefault(constants.ConfigNetworkID, constants.DefaultNetworkID)
	v.SetDefault(constants.ConfigDefaultKey, "")
	v.SetDefault(constants.ConfigPollInterval, constants.DefaultPollInterval)
	v.SetDefault(constants.ConfigPollWindow, constants.DefaultPollWindow)
	v.SetDefault(constants.ConfigPollBatchSize, constants.DefaultPollBatchSize)
	v.SetDefault(constants.ConfigFeeDebounce, constants.DefaultFeeDebounce)
	v.SetDefault(constants.ConfigKeySessionTimeout, constants.DefaultKeySessionTimeout)
	v.SetDefault(constants.ConfigHistoryDB, filepath.Join(baseDir, constants.DataDir, constants.HistoryDBFileName))
	v.SetDefault(constants.ConfigCommitteeFetchConcurrency, constants.DefaultCommitteeFetchConcurrency)
	v.SetDefault(constants.ConfigOutput, constants.OutputTable)
}

func (c *Config) GetConfigStringValue(key string) string {
	return c.v.GetString(key)
}

func (c *Config) ConfigValueIsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *Config) ConfigFileExists() bool {
	return c.v.ConfigFileUsed() != ""
}

func (c *Config) GetConfigBoolValue(key string) bool {
	return c.v.GetBool(key)
}

// SetConfigValue validates value for key and persists it to the config
// file, creating the file when none was loaded.
func (c *Config) SetConfigValue(key string, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := validate(key, value); err != nil {
		return err
	}
	c.v.Set(key, value)
	if c.ConfigFileExists() {
		return c.v.WriteConfig()
	}
	if err := c.v.SafeWriteConfig(); err != nil {
		return err
	}
	return c.v.ReadInConfig()
}

// GetConfigPath returns the path to the configuration file
func (c *Config) GetConfigPath() string {
	return c.v.ConfigFileUsed()
}

// All returns every known key with its effective value.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k] = c.v.GetString(k)
	}
	return out
}

func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (c *Config) APIURL() string {
	return c.v.GetString(constants.ConfigAPIURL)
}

func (c *Config) APITimeout() time.Duration {
	return positiveDuration(c.v.GetDuration(constants.ConfigAPITimeout), constants.APIRequestTimeout)
}

func (c *Config) NetworkID() uint64 {
	if id := c.v.GetUint64(constants.ConfigNetworkID); id != 0 {
		return id
	}
	return constants.DefaultNetworkID
}

func (c *Config) DefaultKey() string {
	return c.v.GetString(constants.ConfigDefaultKey)
}

func (c *Config) PollInterval() time.Duration {
	return positiveDuration(c.v.GetDuration(constants.ConfigPollInterval), constants.DefaultPollInterval)
}

func (c *Config) PollWindow() int {
	return positiveInt(c.v.GetInt(constants.ConfigPollWindow), constants.DefaultPollWindow)
}

func (c *Config) PollBatchSize() int {
	return positiveInt(c.v.GetInt(constants.ConfigPollBatchSize), constants.DefaultPollBatchSize)
}

// FeeDebounce never returns less than the minimum debounce window.
func (c *Config) FeeDebounce() time.Duration {
	return max(c.v.GetDuration(constants.ConfigFeeDebounce), constants.MinFeeDebounce)
}

func (c *Config) KeySessionTimeout() time.Duration {
	return positiveDuration(c.v.GetDuration(constants.ConfigKeySessionTimeout), constants.DefaultKeySessionTimeout)
}

func (c *Config) HistoryDB() string {
	return c.v.GetString(constants.ConfigHistoryDB)
}

func (c *Config) CommitteeFetchConcurrency() int {
	return positiveInt(c.v.GetInt(constants.ConfigCommitteeFetchConcurrency), constants.DefaultCommitteeFetchConcurrency)
}

func (c *Config) Output() string {
	return c.v.GetString(constants.ConfigOutput)
}

func positiveDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func positiveInt(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

func validate(key, value string) error {
	switch key {
	case constants.ConfigAPITimeout, constants.ConfigPollInterval, constants.ConfigFeeDebounce, constants.ConfigKeySessionTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration such as 30s", key)
		}
	case constants.ConfigNetworkID, constants.ConfigPollWindow, constants.ConfigPollBatchSize, constants.ConfigCommitteeFetchConcurrency:
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	case constants.ConfigOutput:
		switch value {
		case constants.OutputTable, constants.OutputJSON, constants.OutputYAML:
		default:
			return fmt.Errorf("%s must be one of table, json, yaml", key)
		}
	}
	return nil
}
