// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(constants.DefaultConfigFileName)
	v.SetConfigType(constants.DefaultConfigFileType)
	SetDefaults(v, dir)
	return NewWithViper(v), dir
}

func TestDefaults(t *testing.T) {
	c, dir := newTestConfig(t)
	require.Equal(t, constants.MainnetAPIEndpoint, c.APIURL())
	require.Equal(t, 30*time.Second, c.PollInterval())
	require.Equal(t, 20, c.PollWindow())
	require.Equal(t, 5, c.PollBatchSize())
	require.Equal(t, 500*time.Millisecond, c.FeeDebounce())
	require.Equal(t, 15*time.Minute, c.KeySessionTimeout())
	require.Equal(t, 5, c.CommitteeFetchConcurrency())
	require.Equal(t, uint64(constants.DefaultNetworkID), c.NetworkID())
	require.Equal(t, filepath.Join(dir, constants.DataDir, constants.HistoryDBFileName), c.HistoryDB())
	require.Equal(t, constants.OutputTable, c.Output())
	require.False(t, c.ConfigFileExists())
}

func TestFeeDebounceFloor(t *testing.T) {
	c, _ := newTestConfig(t)
	c.v.Set(constants.ConfigFeeDebounce, "100ms")
	require.Equal(t, constants.MinFeeDebounce, c.FeeDebounce())
	c.v.Set(constants.ConfigFeeDebounce, "2s")
	require.Equal(t, 2*time.Second, c.FeeDebounce())
}

func TestSetConfigValuePersists(t *testing.T) {
	c, dir := newTestConfig(t)
	require.NoError(t, c.SetConfigValue(constants.ConfigAPIURL, "http://localhost:9999"))
	require.True(t, c.ConfigFileExists())
	require.NoError(t, c.SetConfigValue(constants.ConfigPollWindow, "40"))

	b, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(b), "http://localhost:9999")
	require.Contains(t, string(b), "poll-window")
	require.Equal(t, 40, c.PollWindow())
	require.Equal(t, "http://localhost:9999", c.All()[constants.ConfigAPIURL])
}

func TestSetConfigValueValidates(t *testing.T) {
	c, _ := newTestConfig(t)
	tests := []struct {
		key, value string
	}{
		{"nope", "1"},
		{constants.ConfigPollInterval, "soon"},
		{constants.ConfigPollInterval, "-1s"},
		{constants.ConfigPollBatchSize, "0"},
		{constants.ConfigNetworkID, "1x"},
		{constants.ConfigOutput, "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			require.Error(t, c.SetConfigValue(tt.key, tt.value))
		})
	}
	require.False(t, c.ConfigFileExists())
}
