// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	BaseDirName = ".launchpad"
	LogDir      = "logs"
	KeyDir      = "keys"
	DataDir     = "data"

	DefaultConfigFileName = "config"
	DefaultConfigFileType = "yaml"
	HistoryDBFileName     = "history.db"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	APIRequestTimeout  = 30 * time.Second
	MainnetAPIEndpoint = "https://api.launchpad.network"
	LocalAPIEndpoint   = "http://127.0.0.1:3001"

	// MainChainID is the root chain every stake is delegated to.
	MainChainID = 1
	// DefaultNetworkID is the network the wallet signs for unless configured otherwise.
	DefaultNetworkID = 1

	TokenSymbol = "CNPY"
	// MicroUnitsPerCNPY is the fixed-point scale of every on-chain amount.
	MicroUnitsPerCNPY = 1_000_000
	Decimals          = 6

	// refresh poller
	DefaultPollInterval  = 30 * time.Second
	DefaultPollWindow    = 20
	DefaultPollBatchSize = 5

	// fee estimation
	DefaultFeeDebounce = 500 * time.Millisecond
	MinFeeDebounce     = 500 * time.Millisecond

	// --wait polling
	InclusionPollInterval = 2 * time.Second
	InclusionWaitTimeout  = 5 * time.Minute

	// unbonding
	UnbondingBlocks = 100
	BlockTime       = 20 * time.Second

	DefaultCommitteeFetchConcurrency = 5
	DefaultKeySessionTimeout         = 15 * time.Minute

	// MemoSentinel is sent in place of an empty memo; the wire format rejects a null memo.
	MemoSentinel = " "

	EnvPrefix         = "LAUNCHPAD"
	EnvHome           = "LAUNCHPAD_HOME"
	EnvKeyPassword    = "LAUNCHPAD_KEY_PASSWORD"
	EnvSessionTimeout = "LAUNCHPAD_KEY_SESSION_TIMEOUT"
	EnvNonInteractive = "LAUNCHPAD_NON_INTERACTIVE"

	// config keys
	ConfigAPIURL                    = "api-url"
	ConfigAPITimeout                = "api-timeout"
	ConfigNetworkID                 = "network-id"
	ConfigDefaultKey                = "default-key"
	ConfigPollInterval              = "poll-interval"
	ConfigPollWindow                = "poll-window"
	ConfigPollBatchSize             = "poll-batch-size"
	ConfigFeeDebounce               = "fee-debounce"
	ConfigKeySessionTimeout         = "key-session-timeout"
	ConfigHistoryDB                 = "history-db"
	ConfigCommitteeFetchConcurrency = "committee-fetch-concurrency"
	ConfigOutput                    = "output"

	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)
