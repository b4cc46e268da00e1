// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

// Command names exported for testing
const (
	// ChainsCmd is the chains command name
	ChainsCmd = "chains"

	// KeyCmd is the key command name
	KeyCmd = "key"

	// WalletCmd is the wallet command name
	WalletCmd = "wallet"

	// StakeCmd is the stake command name
	StakeCmd = "stake"

	// ConfigCmd is the config command name
	ConfigCmd = "config"
)

// Commands lists every top level command in help order.
var Commands = []string{ChainsCmd, KeyCmd, WalletCmd, StakeCmd, ConfigCmd}
