// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrUnknownOutput   = errors.New("unknown output format (use table, json or yaml)")
	ErrChainNotFound   = errors.New("chain not found")
	ErrUnresolvedChain = errors.New("invalid chain id")
)
