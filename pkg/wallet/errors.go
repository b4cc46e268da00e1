// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrKeyLocked       = errors.New("key is locked")
	ErrKeyExists       = errors.New("key already exists")
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoPassword      = errors.New("password required")
	ErrInvalidName     = errors.New("invalid key name")
)

// WalletLockedError is returned by any operation that needs key material
// while the key has no unlocked session.
type WalletLockedError struct {
	Name string
}

func (e *WalletLockedError) Error() string {
	return fmt.Sprintf("wallet %q is locked, run 'launchpad key unlock %s' first", e.Name, e.Name)
}

func (*WalletLockedError) Is(target error) bool {
	return target == ErrKeyLocked
}
