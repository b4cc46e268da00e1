// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const minPasswordLength = 8

var keyNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ValidateKeyName accepts names that are safe as a directory name.
func ValidateKeyName(input string) error {
	if !keyNameRe.MatchString(input) {
		return errors.New("key names use letters, digits, '.', '_' or '-' and start with a letter or digit")
	}
	return nil
}

func ValidatePassword(input string) error {
	if len(input) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateAddress accepts a 20 byte hex address with or without 0x.
func ValidateAddress(input string) error {
	s := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if len(s) != 40 {
		return errors.New("address must be 40 hex characters")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return errors.New("address must be hex encoded")
	}
	return nil
}

func ValidatePercent(pct int) error {
	if pct < 1 || pct > 100 {
		return errors.New("percentage must be between 1 and 100")
	}
	return nil
}

func validateNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}
