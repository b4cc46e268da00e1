// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package units converts between human decimal CNPY amounts and the 6-decimal
// micro-unit integers every transaction carries.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/luxfi/launchpad/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidationError reports an amount that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(reason string, args ...any) error {
	return &ValidationError{Field: "amount", Reason: fmt.Sprintf(reason, args...)}
}

// ToMicroUnits parses a decimal amount such as "1.5" into micro-units
// (1500000). Fraction digits past the sixth are truncated.
func ToMicroUnits(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("amount is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, invalid("amount cannot be negative")
	}
	s = strings.TrimPrefix(s, "+")
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, invalid("%q is not a number", s)
	}
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, invalid("%q is not a number", s)
	}
	if len(frac) > constants.Decimals {
		frac = frac[:constants.Decimals]
	}
	frac += strings.Repeat("0", constants.Decimals-len(frac))

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, invalid("%q is too large", s)
	}
	f, _ := strconv.ParseUint(frac, 10, 64)
	if w > (math.MaxUint64-f)/constants.MicroUnitsPerCNPY {
		return 0, invalid("%q is too large", s)
	}
	return w*constants.MicroUnitsPerCNPY + f, nil
}

// FromMicroUnits renders micro-units as an exact decimal with trailing zeros
// trimmed: 1500000 -> "1.5", 100000000 -> "100".
func FromMicroUnits(u uint64) string {
	whole := u / constants.MicroUnitsPerCNPY
	frac := u % constants.MicroUnitsPerCNPY
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := fmt.Sprintf("%0*d", constants.Decimals, frac)
	return strconv.FormatUint(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// MustMicroUnits is ToMicroUnits for literals known to be valid.
func MustMicroUnits(s string) uint64 {
	u, err := ToMicroUnits(s)
	if err != nil {
		panic(err)
	}
	return u
}

// FormatCNPY renders micro-units with thousand separators and the token symbol.
func FormatCNPY(u uint64) string {
	return FormatDecimal(u) + " " + constants.TokenSymbol
}

// FormatDecimal renders micro-units with thousand separators, keeping the exact fraction.
func FormatDecimal(u uint64) string {
	p := message.NewPrinter(language.English)
	whole := p.Sprintf("%d", u/constants.MicroUnitsPerCNPY)
	s := FromMicroUnits(u)
	if _, frac, ok := strings.Cut(s, "."); ok {
		return whole + "." + frac
	}
	return whole
}

// ToFloat converts micro-units to a float for display-only arithmetic.
func ToFloat(u uint64) float64 {
	return float64(u) / constants.MicroUnitsPerCNPY
}

// Percent returns pct percent of u, rounded down. pct is clamped to [0,100].
func Percent(u uint64, pct int) uint64 {
	switch {
	case pct <= 0:
		return 0
	case pct >= 100:
		return u
	}
	return u/100*uint64(pct) + u%100*uint64(pct)/100
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
