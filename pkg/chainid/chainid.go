// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainid provides the canonical chain identifier used across the
// launchpad client. The API sends chain identity in several shapes (an opaque
// string id, a nullable chain_id that is sometimes a number and sometimes a
// string such as "virt-chain-10011"); Resolve collapses them into one ID at the
// ingestion boundary so nothing downstream has to re-derive it.
package chainid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ID is a canonical chain identifier. The zero value means unresolved and is
// never a valid committee or transaction target.
type ID uint64

// Unresolved is returned when no encoding yields a numeric id.
const Unresolved ID = 0

var trailingDigits = regexp.MustCompile(`(\d+)$`)

func (id ID) Valid() bool {
	return id != Unresolved
}

func (id ID) Uint64() uint64 {
	return uint64(id)
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Parse reads a strictly decimal id.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Unresolved, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return ID(v), nil
}

// Raw is the chain_id field exactly as the API sent it.
type Raw struct {
	str string
	num *uint64
}

// RawString wraps a string chain_id.
func RawString(s string) Raw {
	return Raw{str: s}
}

// RawNumber wraps a numeric chain_id.
func RawNumber(n uint64) Raw {
	return Raw{num: &n}
}

func (r Raw) IsNull() bool {
	return r.num == nil && r.str == ""
}

func (r Raw) String() string {
	if r.num != nil {
		return strconv.FormatUint(*r.num, 10)
	}
	return r.str
}

func (r *Raw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Raw{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.str)
	}
	if n, err := strconv.ParseUint(string(data), 10, 64); err == nil {
		r.num = &n
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxUint64 {
		return fmt.Errorf("unsupported chain_id value %s", data)
	}
	n := uint64(f)
	r.num = &n
	return nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	switch {
	case r.num != nil:
		return []byte(strconv.FormatUint(*r.num, 10)), nil
	case r.str != "":
		return json.Marshal(r.str)
	default:
		return []byte("null"), nil
	}
}

// Resolve produces the canonical id for a chain. It tries, in order: a direct
// numeric parse of id, a numeric chain_id, and the trailing digit run of a
// string chain_id. Anything else resolves to Unresolved.
func Resolve(id string, raw Raw) ID {
	if v, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64); err == nil && v != 0 {
		return ID(v)
	}
	if raw.num != nil {
		return ID(*raw.num)
	}
	m := trailingDigits.FindStringSubmatch(strings.TrimSpace(raw.str))
	if m == nil {
		return Unresolved
	}
	v, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Unresolved
	}
	return ID(v)
}

// Sorted returns ids in ascending order without duplicates or unresolved entries.
func Sorted(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Uint64s converts ids for the wire.
func Uint64s(ids []ID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}
