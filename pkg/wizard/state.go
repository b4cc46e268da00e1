// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wizard

import (
	"github.com/luxfi/launchpad/pkg/fee"
	"github.com/luxfi/launchpad/pkg/submit"
)

// Kind identifies a wizard step.
type Kind int

const (
	// KindUnknown is never the kind of a live state
	KindUnknown Kind = iota
	// KindSelecting is amount entry
	KindSelecting
	// KindReviewing shows amount and fee awaiting confirmation
	KindReviewing
	// KindSubmitting is while the transaction is built, signed and sent
	KindSubmitting
	// KindSucceeded holds the transaction hash
	KindSucceeded
	// KindFailed holds the error message
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindSelecting:
		return "selecting"
	case KindReviewing:
		return "reviewing"
	case KindSubmitting:
		return "submitting"
	case KindSucceeded:
		return "succeeded"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

// State is one of Selecting, Reviewing, Submitting, Succeeded or Failed.
// Each variant carries exactly the data valid in that step.
type State interface {
	Kind() Kind
	isState()
}

type Selecting struct{}

type Reviewing struct {
	Amount uint64
	Fee    fee.Fee
}

type Submitting struct {
	Amount uint64
	Fee    fee.Fee
}

type Succeeded struct {
	Amount uint64
	Hash   string
}

// ShortHash is the hash as shown to the user.
func (s Succeeded) ShortHash() string {
	return submit.ShortHash(s.Hash)
}

type Failed struct {
	Message string
}

func (Selecting) Kind() Kind  { return KindSelecting }
func (Reviewing) Kind() Kind  { return KindReviewing }
func (Submitting) Kind() Kind { return KindSubmitting }
func (Succeeded) Kind() Kind  { return KindSucceeded }
func (Failed) Kind() Kind     { return KindFailed }

func (Selecting) isState()  {}
func (Reviewing) isState()  {}
func (Submitting) isState() {}
func (Succeeded) isState()  {}
func (Failed) isState()     {}
