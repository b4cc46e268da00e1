// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tx builds, signs and verifies launchpad transactions.
package tx

import (
	"errors"
	"fmt"

	"github.com/luxfi/launchpad/pkg/chainid"
)

type MessageType string

const (
	MessageSend      MessageType = "send"
	MessageStake     MessageType = "stake"
	MessageEditStake MessageType = "editStake"
	MessageUnstake   MessageType = "unstake"
)

func (m MessageType) Valid() bool {
	switch m {
	case MessageSend, MessageStake, MessageEditStake, MessageUnstake:
		return true
	}
	return false
}

// Message is the typed payload of a transaction.
type Message interface {
	Type() MessageType
	Validate() error
}

type SendMessage struct {
	FromAddress string `json:"fromAddress"`
	ToAddress   string `json:"toAddress"`
	Amount      uint64 `json:"amount"`
}

func NewSendMessage(from, to string, amount uint64) *SendMessage {
	return &SendMessage{FromAddress: from, ToAddress: to, Amount: amount}
}

func (*SendMessage) Type() MessageType { return MessageSend }

func (m *SendMessage) Validate() error {
	switch {
	case m.FromAddress == "":
		return errors.New("send: missing sender address")
	case m.ToAddress == "":
		return errors.New("send: missing recipient address")
	case m.Amount == 0:
		return errors.New("send: amount must be positive")
	}
	return nil
}

// StakeParams describes a delegated stake.
type StakeParams struct {
	Address       string
	PublicKey     string
	Amount        uint64
	Committees    []chainid.ID
	OutputAddress string
	AutoCompound  bool
}

type StakeMessage struct {
	Address       string   `json:"address"`
	PublicKey     string   `json:"publicKey"`
	Amount        uint64   `json:"amount"`
	Committees    []uint64 `json:"committees"`
	NetAddress    string   `json:"netAddress"`
	OutputAddress string   `json:"outputAddress"`
	Delegate      bool     `json:"delegate"`
	Compound      bool     `json:"compound"`
}

// NewStakeMessage builds a delegation. Rewards go to the staking address
// unless an output address is given.
func NewStakeMessage(p StakeParams) *StakeMessage {
	out := p.OutputAddress
	if out == "" {
		out = p.Address
	}
	return &StakeMessage{
		Address:       p.Address,
		PublicKey:     p.PublicKey,
		Amount:        p.Amount,
		Committees:    chainid.Uint64s(chainid.Sorted(p.Committees)),
		OutputAddress: out,
		Delegate:      true,
		Compound:      p.AutoCompound,
	}
}

func (*StakeMessage) Type() MessageType { return MessageStake }

func (m *StakeMessage) Validate() error {
	return validateStake("stake", m.Address, m.Amount, m.Committees)
}

type EditStakeMessage struct {
	Address       string   `json:"address"`
	Amount        uint64   `json:"amount"`
	Committees    []uint64 `json:"committees"`
	NetAddress    string   `json:"netAddress"`
	OutputAddress string   `json:"outputAddress"`
	Compound      bool     `json:"compound"`
}

// NewEditStakeMessage replaces an existing stake's amount and committees.
// The amount is the new total, not a delta.
func NewEditStakeMessage(p StakeParams) *EditStakeMessage {
	out := p.OutputAddress
	if out == "" {
		out = p.Address
	}
	return &EditStakeMessage{
		Address:       p.Address,
		Amount:        p.Amount,
		Committees:    chainid.Uint64s(chainid.Sorted(p.Committees)),
		OutputAddress: out,
		Compound:      p.AutoCompound,
	}
}

func (*EditStakeMessage) Type() MessageType { return MessageEditStake }

func (m *EditStakeMessage) Validate() error {
	return validateStake("editStake", m.Address, m.Amount, m.Committees)
}

// UnstakeMessage withdraws a stake. A zero Amount withdraws all of it.
type UnstakeMessage struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount,omitempty"`
}

func NewUnstakeMessage(address string) *UnstakeMessage {
	return &UnstakeMessage{Address: address}
}

// NewPartialUnstakeMessage withdraws only amount.
func NewPartialUnstakeMessage(address string, amount uint64) *UnstakeMessage {
	return &UnstakeMessage{Address: address, Amount: amount}
}

func (*UnstakeMessage) Type() MessageType { return MessageUnstake }

func (m *UnstakeMessage) Validate() error {
	if m.Address == "" {
		return errors.New("unstake: missing address")
	}
	return nil
}

func validateStake(kind, address string, amount uint64, committees []uint64) error {
	switch {
	case address == "":
		return fmt.Errorf("%s: missing address", kind)
	case amount == 0:
		return fmt.Errorf("%s: amount must be positive", kind)
	case len(committees) == 0:
		return fmt.Errorf("%s: at least one committee is required", kind)
	}
	return nil
}
