// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wizard

import (
	"fmt"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/tx"
)

type OpKind string

const (
	OpStake     OpKind = "stake"
	OpEditStake OpKind = "editStake"
	// OpUnstake always unstakes the whole position.
	OpUnstake OpKind = "unstake"
	// OpUnstakePartial unstakes a percentage of the position.
	OpUnstakePartial OpKind = "unstakePartial"
	OpSend           OpKind = "send"
)

// Operation is what the wizard is about to do, fixed when it opens.
type Operation struct {
	Kind    OpKind
	KeyName string
	Address string
	// PublicKey is hex, used by stake messages.
	PublicKey string
	// To is the send recipient.
	To      string
	ChainID chainid.ID
	// Available is the spendable balance in micro-units.
	Available uint64
	// CurrentlyStaked is the existing stake in micro-units.
	CurrentlyStaked uint64
	Committees      []chainid.ID
	AutoCompound    bool
	Memo            string
}

func (o Operation) TxType() tx.MessageType {
	switch o.Kind {
	case OpStake:
		return tx.MessageStake
	case OpEditStake:
		return tx.MessageEditStake
	case OpUnstake, OpUnstakePartial:
		return tx.MessageUnstake
	}
	return tx.MessageSend
}

// Verb is the user-facing action name.
func (o Operation) Verb() string {
	switch o.Kind {
	case OpStake:
		return "Stake"
	case OpEditStake:
		return "Edit stake"
	case OpUnstake, OpUnstakePartial:
		return "Unstake"
	}
	return "Send"
}

func (o Operation) validate() error {
	switch o.Kind {
	case OpStake, OpEditStake, OpUnstake, OpUnstakePartial, OpSend:
	default:
		return fmt.Errorf("unknown operation %q", o.Kind)
	}
	if o.Address == "" {
		return fmt.Errorf("%s: missing address", o.Kind)
	}
	if !o.ChainID.Valid() {
		return fmt.Errorf("%s: chain id is unresolved", o.Kind)
	}
	if o.Kind == OpSend && o.To == "" {
		return fmt.Errorf("send: missing recipient")
	}
	return nil
}

func (o Operation) message(amount uint64) tx.Message {
	params := tx.StakeParams{
		Address:      o.Address,
		PublicKey:    o.PublicKey,
		Amount:       amount,
		Committees:   append([]chainid.ID{o.ChainID}, o.Committees...),
		AutoCompound: o.AutoCompound,
	}
	switch o.Kind {
	case OpStake:
		return tx.NewStakeMessage(params)
	case OpEditStake:
		return tx.NewEditStakeMessage(params)
	case OpUnstake:
		return tx.NewUnstakeMessage(o.Address)
	case OpUnstakePartial:
		return tx.NewPartialUnstakeMessage(o.Address, amount)
	}
	return tx.NewSendMessage(o.Address, o.To, amount)
}
