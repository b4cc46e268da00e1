// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/constants"
)

var (
	ErrMissingHeight = errors.New("transaction requires a current chain height")
	ErrMissingFee    = errors.New("transaction requires an estimated fee")
	ErrInvalidChain  = errors.New("transaction requires a resolved chain id")
)

// Draft is everything the caller decides before a transaction is built.
// Height must be fetched immediately before building.
type Draft struct {
	Msg       Message
	Fee       *uint64
	Memo      string
	Height    uint64
	ChainID   chainid.ID
	NetworkID uint64
	CreatedAt time.Time
}

// Signature carries the signer's public key alongside the signature, both hex.
type Signature struct {
	PublicKey string `json:"publicKey"`
	Signature string `json:"signature"`
}

// Transaction is the wire form. Signature is nil until signed.
type Transaction struct {
	Type          MessageType `json:"type"`
	Msg           Message     `json:"msg"`
	Signature     *Signature  `json:"signature,omitempty"`
	Time          uint64      `json:"time"`
	CreatedHeight uint64      `json:"createdHeight"`
	Fee           uint64      `json:"fee"`
	Memo          string      `json:"memo"`
	NetworkID     uint64      `json:"networkID"`
	ChainID       uint64      `json:"chainID"`
}

// Build validates a draft and produces the unsigned transaction. An empty
// memo is replaced by a single space, which the chain requires.
func Build(d Draft) (*Transaction, error) {
	if d.Msg == nil {
		return nil, errors.New("transaction requires a message")
	}
	if err := d.Msg.Validate(); err != nil {
		return nil, err
	}
	if d.Height == 0 {
		return nil, ErrMissingHeight
	}
	if d.Fee == nil {
		return nil, ErrMissingFee
	}
	if !d.ChainID.Valid() {
		return nil, ErrInvalidChain
	}
	memo := d.Memo
	if memo == "" {
		memo = constants.MemoSentinel
	}
	network := d.NetworkID
	if network == 0 {
		network = constants.DefaultNetworkID
	}
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return &Transaction{
		Type:          d.Msg.Type(),
		Msg:           d.Msg,
		Time:          uint64(created.UnixMicro()),
		CreatedHeight: d.Height,
		Fee:           *d.Fee,
		Memo:          memo,
		NetworkID:     network,
		ChainID:       d.ChainID.Uint64(),
	}, nil
}

// SignBytes is the canonical encoding that gets signed: the transaction
// with its signature removed.
func (t *Transaction) SignBytes() ([]byte, error) {
	unsigned := *t
	unsigned.Signature = nil
	b, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return b, nil
}

// UnmarshalJSON decodes the message payload according to type.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var raw struct {
		plain
		Msg json.RawMessage `json:"msg"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var msg Message
	switch raw.Type {
	case MessageSend:
		msg = &SendMessage{}
	case MessageStake:
		msg = &StakeMessage{}
	case MessageEditStake:
		msg = &EditStakeMessage{}
	case MessageUnstake:
		msg = &UnstakeMessage{}
	default:
		return fmt.Errorf("unknown message type %q", raw.Type)
	}
	if len(raw.Msg) > 0 {
		if err := json.Unmarshal(raw.Msg, msg); err != nil {
			return fmt.Errorf("failed to decode %s message: %w", raw.Type, err)
		}
	}
	*t = Transaction(raw.plain)
	t.Msg = msg
	return nil
}
