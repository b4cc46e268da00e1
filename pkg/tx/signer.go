// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package tx

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/crypto/bls/signer/localsigner"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/launchpad/pkg/wallet"
	"golang.org/x/crypto/blake2b"
)

// KeyPair is the unlocked key material a transaction is signed with.
type KeyPair = wallet.KeyPair

// KeySource hands out key material for a named key. Implementations return
// *wallet.WalletLockedError while the key is locked.
type KeySource interface {
	IsUnlocked(name string) bool
	KeyPair(name string) (wallet.KeyPair, error)
}

// SignedTransaction is a transaction with its signature attached and the
// locally computed id.
type SignedTransaction struct {
	Transaction
	ID string `json:"-"`
}

// Signer signs with keys from a KeySource.
type Signer struct {
	keys KeySource
}

func NewSigner(keys KeySource) *Signer {
	return &Signer{keys: keys}
}

// Sign signs t with the named key. A locked key fails before any signing
// is attempted.
func (s *Signer) Sign(name string, t *Transaction) (*SignedTransaction, error) {
	if !s.keys.IsUnlocked(name) {
		return nil, &wallet.WalletLockedError{Name: name}
	}
	kp, err := s.keys.KeyPair(name)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()
	return Sign(t, kp)
}

// Sign signs the transaction's canonical bytes with kp's curve.
func Sign(t *Transaction, kp KeyPair) (*SignedTransaction, error) {
	msg, err := t.SignBytes()
	if err != nil {
		return nil, err
	}

	var sig []byte
	switch kp.Curve {
	case wallet.CurveSecp256k1:
		sk, err := secp256k1.ToPrivateKey(kp.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		if sig, err = sk.Sign(msg); err != nil {
			return nil, fmt.Errorf("failed to sign: %w", err)
		}
	case wallet.CurveEd25519:
		sig = ed25519.Sign(ed25519.NewKeyFromSeed(kp.PrivateKey), msg)
	case wallet.CurveBLS12381:
		sk, err := localsigner.FromBytes(kp.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load bls key: %w", err)
		}
		s, err := sk.Sign(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to sign: %w", err)
		}
		sig = bls.SignatureToBytes(s)
	default:
		return nil, fmt.Errorf("unsupported curve %q", kp.Curve)
	}

	signed := &SignedTransaction{Transaction: *t}
	signed.Signature = &Signature{
		PublicKey: hex.EncodeToString(kp.PublicKey),
		Signature: hex.EncodeToString(sig),
	}
	if signed.ID, err = ComputeID(signed); err != nil {
		return nil, err
	}
	return signed, nil
}

// ComputeID is the hex blake2b-256 of the signed wire encoding.
func ComputeID(s *SignedTransaction) (string, error) {
	b, err := json.Marshal(&s.Transaction)
	if err != nil {
		return "", err
	}
	h := blake2b.Sum256(b)
	return hex.EncodeToString(h[:]), nil
}

var ErrUnsignedTransaction = errors.New("transaction is not signed")

// Verify checks the attached signature. The scheme is inferred from the
// public key length: 32 bytes is ed25519, 33 or 65 is secp256k1.
func Verify(s *SignedTransaction) error {
	if s.Signature == nil {
		return ErrUnsignedTransaction
	}
	pub, err := hex.DecodeString(s.Signature.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	sig, err := hex.DecodeString(s.Signature.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	msg, err := s.SignBytes()
	if err != nil {
		return err
	}

	switch len(pub) {
	case ed25519.PublicKeySize:
		if !ed25519.Verify(pub, msg, sig) {
			return errors.New("ed25519 signature does not verify")
		}
	case 33, 65:
		pk, err := secp256k1.ToPublicKey(pub)
		if err != nil {
			return fmt.Errorf("invalid secp256k1 public key: %w", err)
		}
		if !pk.Verify(msg, sig) {
			return errors.New("secp256k1 signature does not verify")
		}
	default:
		return fmt.Errorf("cannot verify signature for %d byte public key", len(pub))
	}
	return nil
}
