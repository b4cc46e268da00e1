// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wallet stores signing keys encrypted at rest and tracks which of
// them are unlocked for signing.
package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/crypto/bls/signer/localsigner"
	"github.com/luxfi/crypto/secp256k1"
	bip39 "github.com/luxfi/go-bip39"
	"golang.org/x/crypto/hkdf"
)

// Curve names the signature scheme of a key.
type Curve string

const (
	CurveSecp256k1 Curve = "secp256k1"
	CurveEd25519   Curve = "ed25519"
	CurveBLS12381  Curve = "bls12381"
)

var Curves = []Curve{CurveSecp256k1, CurveEd25519, CurveBLS12381}

func ParseCurve(s string) (Curve, error) {
	switch c := Curve(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CurveSecp256k1, nil
	case CurveSecp256k1, CurveEd25519, CurveBLS12381:
		return c, nil
	case "bls":
		return CurveBLS12381, nil
	}
	return "", fmt.Errorf("unsupported curve %q", s)
}

// KeyPair is unlocked key material. PrivateKey is the 32 byte secret in the
// curve's native encoding (the seed for ed25519).
type KeyPair struct {
	Curve      Curve
	PrivateKey []byte
	PublicKey  []byte
	Address    string
}

// Zero wipes the private key.
func (k *KeyPair) Zero() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}

const (
	hdSalt      = "launchpad-hd-key-derivation"
	blsAttempts = 64
)

func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// DeriveKeyPair derives the key for curve at account index from a mnemonic.
func DeriveKeyPair(mnemonic string, curve Curve, account uint32) (KeyPair, error) {
	if !ValidateMnemonic(mnemonic) {
		return KeyPair{}, errors.New("invalid mnemonic phrase")
	}
	seed := bip39.NewSeed(mnemonic, "")
	defer zero(seed)

	if curve == CurveBLS12381 {
		// Not every 32 byte string is a valid BLS scalar; walk a counter until one is.
		for i := uint32(0); i < blsAttempts; i++ {
			sk, err := hkdfKey(seed, fmt.Sprintf("launchpad-%s-key/account/%d/%d", curve, account, i))
			if err != nil {
				return KeyPair{}, err
			}
			kp, err := KeyPairFromPrivate(curve, sk)
			if err == nil {
				return kp, nil
			}
		}
		return KeyPair{}, errors.New("failed to derive a valid bls key")
	}

	sk, err := hkdfKey(seed, fmt.Sprintf("launchpad-%s-key/account/%d", curve, account))
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPairFromPrivate(curve, sk)
}

func hkdfKey(seed []byte, info string) ([]byte, error) {
	salt := sha256.Sum256([]byte(hdSalt))
	r := hkdf.New(sha512.New, seed, salt[:], []byte(info))
	key := make([]byte, 32)
	if _, err := r.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// KeyPairFromPrivate completes a key pair from its 32 byte secret.
func KeyPairFromPrivate(curve Curve, priv []byte) (KeyPair, error) {
	var pub []byte
	switch curve {
	case CurveSecp256k1:
		sk, err := secp256k1.ToPrivateKey(priv)
		if err != nil {
			return KeyPair{}, fmt.Errorf("invalid secp256k1 key: %w", err)
		}
		pub = sk.PublicKey().Bytes()
	case CurveEd25519:
		if len(priv) != ed25519.SeedSize {
			return KeyPair{}, fmt.Errorf("invalid ed25519 seed length %d", len(priv))
		}
		pub = ed25519.NewKeyFromSeed(priv).Public().(ed25519.PublicKey)
	case CurveBLS12381:
		sk, err := localsigner.FromBytes(priv)
		if err != nil {
			return KeyPair{}, fmt.Errorf("invalid bls key: %w", err)
		}
		pub = bls.PublicKeyToCompressedBytes(sk.PublicKey())
	default:
		return KeyPair{}, fmt.Errorf("unsupported curve %q", curve)
	}
	return KeyPair{Curve: curve, PrivateKey: priv, PublicKey: pub, Address: Address(pub)}, nil
}

// Address is the hex of the first 20 bytes of sha256(publicKey).
func Address(pub []byte) string {
	h := sha256.Sum256(pub)
	return hex.EncodeToString(h[:20])
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
