// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wallet

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/safety"
	luxlog "github.com/luxfi/log"
	"golang.org/x/crypto/argon2"
)

const (
	keystoreFile = "keystore.enc"
	infoFile     = "info.json"
)

// Argon2id parameters for new keystores. Existing keystores carry their own.
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// Info is the public half of a stored key, readable without unlocking.
type Info struct {
	Name      string    `json:"name" yaml:"name"`
	Curve     Curve     `json:"curve" yaml:"curve"`
	Address   string    `json:"address" yaml:"address"`
	PublicKey string    `json:"public_key" yaml:"public_key"`
	Account   uint32    `json:"account" yaml:"account"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Locked    bool      `json:"-" yaml:"locked"`
}

type CreateOptions struct {
	Password string
	// Mnemonic restores an existing seed; empty generates a new one.
	Mnemonic string
	Curve    Curve
	Account  uint32
}

type ImportOptions struct {
	Password   string
	PrivateKey string
	Curve      Curve
}

type kdfParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
}

type encryptedStore struct {
	Version   int       `json:"version"`
	KDF       kdfParams `json:"kdf"`
	Salt      []byte    `json:"salt"`
	Nonce     []byte    `json:"nonce"`
	Data      []byte    `json:"data"`
	CreatedAt int64     `json:"created_at"`
}

type secretPayload struct {
	Curve      Curve  `json:"curve"`
	PrivateKey string `json:"private_key"`
}

type session struct {
	key        []byte
	unlockedAt time.Time
	expiresAt  time.Time
	mlocked    bool
}

// Keystore keeps one encrypted key per directory under its root. Unlocking a
// key opens a session that slides forward on every use and expires after the
// configured idle timeout.
type Keystore struct {
	dir     string
	timeout time.Duration
	kdf     kdfParams
	now     func() time.Time
	log     luxlog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type Option func(*Keystore)

func WithSessionTimeout(d time.Duration) Option {
	return func(k *Keystore) {
		if d > 0 {
			k.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(k *Keystore) { k.now = now }
}

func WithLogger(log luxlog.Logger) Option {
	return func(k *Keystore) { k.log = log }
}

// WithKDFCost overrides the Argon2id cost for newly written keystores.
func WithKDFCost(iterations, memoryKiB uint32) Option {
	return func(k *Keystore) {
		k.kdf.Time = iterations
		k.kdf.Memory = memoryKiB
	}
}

func New(dir string, opts ...Option) *Keystore {
	k := &Keystore{
		dir:      dir,
		timeout:  constants.DefaultKeySessionTimeout,
		kdf:      kdfParams{Time: argon2Time, Memory: argon2Memory, Threads: argon2Threads},
		now:      time.Now,
		log:      luxlog.NewNoOpLogger(),
		sessions: map[string]*session{},
	}
	for _, o := range opts {
		o(k)
	}
	return k
}

func (k *Keystore) Dir() string {
	return k.dir
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Create derives a new key from a fresh or supplied mnemonic and stores it.
// The mnemonic is returned so the caller can show it once; it is not persisted.
func (k *Keystore) Create(ctx context.Context, name string, opts CreateOptions) (Info, string, error) {
	if err := validName(name); err != nil {
		return Info{}, "", err
	}
	mnemonic := strings.TrimSpace(opts.Mnemonic)
	if mnemonic == "" {
		var err error
		if mnemonic, err = GenerateMnemonic(); err != nil {
			return Info{}, "", err
		}
	}
	curve := opts.Curve
	if curve == "" {
		curve = CurveSecp256k1
	}
	kp, err := DeriveKeyPair(mnemonic, curve, opts.Account)
	if err != nil {
		return Info{}, "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer kp.Zero()

	info, err := k.save(name, kp, opts.Account, opts.Password)
	if err != nil {
		return Info{}, "", err
	}
	return info, mnemonic, nil
}

// Import stores a raw hex private key.
func (k *Keystore) Import(ctx context.Context, name string, opts ImportOptions) (Info, error) {
	if err := validName(name); err != nil {
		return Info{}, err
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(opts.PrivateKey), "0x"))
	if err != nil {
		return Info{}, fmt.Errorf("private key is not hex: %w", err)
	}
	curve := opts.Curve
	if curve == "" {
		curve = CurveSecp256k1
	}
	kp, err := KeyPairFromPrivate(curve, raw)
	if err != nil {
		return Info{}, err
	}
	defer kp.Zero()
	return k.save(name, kp, 0, opts.Password)
}

func (k *Keystore) save(name string, kp KeyPair, account uint32, password string) (Info, error) {
	if password == "" {
		return Info{}, ErrNoPassword
	}
	keyDir := filepath.Join(k.dir, name)
	if _, err := os.Stat(keyDir); err == nil {
		return Info{}, ErrKeyExists
	}
	if err := os.MkdirAll(keyDir, 0o700); err != nil {
		return Info{}, fmt.Errorf("failed to create key directory: %w", err)
	}

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return Info{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	encKey := deriveKey(password, salt, k.kdf)
	defer zero(encKey)

	plaintext, err := json.Marshal(secretPayload{Curve: kp.Curve, PrivateKey: hex.EncodeToString(kp.PrivateKey)})
	if err != nil {
		return Info{}, err
	}
	defer zero(plaintext)

	nonce, ciphertext, err := encryptAESGCM(encKey, plaintext)
	if err != nil {
		return Info{}, fmt.Errorf("failed to encrypt: %w", err)
	}

	now := k.now().UTC()
	store := encryptedStore{
		Version:   1,
		KDF:       k.kdf,
		Salt:      salt,
		Nonce:     nonce,
		Data:      ciphertext,
		CreatedAt: now.Unix(),
	}
	storeData, err := json.Marshal(store)
	if err != nil {
		return Info{}, fmt.Errorf("failed to marshal store: %w", err)
	}
	if err := os.WriteFile(filepath.Join(keyDir, keystoreFile), storeData, 0o600); err != nil {
		return Info{}, fmt.Errorf("failed to write keystore: %w", err)
	}

	info := Info{
		Name:      name,
		Curve:     kp.Curve,
		Address:   kp.Address,
		PublicKey: hex.EncodeToString(kp.PublicKey),
		Account:   account,
		CreatedAt: now,
	}
	infoData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return Info{}, err
	}
	if err := os.WriteFile(filepath.Join(keyDir, infoFile), infoData, 0o644); err != nil { //nolint:gosec // public info
		return Info{}, fmt.Errorf("failed to write key info: %w", err)
	}
	k.log.Info("stored key", "name", name, "curve", string(kp.Curve), "address", kp.Address)
	info.Locked = true
	return info, nil
}

// Get reads a key's public info.
func (k *Keystore) Get(name string) (Info, error) {
	if err := validName(name); err != nil {
		return Info{}, err
	}
	data, err := os.ReadFile(filepath.Join(k.dir, name, infoFile)) //nolint:gosec // key directory
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
		}
		return Info{}, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("failed to parse key info: %w", err)
	}
	info.Locked = !k.IsUnlocked(name)
	return info, nil
}

// List returns every stored key sorted by name.
func (k *Keystore) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, err
	}
	keys := make([]Info, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := k.Get(e.Name())
		if err != nil {
			k.log.Warn("skipping unreadable key", "name", e.Name(), "error", err)
			continue
		}
		keys = append(keys, info)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys, nil
}

func (k *Keystore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(k.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
		}
		return err
	}
	k.Lock(name)
	return safety.RemoveEntry(k.dir, name)
}

// Unlock opens a signing session. An empty password falls back to the
// LAUNCHPAD_KEY_PASSWORD environment variable.
func (k *Keystore) Unlock(ctx context.Context, name, password string) error {
	if password == "" {
		password = os.Getenv(constants.EnvKeyPassword)
	}
	if password == "" {
		return ErrNoPassword
	}
	store, err := k.readStore(name)
	if err != nil {
		return err
	}
	encKey := deriveKey(password, store.Salt, store.KDF)
	plaintext, err := decryptAESGCM(encKey, store.Nonce, store.Data)
	if err != nil {
		zero(encKey)
		return ErrInvalidPassword
	}
	zero(plaintext)

	k.setSession(name, encKey)
	k.log.Info("key unlocked", "name", name, "timeout", k.timeout.String())
	return nil
}

func (k *Keystore) Lock(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if s, ok := k.sessions[name]; ok {
		clearSession(s)
		delete(k.sessions, name)
	}
}

func (k *Keystore) LockAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for name, s := range k.sessions {
		clearSession(s)
		delete(k.sessions, name)
	}
}

// IsUnlocked reports whether name has a live session. It does not extend it.
func (k *Keystore) IsUnlocked(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.sessions[name]
	if !ok {
		return false
	}
	if k.now().After(s.expiresAt) {
		clearSession(s)
		delete(k.sessions, name)
		return false
	}
	return true
}

// KeyPair decrypts the key for signing. A locked key fails with
// *WalletLockedError before any key material is read.
func (k *Keystore) KeyPair(name string) (KeyPair, error) {
	encKey := k.touch(name)
	if encKey == nil {
		return KeyPair{}, &WalletLockedError{Name: name}
	}
	defer zero(encKey)

	store, err := k.readStore(name)
	if err != nil {
		return KeyPair{}, err
	}
	plaintext, err := decryptAESGCM(encKey, store.Nonce, store.Data)
	if err != nil {
		return KeyPair{}, ErrInvalidPassword
	}
	defer zero(plaintext)

	var payload secretPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return KeyPair{}, fmt.Errorf("failed to parse keystore payload: %w", err)
	}
	priv, err := hex.DecodeString(payload.PrivateKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to decode private key: %w", err)
	}
	return KeyPairFromPrivate(payload.Curve, priv)
}

// Close locks every key.
func (k *Keystore) Close() error {
	k.LockAll()
	return nil
}

// touch extends a live session and returns a copy of its key.
func (k *Keystore) touch(name string) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.sessions[name]
	if !ok {
		return nil
	}
	now := k.now()
	if now.After(s.expiresAt) {
		clearSession(s)
		delete(k.sessions, name)
		return nil
	}
	s.expiresAt = now.Add(k.timeout)
	return append([]byte(nil), s.key...)
}

func (k *Keystore) setSession(name string, key []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if existing, ok := k.sessions[name]; ok {
		clearSession(existing)
	}
	now := k.now()
	k.sessions[name] = &session{
		key:        key,
		unlockedAt: now,
		expiresAt:  now.Add(k.timeout),
		mlocked:    mlock(key) == nil,
	}
}

func clearSession(s *session) {
	if s.mlocked {
		_ = munlock(s.key)
	}
	zero(s.key)
}

func (k *Keystore) readStore(name string) (encryptedStore, error) {
	if err := validName(name); err != nil {
		return encryptedStore{}, err
	}
	data, err := os.ReadFile(filepath.Join(k.dir, name, keystoreFile)) //nolint:gosec // key directory
	if err != nil {
		if os.IsNotExist(err) {
			return encryptedStore{}, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
		}
		return encryptedStore{}, fmt.Errorf("failed to read keystore: %w", err)
	}
	var store encryptedStore
	if err := json.Unmarshal(data, &store); err != nil {
		return encryptedStore{}, fmt.Errorf("failed to parse keystore: %w", err)
	}
	if store.KDF.Time == 0 || store.KDF.Memory == 0 {
		return encryptedStore{}, errors.New("keystore is missing kdf parameters")
	}
	return store, nil
}

func deriveKey(password string, salt []byte, p kdfParams) []byte {
	threads := p.Threads
	if threads == 0 {
		threads = argon2Threads
	}
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, threads, argon2KeyLen)
}

func encryptAESGCM(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return nonce, gcm.Seal(nil, nonce, plaintext, nil), nil
}

func decryptAESGCM(key, nonce, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}
