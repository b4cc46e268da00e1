// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wizard

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/launchpad/internal/mocks"
	"github.com/luxfi/launchpad/pkg/fee"
	"github.com/luxfi/launchpad/pkg/submit"
	"github.com/luxfi/launchpad/pkg/wallet"
	luxlog "github.com/luxfi/log"
)

const testKey = "alice"

// fakeKeys hands out a fresh copy of one ed25519 key on each call, since the
// signer zeroes what it receives.
type fakeKeys struct {
	mu     sync.Mutex
	locked bool
	seed   []byte
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{seed: bytes.Repeat([]byte{7}, 32)}
}

func (k *fakeKeys) setLocked(v bool) {
	k.mu.Lock()
	k.locked = v
	k.mu.Unlock()
}

func (k *fakeKeys) IsUnlocked(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return name == testKey && !k.locked
}

func (k *fakeKeys) KeyPair(name string) (wallet.KeyPair, error) {
	if !k.IsUnlocked(name) {
		return wallet.KeyPair{}, &wallet.WalletLockedError{Name: name}
	}
	return wallet.KeyPairFromPrivate(wallet.CurveEd25519, append([]byte(nil), k.seed...))
}

// address derives from the seed directly so it works while locked.
func (k *fakeKeys) address() string {
	kp, err := wallet.KeyPairFromPrivate(wallet.CurveEd25519, append([]byte(nil), k.seed...))
	if err != nil {
		panic(err)
	}
	return kp.Address
}

func stakeOp(keys *fakeKeys) Operation {
	return Operation{
		Kind:      OpStake,
		KeyName:   testKey,
		Address:   keys.address(),
		PublicKey: "00",
		ChainID:   42,
		Available: 500_000_000,
	}
}

// fataler is satisfied by *testing.T and ginkgo.GinkgoT().
type fataler interface {
	Helper()
	Fatal(args ...interface{})
}

func newController(t fataler, op Operation, backend *mocks.Backend, keys *fakeKeys) *Controller {
	t.Helper()
	c, err := New(op, Deps{
		Fees:        fee.NewEstimator(backend),
		Heights:     backend,
		Keys:        keys,
		Submitter:   submit.NewSubmitter(backend, nil, luxlog.NewNoOpLogger()),
		FeeDebounce: 500 * time.Millisecond,
		Log:         luxlog.NewNoOpLogger(),
		Now:         func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// scriptedPrompter answers prompts from fixed queues.
type scriptedPrompter struct {
	strings []string
	yesNo   []bool
	asked   []string
}

func (p *scriptedPrompter) CaptureValidatedString(prompt string, validator func(string) error) (string, error) {
	p.asked = append(p.asked, prompt)
	for len(p.strings) > 0 {
		s := p.strings[0]
		p.strings = p.strings[1:]
		if validator(s) == nil {
			return s, nil
		}
	}
	return "", fmt.Errorf("no valid answer for %q", prompt)
}

func (p *scriptedPrompter) CaptureYesNo(prompt string) (bool, error) {
	p.asked = append(p.asked, prompt)
	if len(p.yesNo) == 0 {
		return false, fmt.Errorf("unexpected question %q", prompt)
	}
	v := p.yesNo[0]
	p.yesNo = p.yesNo[1:]
	return v, nil
}

type recordingOutput struct {
	lines []string
}

func (o *recordingOutput) PrintToUser(msg string, args ...interface{}) {
	o.lines = append(o.lines, fmt.Sprintf(msg, args...))
}

func (o *recordingOutput) GreenCheckmarkToUser(msg string, args ...interface{}) {
	o.lines = append(o.lines, "ok "+fmt.Sprintf(msg, args...))
}

func (o *recordingOutput) RedXToUser(msg string, args ...interface{}) {
	o.lines = append(o.lines, "x "+fmt.Sprintf(msg, args...))
}
