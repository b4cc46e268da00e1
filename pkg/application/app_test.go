// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package application

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	backendmocks "github.com/luxfi/launchpad/internal/mocks"
	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/config"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/prompts/mocks"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/sample"
	"github.com/luxfi/launchpad/pkg/ux"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/luxfi/launchpad/pkg/wizard"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

func newTestApp(t *testing.T) (*Launchpad, *viper.Viper) {
	t.Helper()
	tempDir := t.TempDir()
	v := viper.New()
	config.SetDefaults(v, tempDir)
	app := New()
	app.Setup(tempDir, luxlog.NewNoOpLogger(), config.NewWithViper(v), prompts.NewNonInteractivePrompter())
	app.KeystoreOptions = []wallet.Option{wallet.WithKDFCost(1, 1024)}
	t.Cleanup(func() { _ = app.Close() })
	return app, v
}

func createKey(t *testing.T, app *Launchpad, name string) wallet.Info {
	t.Helper()
	info, _, err := app.Keystore().Create(context.Background(), name, wallet.CreateOptions{
		Password: testPassword,
		Curve:    wallet.CurveEd25519,
	})
	require.NoError(t, err)
	return info
}

func TestDirs(t *testing.T) {
	app, _ := newTestApp(t)
	base := app.GetBaseDir()
	require.Equal(t, filepath.Join(base, constants.KeyDir), app.GetKeyDir())
	require.Equal(t, filepath.Join(base, constants.LogDir), app.GetLogDir())
	require.Equal(t, filepath.Join(base, constants.DataDir, constants.HistoryDBFileName), app.GetHistoryDBPath())
	require.Equal(t, app.GetKeyDir(), app.Keystore().Dir())
}

func TestBackendSelection(t *testing.T) {
	app, v := newTestApp(t)
	v.Set(constants.ConfigAPIURL, "http://127.0.0.1:1")

	client, ok := app.Backend().(*api.Client)
	require.True(t, ok)
	require.Equal(t, "http://127.0.0.1:1", client.BaseURL())

	app.UseSampleBackend(true)
	_, ok = app.Backend().(*sample.Backend)
	require.True(t, ok)
	require.Same(t, app.Backend(), app.Backend())
}

func TestRecorderOpensHistoryDB(t *testing.T) {
	app, _ := newTestApp(t)
	rec := app.Recorder()
	_, ok := rec.(*recorder.SQLiteRecorder)
	require.True(t, ok)
	require.FileExists(t, app.GetHistoryDBPath())
}

func TestResolveKey(t *testing.T) {
	ctx := context.Background()
	app, v := newTestApp(t)

	_, err := app.ResolveKey(ctx, "", "stake")
	require.ErrorIs(t, err, ErrNoKeys)

	alice := createKey(t, app, "alice")
	got, err := app.ResolveKey(ctx, "", "stake")
	require.NoError(t, err)
	require.Equal(t, alice.Address, got.Address)

	createKey(t, app, "bob")
	_, err = app.ResolveKey(ctx, "", "stake")
	require.ErrorIs(t, err, prompts.ErrNonInteractive)

	v.Set(constants.ConfigDefaultKey, "bob")
	got, err = app.ResolveKey(ctx, "", "stake")
	require.NoError(t, err)
	require.Equal(t, "bob", got.Name)

	_, err = app.ResolveKey(ctx, "carol", "stake")
	require.ErrorIs(t, err, wallet.ErrKeyNotFound)
}

func TestResolveKeyPrompts(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	createKey(t, app, "alice")
	createKey(t, app, "bob")

	mockPrompt := &mocks.Prompter{}
	mockPrompt.On("CaptureList", "Which key should be used to send?", []string{"alice", "bob"}).Return("bob", nil)
	app.Prompt = mockPrompt

	got, err := app.ResolveKey(ctx, "", "send")
	require.NoError(t, err)
	require.Equal(t, "bob", got.Name)
	mockPrompt.AssertExpectations(t)
}

func TestUnlockFromEnvironment(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	createKey(t, app, "alice")

	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })

	t.Setenv(constants.EnvKeyPassword, "")
	require.NoError(t, app.Unlock(ctx, "alice"))
	require.False(t, app.Keystore().IsUnlocked("alice"))

	t.Setenv(constants.EnvKeyPassword, "wrong password")
	require.ErrorIs(t, app.Unlock(ctx, "alice"), wallet.ErrInvalidPassword)

	t.Setenv(constants.EnvKeyPassword, testPassword)
	require.NoError(t, app.Unlock(ctx, "alice"))
	require.True(t, app.Keystore().IsUnlocked("alice"))
}

func TestWizardAgainstSampleBackend(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	app.UseSampleBackend(true)
	info := createKey(t, app, "alice")
	require.NoError(t, app.Keystore().Unlock(ctx, "alice", testPassword))

	c, err := app.NewWizard(wizard.Operation{
		Kind:      wizard.OpStake,
		KeyName:   info.Name,
		Address:   info.Address,
		PublicKey: info.PublicKey,
		ChainID:   constants.MainChainID + 1,
		Available: sample.StartingBalance,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	require.NoError(t, c.Continue(ctx, "25"))
	require.Equal(t, wizard.KindReviewing, c.State().Kind())
	require.NoError(t, c.Confirm(ctx))
	done, ok := c.State().(wizard.Succeeded)
	require.True(t, ok)

	history, err := app.Recorder().ListTransactions(info.Address, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, done.Hash, history[0].Hash)
	require.Equal(t, uint64(25*constants.MicroUnitsPerCNPY), history[0].Amount)

	positions, err := app.Backend().GetStakingPositions(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, positions, 1)
}

func TestRunWizardAutoConfirm(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	app.UseSampleBackend(true)
	out := &bytes.Buffer{}
	ux.NewUserLog(luxlog.NewNoOpLogger(), out)
	info := createKey(t, app, "alice")

	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })
	t.Setenv(constants.EnvKeyPassword, testPassword)

	available, err := app.Available(ctx, info.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(sample.StartingBalance), available)

	op := NewOperation(wizard.OpSend, info)
	op.To = "00112233445566778899aabbccddeeff00112233"
	op.ChainID = constants.MainChainID
	op.Available = available

	// without --yes the confirmation cannot be asked
	_, err = app.RunWizard(ctx, op, "1", false)
	require.ErrorIs(t, err, prompts.ErrNonInteractive)

	st, err := app.RunWizard(ctx, op, "1", true)
	require.NoError(t, err)
	require.Equal(t, wizard.KindSucceeded, st.Kind())
	require.Contains(t, out.String(), "Transaction hash")

	available, err = app.Available(ctx, info.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(sample.StartingBalance-constants.MicroUnitsPerCNPY-sample.Fee), available)
}

// laggingBackend keeps serving the staking reads it saw last until
// caughtUp is set again.
type laggingBackend struct {
	*sample.Backend
	caughtUp  bool
	positions []models.StakingPosition
	queue     []models.UnstakingEntry
}

func (l *laggingBackend) GetStakingPositions(ctx context.Context, address string) ([]models.StakingPosition, error) {
	if l.caughtUp {
		p, err := l.Backend.GetStakingPositions(ctx, address)
		if err != nil {
			return nil, err
		}
		l.positions = p
	}
	return l.positions, nil
}

func (l *laggingBackend) GetUnstakingQueue(ctx context.Context, address string) ([]models.UnstakingEntry, error) {
	if l.caughtUp {
		q, err := l.Backend.GetUnstakingQueue(ctx, address)
		if err != nil {
			return nil, err
		}
		l.queue = q
	}
	return l.queue, nil
}

func TestStakeShowsBeforeBackendCatchesUp(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)
	backend := &laggingBackend{Backend: sample.NewBackend(SampleChains, SampleSeed)}
	app.SetBackend(backend)
	ux.NewUserLog(luxlog.NewNoOpLogger(), &bytes.Buffer{})
	info := createKey(t, app, "alice")

	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })
	t.Setenv(constants.EnvKeyPassword, testPassword)

	op := NewOperation(wizard.OpStake, info)
	op.ChainID = constants.MainChainID + 1
	op.Available = sample.StartingBalance
	st, err := app.RunWizard(ctx, op, "40", true)
	require.NoError(t, err)
	require.Equal(t, wizard.KindSucceeded, st.Kind())

	positions, err := app.Positions(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	require.Equal(t, uint64(40*constants.MicroUnitsPerCNPY), positions[0].Amount)

	// once the backend shows the stake the local copy gives way to it
	backend.caughtUp = true
	positions, err = app.Positions(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	serverID := positions[0].ID
	server, err := backend.Backend.GetStakingPositions(ctx, info.Address)
	require.NoError(t, err)
	require.Equal(t, server[0].ID, serverID)

	backend.caughtUp = false
	op = NewOperation(wizard.OpUnstakePartial, info)
	op.ChainID = constants.MainChainID + 1
	op.CurrentlyStaked = positions[0].Amount
	st, err = app.RunWizard(ctx, op, "25", true)
	require.NoError(t, err)
	require.Equal(t, wizard.KindSucceeded, st.Kind())

	positions, err = app.Positions(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	require.Equal(t, uint64(30*constants.MicroUnitsPerCNPY), positions[0].Amount)

	queue, err := app.UnstakingQueue(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, uint64(10*constants.MicroUnitsPerCNPY), queue[0].Amount)
	require.True(t, app.Staking().Queue().Local(queue[0].ID))

	backend.caughtUp = true
	queue, err = app.UnstakingQueue(ctx, info.Address)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.False(t, app.Staking().Queue().Local(queue[0].ID))

	// a full unstake sends no amount but history keeps what was unstaked
	op = NewOperation(wizard.OpUnstake, info)
	op.ChainID = constants.MainChainID + 1
	op.CurrentlyStaked = positions[0].Amount
	st, err = app.RunWizard(ctx, op, "", true)
	require.NoError(t, err)
	require.Equal(t, wizard.KindSucceeded, st.Kind())
	history, err := app.Recorder().ListTransactions(info.Address, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, uint64(30*constants.MicroUnitsPerCNPY), history[0].Amount)

	positions, err = app.Positions(ctx, info.Address)
	require.NoError(t, err)
	require.Empty(t, positions)
}

func TestWaitForInclusionWarnsWhenSlow(t *testing.T) {
	app, _ := newTestApp(t)
	backend := &backendmocks.Backend{}
	backend.On("GetTransaction", mock.Anything, "0xfeed").Return(api.TransactionStatus{}, &api.Error{Status: 404}).Times(3)
	backend.On("GetTransaction", mock.Anything, "0xfeed").Return(api.TransactionStatus{Hash: "0xfeed", Height: 12}, nil).Once()
	app.SetBackend(backend)
	out := &bytes.Buffer{}
	ux.NewUserLog(luxlog.NewNoOpLogger(), out)

	poll, warn := inclusionPollInterval, inclusionWarnAfter
	inclusionPollInterval, inclusionWarnAfter = 5*time.Millisecond, time.Nanosecond
	t.Cleanup(func() { inclusionPollInterval, inclusionWarnAfter = poll, warn })

	require.NoError(t, app.WaitForInclusion(context.Background(), wizard.Succeeded{Amount: 1, Hash: "0xfeed"}))
	require.Contains(t, out.String(), "taking longer than expected")
	require.Contains(t, out.String(), "included at height 12")
	backend.AssertNumberOfCalls(t, "GetTransaction", 4)
}
