// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chains"
	"github.com/luxfi/launchpad/pkg/config"
	"github.com/luxfi/launchpad/pkg/constants"
	"github.com/luxfi/launchpad/pkg/fee"
	"github.com/luxfi/launchpad/pkg/poller"
	"github.com/luxfi/launchpad/pkg/prompts"
	"github.com/luxfi/launchpad/pkg/recorder"
	"github.com/luxfi/launchpad/pkg/sample"
	"github.com/luxfi/launchpad/pkg/staking"
	"github.com/luxfi/launchpad/pkg/submit"
	"github.com/luxfi/launchpad/pkg/wallet"
	"github.com/luxfi/launchpad/pkg/wizard"
	luxlog "github.com/luxfi/log"
)

// SampleChains is how many launches the offline backend serves.
const (
	SampleChains = 30
	SampleSeed   = 1
)

// Launchpad is the application handle every command receives. Expensive
// collaborators (keystore, backend, history database) are built on first
// use so commands that never touch them pay nothing.
type Launchpad struct {
	Log     luxlog.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter

	useSample bool
	// KeystoreOptions are applied after the configured ones.
	KeystoreOptions []wallet.Option

	mu       sync.Mutex
	keystore *wallet.Keystore
	backend  api.Backend
	recorder recorder.Recorder
	book     *staking.Book
}

func New() *Launchpad {
	return &Launchpad{}
}

func (app *Launchpad) Setup(baseDir string, log luxlog.Logger, conf *config.Config, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
}

// UseSampleBackend switches the backend to the in-memory sample data set.
func (app *Launchpad) UseSampleBackend(v bool) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.useSample = v
	app.backend = nil
	app.book = nil
}

func (app *Launchpad) GetBaseDir() string {
	return app.baseDir
}

func (app *Launchpad) GetKeyDir() string {
	return filepath.Join(app.baseDir, constants.KeyDir)
}

func (app *Launchpad) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Launchpad) GetDataDir() string {
	return filepath.Join(app.baseDir, constants.DataDir)
}

func (app *Launchpad) GetHistoryDBPath() string {
	if app.Conf != nil {
		if p := app.Conf.HistoryDB(); p != "" {
			return p
		}
	}
	return filepath.Join(app.GetDataDir(), constants.HistoryDBFileName)
}

// Keystore opens the encrypted key directory.
func (app *Launchpad) Keystore() *wallet.Keystore {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.keystore == nil {
		opts := []wallet.Option{wallet.WithLogger(app.Log)}
		if app.Conf != nil {
			opts = append(opts, wallet.WithSessionTimeout(app.Conf.KeySessionTimeout()))
		}
		opts = append(opts, app.KeystoreOptions...)
		app.keystore = wallet.New(app.GetKeyDir(), opts...)
	}
	return app.keystore
}

// Backend returns the REST client for the configured api-url, or the
// sample backend in offline mode.
func (app *Launchpad) Backend() api.Backend {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.backend == nil {
		if app.useSample || app.Conf == nil {
			app.backend = sample.NewBackend(SampleChains, SampleSeed)
		} else {
			app.backend = api.NewClient(app.Conf.APIURL(), app.Conf.APITimeout(), app.Log)
		}
	}
	return app.backend
}

// SetBackend replaces the backend, for tests.
func (app *Launchpad) SetBackend(b api.Backend) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	app.book = nil
}

// Recorder opens the history database. History is best effort: if the
// database cannot be opened the failure is logged and nothing is recorded.
func (app *Launchpad) Recorder() recorder.Recorder {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.recorder != nil {
		return app.recorder
	}
	path := app.GetHistoryDBPath()
	if err := os.MkdirAll(filepath.Dir(path), constants.DefaultPerms755); err != nil {
		app.Log.Warn("failed to create history directory", "path", path, "error", err)
		app.recorder = recorder.NewNoopRecorder()
		return app.recorder
	}
	rec, err := recorder.NewSQLiteRecorder(path, app.Log)
	if err != nil {
		app.Log.Warn("failed to open history database", "path", path, "error", err)
		app.recorder = recorder.NewNoopRecorder()
		return app.recorder
	}
	app.recorder = rec
	return app.recorder
}

// SetRecorder replaces the history store, for tests.
func (app *Launchpad) SetRecorder(r recorder.Recorder) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.recorder = r
}

func (app *Launchpad) Submitter() *submit.Submitter {
	return submit.NewSubmitter(app.Backend(), app.Recorder(), app.Log)
}

func (app *Launchpad) CommitteeResolver() *chains.CommitteeResolver {
	concurrency := constants.DefaultCommitteeFetchConcurrency
	if app.Conf != nil {
		concurrency = app.Conf.CommitteeFetchConcurrency()
	}
	return chains.NewCommitteeResolver(app.Backend(), concurrency, app.Log)
}

// PollerConfig reads the refresh settings.
func (app *Launchpad) PollerConfig() poller.Config {
	if app.Conf == nil {
		return poller.DefaultConfig()
	}
	return poller.Config{
		Interval:  app.Conf.PollInterval(),
		Window:    app.Conf.PollWindow(),
		BatchSize: app.Conf.PollBatchSize(),
	}
}

// NewWizard wires a transaction wizard for op against the app's backend,
// keystore and history.
func (app *Launchpad) NewWizard(op wizard.Operation) (*wizard.Controller, error) {
	backend := app.Backend()
	deps := wizard.Deps{
		Fees:      fee.NewEstimator(backend),
		Heights:   backend,
		Keys:      app.Keystore(),
		Submitter: app.Submitter(),
		Log:       app.Log,
	}
	if app.Conf != nil {
		deps.NetworkID = app.Conf.NetworkID()
		deps.FeeDebounce = app.Conf.FeeDebounce()
	}
	return wizard.New(op, deps)
}

// Close locks every key and closes the history database.
func (app *Launchpad) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.keystore != nil {
		_ = app.keystore.Close()
	}
	if app.recorder != nil {
		return app.recorder.Close()
	}
	return nil
}
