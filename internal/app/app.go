// Package app wires the application's dependencies: the state store, the
// single-instance lock, and the file logger.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"tikkit/internal/config"
	"tikkit/internal/store"
)

// App holds the application's dependencies for the lifetime of the process.
type App struct {
	Store   *store.Store
	Logger  *log.Logger
	DataDir string

	lockFile *flock.Flock
	logOut   io.WriteCloser
}

// New creates a new application instance. Persistence is single-client,
// last-write-wins, so an exclusive lock rejects a second running instance.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{DataDir: cfg.DataDir}
	a.Logger = a.openLogger(cfg)

	if err := a.acquireLock(); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	a.Store = st

	a.Logger.Debug("app started", "data_dir", cfg.DataDir, "db", cfg.DBPath, "session", st.Session())
	return a, nil
}

// openLogger sets up a file logger. Stdout belongs to the TUI, so logs go to
// a file in the data directory; if that fails, logging is discarded rather
// than corrupting the screen.
func (a *App) openLogger(cfg *config.Config) *log.Logger {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	path := filepath.Join(cfg.DataDir, "tikkit.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.NewWithOptions(io.Discard, log.Options{Level: level})
	}
	a.logOut = f

	return log.NewWithOptions(f, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "tikkit",
	})
}

// acquireLock acquires an exclusive file lock to prevent multiple instances.
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "tikkit.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of tikkit is already running")
	}
	return nil
}

// releaseLock releases the file lock.
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources.
func (a *App) Close() error {
	var errs []error

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	a.releaseLock()

	if a.logOut != nil {
		a.logOut.Close()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
