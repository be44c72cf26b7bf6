// Package cli provides the startdash command line application.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/cli/styles"
	"github.com/bnema/startdash/internal/config"
	"github.com/bnema/startdash/internal/domain/build"
	"github.com/bnema/startdash/internal/infrastructure/persistence/memory"
	"github.com/bnema/startdash/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/startdash/internal/layout"
	"github.com/bnema/startdash/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Configs   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	db *sqlite.LazyDB

	// Context with logger
	ctx        context.Context
	logCleanup func()
	logPath    string
}

// NewApp loads the configuration and prepares a lazily opened layout
// database. An empty configFile selects the XDG location.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	// Subcommands print styled output; only problems reach stderr.
	level := logging.ParseLevel(cfg.Logging.Level)
	if level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	logger := logging.New(logging.Config{Level: level, Format: cfg.Logging.Format, TimeFormat: "15:04:05"})

	return &App{
		Config:  cfg,
		Configs: mgr,
		Theme:   styles.NewTheme(),
		db:      sqlite.NewLazyDB(cfg.Database.Path),
		ctx:     logging.WithContext(context.Background(), logger),
	}, nil
}

// StartFileLog sends the app logger to the rotating log file. The desk owns
// the terminal, so with file logging disabled nothing is logged at all.
func (a *App) StartFileLog() error {
	cfg := a.Config.Logging
	if !cfg.EnableFileLog {
		a.ctx = logging.WithContext(context.Background(), zerolog.Nop())
		return nil
	}

	rotator, err := logging.NewLogRotator(logging.RotatorOptions{
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAge,
		Compress:   cfg.Compress,
	})
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Level),
		Format:     cfg.Format,
		TimeFormat: time.RFC3339,
		Output:     rotator,
	})
	a.ctx = logging.WithContext(context.Background(), logger)
	a.logPath = rotator.Path()
	a.logCleanup = func() { _ = rotator.Close() }
	return nil
}

// LogPath returns the active log file, empty when logging to stderr or nowhere.
func (a *App) LogPath() string {
	return a.logPath
}

// KV returns the key-value store layouts persist to. Ephemeral stores live in
// memory and vanish on exit.
func (a *App) KV(ephemeral bool) port.KeyValueStore {
	if ephemeral {
		return memory.NewStore()
	}
	return sqlite.NewKVStore(a.db)
}

// Layout returns the persisted layout store.
func (a *App) Layout() *layout.Store {
	return layout.NewStore(a.KV(false))
}

// DatabasePath returns the layout database location.
func (a *App) DatabasePath() string {
	return a.db.Path()
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	return a.db.Close()
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
