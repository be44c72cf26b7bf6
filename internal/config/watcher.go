package config

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/startdash/internal/logging"
)

// reloadDelay coalesces the burst of events an editor produces for one save.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the configuration whenever the file changes. An invalid edit
// is logged to ctx's logger and the previous configuration stays active.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	log := logging.FromContext(ctx)

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.pending != nil {
			m.pending.Stop()
		}
		m.pending = time.AfterFunc(reloadDelay, func() {
			if err := m.Reload(); err != nil {
				log.Warn().Err(err).Msg("config reload rejected, keeping previous values")
				return
			}
			log.Info().Msg("config reloaded")
		})
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// OnConfigChange registers fn to run after every successful reload.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Reload re-reads the file and, when it is valid, notifies every callback.
// Callbacks run on the caller's goroutine without the manager lock held.
func (m *Manager) Reload() error {
	cfg, callbacks, err := m.swap()
	if err != nil {
		return err
	}
	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

func (m *Manager) swap() (*Config, []func(*Config), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := m.buildConfig()
	if err != nil {
		return nil, nil, err
	}
	m.config = cfg
	return cfg, slices.Clone(m.callbacks), nil
}
