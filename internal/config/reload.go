// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/metrics"
)

// ReloadFunc is called after a successful reload with the previous and the
// new configuration.
type ReloadFunc func(old, cur AppConfig)

// Holder keeps the current configuration and reloads it when the config
// file changes. Only settings read through a ReloadFunc change at runtime;
// everything else needs a restart.
type Holder struct {
	mu      sync.RWMutex
	current AppConfig
	loader  *Loader
	logger  zerolog.Logger

	listenersMu sync.Mutex
	listeners   []ReloadFunc

	debounce time.Duration
}

// NewHolder creates a holder seeded with initial.
func NewHolder(initial AppConfig, loader *Loader) *Holder {
	return &Holder{
		current:  initial,
		loader:   loader,
		logger:   xglog.WithComponent("config"),
		debounce: 500 * time.Millisecond,
	}
}

// Get returns the current configuration.
func (h *Holder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// OnReload registers fn for successful reloads.
func (h *Holder) OnReload(fn ReloadFunc) {
	h.listenersMu.Lock()
	h.listeners = append(h.listeners, fn)
	h.listenersMu.Unlock()
}

// Reload loads and validates the configuration again. On error the current
// configuration stays in place.
func (h *Holder) Reload() error {
	h.logger.Info().Str(xglog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	next, err := h.loader.Load()
	if err != nil {
		metrics.IncConfigReload(false)
		h.logger.Error().Err(err).
			Str(xglog.FieldEvent, "config.reload_failed").
			Msg("configuration reload rejected, keeping current settings")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	old := h.current
	h.current = next
	h.mu.Unlock()

	if fields := restartRequired(old, next); len(fields) > 0 {
		h.logger.Warn().
			Strs("fields", fields).
			Str(xglog.FieldEvent, "config.restart_required").
			Msg("changed settings take effect after restart")
	}

	h.listenersMu.Lock()
	listeners := append([]ReloadFunc(nil), h.listeners...)
	h.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(old, next)
	}

	metrics.IncConfigReload(true)
	h.logger.Info().Str(xglog.FieldEvent, "config.reload_success").Msg("configuration reloaded")
	return nil
}

// Watch reloads on writes to the config file until ctx is done. It watches
// the parent directory so editors that replace the file are noticed too.
// Without a config file it just waits for ctx.
func (h *Holder) Watch(ctx context.Context) error {
	path := h.loader.configPath
	if path == "" {
		<-ctx.Done()
		return nil
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}
	h.logger.Info().
		Str(xglog.FieldEvent, "config.watcher_started").
		Str("path", path).
		Msg("watching config file for changes")

	timer := time.NewTimer(h.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(h.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn().Err(err).Str(xglog.FieldEvent, "config.watcher_error").Msg("config watcher error")
		case <-timer.C:
			_ = h.Reload()
		}
	}
}

func restartRequired(old, cur AppConfig) []string {
	var fields []string
	check := func(name string, changed bool) {
		if changed {
			fields = append(fields, name)
		}
	}
	check("dataDir", old.DataDir != cur.DataDir)
	check("store.backend", old.Store.Backend != cur.Store.Backend)
	check("cache", old.Cache != cur.Cache)
	check("api.listenAddr", old.API.ListenAddr != cur.API.ListenAddr)
	check("api.rateLimit", old.API.RateLimit != cur.API.RateLimit || old.API.RateWindow != cur.API.RateWindow)
	check("metrics", old.Metrics != cur.Metrics)
	check("telemetry", old.Telemetry != cur.Telemetry)
	return fields
}
