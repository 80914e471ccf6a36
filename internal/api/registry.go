// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/connect4/internal/history"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/match"
	"github.com/ManuGH/connect4/internal/metrics"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many active games")
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// IdleTTL evicts games untouched for this long. 0 disables expiry.
	IdleTTL time.Duration
	// MaxGames caps concurrent games. 0 means unlimited.
	MaxGames int
	// Store receives finished games. Nil disables persistence.
	Store history.Store
	Now   func() time.Time
}

type entry struct {
	mu       sync.Mutex
	session  *match.Session
	lastSeen time.Time
	saved    bool
}

// Registry holds live games. Each game is guarded by its own lock so
// concurrent requests for different games never wait on each other.
type Registry struct {
	cfg    RegistryConfig
	logger zerolog.Logger

	mu    sync.Mutex
	games map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Registry{
		cfg:    cfg,
		logger: xglog.WithComponent("registry"),
		games:  make(map[string]*entry),
	}
}

// Add registers a new session.
func (r *Registry) Add(s *match.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg.MaxGames > 0 && len(r.games) >= r.cfg.MaxGames {
		return ErrTooManyGames
	}
	r.games[s.ID] = &entry{session: s, lastSeen: r.cfg.Now()}
	metrics.SetActiveGames(len(r.games))
	return nil
}

// Len returns the number of live games.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// With runs fn with exclusive access to the game. A game that is finished
// once fn returns is saved to the store exactly once.
func (r *Registry) With(ctx context.Context, id string, fn func(*match.Session) error) error {
	r.mu.Lock()
	e, ok := r.games[id]
	r.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = r.cfg.Now()
	err := fn(e.session)
	if e.session.Finished() && !e.saved {
		e.saved = r.persist(ctx, e.session)
	}
	return err
}

func (r *Registry) persist(ctx context.Context, s *match.Session) bool {
	if r.cfg.Store == nil {
		return true
	}
	if err := r.cfg.Store.Save(context.WithoutCancel(ctx), s.Record()); err != nil {
		r.logger.Error().Err(err).
			Str(xglog.FieldEvent, "registry.persist_failed").
			Str(xglog.FieldMatchID, s.ID).
			Msg("failed to save finished game")
		return false
	}
	r.logger.Info().
		Str(xglog.FieldEvent, "registry.persisted").
		Str(xglog.FieldMatchID, s.ID).
		Str(xglog.FieldOutcome, s.Outcome().String()).
		Msg("finished game saved")
	return true
}

// IDs returns the live game IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sweep removes games idle for longer than IdleTTL and returns how many
// were removed. Games currently in use are skipped.
func (r *Registry) Sweep() int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.cfg.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.games {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(r.games, id)
			removed++
		}
		e.mu.Unlock()
	}
	metrics.SetActiveGames(len(r.games))
	if removed > 0 {
		metrics.IncGamesExpired(removed)
		r.logger.Debug().
			Str(xglog.FieldEvent, "registry.sweep").
			Int("removed", removed).
			Int("active", len(r.games)).
			Msg("expired idle games")
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
