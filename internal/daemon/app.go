// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Worker is a background loop owned by the App. It must return once ctx is done.
type Worker struct {
	Name string
	Run  func(ctx context.Context) error
}

// App owns the long-lived background workers and delegates server
// management to Manager.
type App struct {
	logger  zerolog.Logger
	manager Manager
	workers []Worker
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, workers ...Worker) *App {
	return &App{
		logger:  logger,
		manager: manager,
		workers: workers,
	}
}

// Run starts the workers and the manager and blocks until ctx is cancelled
// or one of them fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, w := range a.workers {
		g.Go(func() error {
			a.logger.Debug().Str("worker", w.Name).Msg("worker started")
			err := w.Run(ctx)
			if err != nil {
				a.logger.Error().
					Err(err).
					Str("event", "worker.failed").
					Str("worker", w.Name).
					Msg("worker failed")
			}
			return err
		})
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}
