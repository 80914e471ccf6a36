// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package history

import (
	"context"
	"errors"

	"github.com/ManuGH/connect4/internal/metrics"
)

// Checker is implemented by stores that can verify their own health.
type Checker interface {
	Check(ctx context.Context) error
}

type instrumented struct {
	Store
}

// Instrument wraps s so every operation is counted in the store metrics.
// Unknown IDs are not counted as errors.
func Instrument(s Store) Store {
	if s == nil {
		return nil
	}
	return &instrumented{Store: s}
}

func (i *instrumented) record(op string, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStoreOp(i.Backend(), op, err)
}

func (i *instrumented) Save(ctx context.Context, rec Record) error {
	err := i.Store.Save(ctx, rec)
	i.record("save", err)
	return err
}

func (i *instrumented) Get(ctx context.Context, id string) (Record, error) {
	rec, err := i.Store.Get(ctx, id)
	i.record("get", err)
	return rec, err
}

func (i *instrumented) List(ctx context.Context, limit int) ([]Record, error) {
	recs, err := i.Store.List(ctx, limit)
	i.record("list", err)
	return recs, err
}

func (i *instrumented) Stats(ctx context.Context) (Stats, error) {
	st, err := i.Store.Stats(ctx)
	i.record("stats", err)
	return st, err
}

// Check delegates to the wrapped store when it supports health checks.
func (i *instrumented) Check(ctx context.Context) error {
	if c, ok := i.Store.(Checker); ok {
		return c.Check(ctx)
	}
	return nil
}
