// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package engine implements the Connect 4 opponent: a window heuristic,
// depth-limited minimax with alpha-beta pruning, difficulty levels and the
// AI player built on top of them.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ManuGH/connect4/internal/cache"
	"github.com/ManuGH/connect4/internal/game"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/metrics"
	"github.com/ManuGH/connect4/internal/telemetry"
)

// MaxDepth is the deepest search the engine accepts.
const MaxDepth = 10

// DefaultMaxSearchTime is used when Config.MaxSearchTime is zero.
const DefaultMaxSearchTime = 2 * time.Minute

var (
	ErrNoMoves      = errors.New("no legal moves")
	ErrInvalidDepth = errors.New("invalid search depth")
)

const tracerName = "github.com/ManuGH/connect4/internal/engine"

// Config configures an Engine. The zero value is usable.
type Config struct {
	// Cache stores finished analyses. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	// MaxWorkers bounds the root goroutines per search. 0 means GOMAXPROCS.
	MaxWorkers int
	// MaxSearchTime bounds a single shared search, independent of the
	// callers waiting on it. 0 means DefaultMaxSearchTime.
	MaxSearchTime time.Duration
	// Seed fixes the random source used for blunders and taunts.
	// 0 picks a random seed.
	Seed   uint64
	Logger *zerolog.Logger
}

// ColumnScore is the searched value of one root move.
type ColumnScore struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// Result is the outcome of a best-move search. Column is 0-based.
type Result struct {
	Column  int           `json:"column"`
	Score   int           `json:"score"`
	Depth   int           `json:"depth"`
	Nodes   int64         `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
	Scores  []ColumnScore `json:"scores"`
	Cached  bool          `json:"-"`
}

// Engine searches positions. It is safe for concurrent use.
type Engine struct {
	cache         cache.Cache
	cacheTTL      time.Duration
	maxWorkers    int
	maxSearchTime time.Duration
	logger        zerolog.Logger
	group      singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates an Engine.
func New(cfg Config) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxTime := cfg.MaxSearchTime
	if maxTime <= 0 {
		maxTime = DefaultMaxSearchTime
	}
	logger := xglog.WithComponent("engine")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Engine{
		cache:         cfg.Cache,
		cacheTTL:      cfg.CacheTTL,
		maxWorkers:    workers,
		maxSearchTime: maxTime,
		logger:        logger,
		rnd:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Intn returns a pseudo random int in [0, n) from the engine's source.
func (e *Engine) Intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.IntN(n)
}

// Float64 returns a pseudo random float in [0, 1) from the engine's source.
func (e *Engine) Float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.Float64()
}

func cacheKey(b game.Board, mover, perspective game.Piece, depth int) string {
	return fmt.Sprintf("analysis:v2:%s:%s:%s:%d", b.String(), mover, perspective, depth)
}

// BestMove searches depth plies ahead for the strongest move for me.
// Root moves are searched in parallel; equal best scores go to the leftmost
// column, so the result does not depend on the seed.
func (e *Engine) BestMove(ctx context.Context, b game.Board, me game.Piece, depth int) (Result, error) {
	return e.BestMoveFrom(ctx, b, me, me, depth)
}

// BestMoveFrom picks a move for mover while the tree below each root move is
// evaluated from perspective's point of view. When the two differ, a root
// move scores the negated value perspective gets from the resulting
// position. Scores in the Result are always from mover's point of view.
//
// The shared search is detached from ctx: a caller that gives up stops
// waiting without failing other callers of the same position. The search
// itself is bounded by Config.MaxSearchTime.
func (e *Engine) BestMoveFrom(ctx context.Context, b game.Board, mover, perspective game.Piece, depth int) (Result, error) {
	if depth < 1 || depth > MaxDepth {
		return Result{}, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidDepth, depth, MaxDepth)
	}
	if !mover.Valid() || !perspective.Valid() {
		return Result{}, game.ErrInvalidPiece
	}
	if b.IsTerminal() {
		return Result{}, ErrNoMoves
	}
	if err := ctx.Err(); err != nil {
		metrics.IncSearchResult("canceled")
		return Result{}, err
	}

	key := cacheKey(b, mover, perspective, depth)
	if res, ok := e.lookup(ctx, key); ok {
		metrics.IncSearchResult("cached")
		return res, nil
	}

	ch := e.group.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.maxSearchTime)
		defer cancel()
		res, err := e.search(sctx, b, mover, perspective, depth)
		if err != nil {
			return Result{}, err
		}
		e.store(sctx, key, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		metrics.IncSearchResult("canceled")
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			if errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded) {
				metrics.IncSearchResult("canceled")
			} else {
				metrics.IncSearchResult("error")
			}
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

func (e *Engine) search(ctx context.Context, b game.Board, mover, perspective game.Piece, depth int) (Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "engine.search")
	defer span.End()
	span.SetAttributes(telemetry.SearchAttributes(b.String(), mover.String(), depth)...)

	start := time.Now()
	cols := b.ValidColumns()
	scores := make([]ColumnScore, len(cols))
	var nodes atomic.Int64

	// below the root the side to move is the opponent of mover
	maximizing := mover != perspective
	sign := 1
	if maximizing {
		sign = -1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxWorkers)
	for i, col := range cols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child, err := b.Drop(col, mover)
			if err != nil {
				return err
			}
			s := &searcher{ctx: gctx, me: perspective}
			_, score, err := s.search(child, depth-1, -Infinity, Infinity, maximizing)
			nodes.Add(s.nodes)
			if err != nil {
				return err
			}
			scores[i] = ColumnScore{Column: col, Score: sign * score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errType := "search_failed"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			errType = "search_canceled"
		}
		span.SetAttributes(telemetry.ErrorAttributes(err, errType)...)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	// cols ascend, so the first strict maximum is the leftmost best column
	col, best := NoColumn, -Infinity
	for _, cs := range scores {
		if cs.Score > best {
			col, best = cs.Column, cs.Score
		}
	}

	res := Result{
		Column:  col,
		Score:   best,
		Depth:   depth,
		Nodes:   nodes.Load() + 1,
		Elapsed: time.Since(start),
		Scores:  scores,
	}
	span.SetAttributes(telemetry.SearchResultAttributes(col, best, res.Nodes)...)
	metrics.ObserveSearch(depth, res.Elapsed, res.Nodes)

	e.logger.Debug().
		Str(xglog.FieldEvent, "engine.search").
		Str(xglog.FieldPiece, mover.String()).
		Int(xglog.FieldDepth, depth).
		Int(xglog.FieldColumn, col+1).
		Int(xglog.FieldScore, best).
		Int64(xglog.FieldNodes, res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	return res, nil
}

func (e *Engine) lookup(ctx context.Context, key string) (Result, bool) {
	if e.cache == nil {
		return Result{}, false
	}
	raw, ok := e.cache.Get(ctx, key)
	metrics.RecordCacheLookup(e.cache.Backend(), ok)
	if !ok {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached analysis")
		e.cache.Delete(ctx, key)
		return Result{}, false
	}
	res.Cached = true
	return res, true
}

func (e *Engine) store(ctx context.Context, key string, res Result) {
	if e.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode analysis")
		return
	}
	e.cache.Set(ctx, key, raw, e.cacheTTL)
}
