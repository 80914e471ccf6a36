// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package match

import (
	"context"
	"fmt"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/metrics"
)

// Default battle depths: a shallow Red against a deep Yellow.
const (
	DefaultRedDepth    = 2
	DefaultYellowDepth = 6
)

// Observer is called after every battle move with the resulting board.
type Observer func(mv Move, b game.Board)

// Battle plays an AI vs AI match to completion; zero depths use the defaults.
// Both sides evaluate positions from Yellow's point of view: Yellow
// maximizes, and Red picks the move that leaves Yellow the lowest value.
// Ties go to the leftmost column, so a battle is fully determined by the
// two depths.
// On cancellation the partial match is returned with the context error.
func Battle(ctx context.Context, e *engine.Engine, redDepth, yellowDepth int, observe Observer, opts ...Option) (*Match, error) {
	if redDepth == 0 {
		redDepth = DefaultRedDepth
	}
	if yellowDepth == 0 {
		yellowDepth = DefaultYellowDepth
	}
	for _, d := range []int{redDepth, yellowDepth} {
		if d < 1 || d > engine.MaxDepth {
			return nil, fmt.Errorf("%w: %d (must be 1..%d)", engine.ErrInvalidDepth, d, engine.MaxDepth)
		}
	}

	opts = append([]Option{WithLabels(
		fmt.Sprintf("Red AI (depth %d)", redDepth),
		fmt.Sprintf("Yellow AI (depth %d)", yellowDepth),
	)}, opts...)
	m := New(ModeAIVsAI, "", opts...)
	ctx, span := m.startSpan(ctx, "match.battle")
	var err error
	defer func() { m.endSpan(span, err) }()

	logger := xglog.WithComponent("battle").With().Str(xglog.FieldMatchID, m.ID).Logger()
	logger.Info().
		Str(xglog.FieldEvent, "battle.start").
		Int("red_depth", redDepth).
		Int("yellow_depth", yellowDepth).
		Msg("battle started")

	for !m.Finished() {
		piece := m.Turn()
		depth := redDepth
		if piece == game.Yellow {
			depth = yellowDepth
		}
		var res engine.Result
		res, err = e.BestMoveFrom(ctx, m.Board(), piece, game.Yellow, depth)
		if err != nil {
			return m, err
		}
		if _, err = m.Play(piece, res.Column); err != nil {
			return m, err
		}
		m.annotate(res.Score, false, res.Elapsed)
		metrics.IncMove(piece.String(), "search")

		if observe != nil {
			mv, _ := m.LastMove()
			observe(mv, m.Board())
		}
	}

	logger.Info().
		Str(xglog.FieldEvent, "battle.finish").
		Str(xglog.FieldOutcome, m.Outcome().String()).
		Int("moves", m.MoveCount()).
		Msg("battle finished")
	return m, nil
}
