// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"context"
	"time"

	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/metrics"
)

// Decision is a move chosen by an AIPlayer.
type Decision struct {
	Column  int           `json:"column"`
	Score   int           `json:"score"`
	Blunder bool          `json:"blunder"`
	Nodes   int64         `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
}

// AIPlayer plays at a fixed difficulty.
type AIPlayer struct {
	Engine     *Engine
	Difficulty Difficulty
}

// NewAIPlayer binds an engine to a difficulty.
func NewAIPlayer(e *Engine, d Difficulty) *AIPlayer {
	return &AIPlayer{Engine: e, Difficulty: d}
}

// Move picks a column for me. With probability Difficulty.Blunder the move
// is a uniformly random legal column and no search happens.
func (p *AIPlayer) Move(ctx context.Context, b game.Board, me game.Piece) (Decision, error) {
	valid := b.ValidColumns()
	if len(valid) == 0 || b.IsTerminal() {
		return Decision{}, ErrNoMoves
	}

	if p.Difficulty.Blunder > 0 && p.Engine.Float64() < p.Difficulty.Blunder {
		col := valid[p.Engine.Intn(len(valid))]
		metrics.IncMove(me.String(), "blunder")
		return Decision{Column: col, Blunder: true}, nil
	}

	res, err := p.Engine.BestMove(ctx, b, me, p.Difficulty.Depth)
	if err != nil {
		return Decision{}, err
	}
	metrics.IncMove(me.String(), "search")
	return Decision{
		Column:  res.Column,
		Score:   res.Score,
		Nodes:   res.Nodes,
		Elapsed: res.Elapsed,
	}, nil
}
