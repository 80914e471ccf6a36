// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"context"

	"github.com/ManuGH/connect4/internal/game"
)

// Infinity bounds the alpha-beta window.
const Infinity = 1 << 30

// NoColumn is returned for leaf nodes.
const NoColumn = -1

// checkEvery controls how often a search polls its context.
const checkEvery = 2048

type searcher struct {
	ctx   context.Context
	me    game.Piece
	nodes int64
}

// Minimax runs a depth-limited alpha-beta search from me's point of view and
// returns the best column for the side to move (me when maximizing) together
// with the minimax score. Columns are tried left to right and only a strictly
// better score replaces the current best, so ties go to the leftmost column.
// Leaf and terminal nodes return NoColumn.
func Minimax(b game.Board, depth, alpha, beta int, maximizing bool, me game.Piece) (int, int) {
	s := &searcher{ctx: context.Background(), me: me}
	col, score, _ := s.search(b, depth, alpha, beta, maximizing)
	return col, score
}

func (s *searcher) search(b game.Board, depth, alpha, beta int, maximizing bool) (int, int, error) {
	s.nodes++
	if s.nodes%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return NoColumn, 0, err
		}
	}

	opp := s.me.Opponent()
	switch {
	case b.HasWon(s.me):
		return NoColumn, WinScore, nil
	case b.HasWon(opp):
		return NoColumn, -WinScore, nil
	case b.IsFull():
		return NoColumn, 0, nil
	case depth == 0:
		return NoColumn, ScorePosition(b, s.me), nil
	}

	piece := opp
	value := Infinity
	if maximizing {
		piece = s.me
		value = -Infinity
	}
	best := NoColumn

	for col := range game.Cols {
		if !b.CanDrop(col) {
			continue
		}
		child, err := b.Drop(col, piece)
		if err != nil {
			return NoColumn, 0, err
		}
		_, score, err := s.search(child, depth-1, alpha, beta, !maximizing)
		if err != nil {
			return NoColumn, 0, err
		}

		if maximizing {
			if score > value || best == NoColumn {
				value, best = score, col
			}
			alpha = max(alpha, value)
		} else {
			if score < value || best == NoColumn {
				value, best = score, col
			}
			beta = min(beta, value)
		}
		if alpha >= beta {
			break // prune
		}
	}

	return best, value, nil
}
