// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/connect4/internal/game"
)

const (
	e = game.Empty
	r = game.Red
	y = game.Yellow
)

func TestScoreWindow(t *testing.T) {
	tests := []struct {
		name   string
		window [4]game.Piece
		me     game.Piece
		want   int
	}{
		{"four", [4]game.Piece{r, r, r, r}, r, ScoreFour},
		{"three open", [4]game.Piece{r, e, r, r}, r, ScoreThreeOpen},
		{"two open", [4]game.Piece{e, r, r, e}, r, ScoreTwoOpen},
		{"opponent three open", [4]game.Piece{y, y, e, y}, r, ScoreBlockThreat},
		{"three blocked", [4]game.Piece{r, r, r, y}, r, 0},
		{"mixed", [4]game.Piece{r, y, r, y}, r, 0},
		{"single", [4]game.Piece{e, e, r, e}, r, 0},
		{"empty", [4]game.Piece{e, e, e, e}, r, 0},
		{"yellow perspective", [4]game.Piece{y, y, y, e}, y, ScoreThreeOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreWindow(tt.window, tt.me))
		})
	}
}

func TestScorePosition(t *testing.T) {
	assert.Equal(t, 0, ScorePosition(game.NewBoard(), r))

	b, err := game.FromMoves(3)
	require.NoError(t, err)
	assert.Equal(t, CenterBonus, ScorePosition(b, r), "lone center piece only earns the center bonus")
	assert.Equal(t, 0, ScorePosition(b, y))

	// two red pieces side by side on the bottom row form open pairs
	b, err = game.FromMoves(2, 6, 3)
	require.NoError(t, err)
	assert.Greater(t, ScorePosition(b, r), CenterBonus)
}

func TestScorePosition_Symmetric(t *testing.T) {
	b, err := game.FromMoves(0, 1, 1, 2, 5, 3)
	require.NoError(t, err)
	for _, p := range []game.Piece{r, y} {
		assert.Equal(t, ScorePosition(b, p), ScorePosition(b.Mirror(), p))
	}
}
