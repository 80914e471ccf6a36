// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import "github.com/ManuGH/connect4/internal/game"

// Heuristic weights for a window of four cells.
const (
	ScoreFour        = 100
	ScoreThreeOpen   = 5
	ScoreTwoOpen     = 2
	ScoreBlockThreat = -4
	CenterBonus      = 3

	// WinScore is the value of a decided position, independent of how far
	// from the root it was found.
	WinScore = 100_000
)

// ScoreWindow scores four consecutive cells from me's perspective.
func ScoreWindow(window [game.ConnectN]game.Piece, me game.Piece) int {
	opp := me.Opponent()
	var mine, empty, theirs int
	for _, p := range window {
		switch p {
		case me:
			mine++
		case game.Empty:
			empty++
		case opp:
			theirs++
		}
	}

	switch {
	case mine == 4:
		return ScoreFour
	case mine == 3 && empty == 1:
		return ScoreThreeOpen
	case mine == 2 && empty == 2:
		return ScoreTwoOpen
	case theirs == 3 && empty == 1:
		return ScoreBlockThreat
	}
	return 0
}

// ScorePosition evaluates the whole board for me: a bonus per piece in the
// center column plus every horizontal, vertical and diagonal window.
func ScorePosition(b game.Board, me game.Piece) int {
	score := 0

	center := b.Column(game.Cols / 2)
	for _, p := range center {
		if p == me {
			score += CenterBonus
		}
	}

	var w [game.ConnectN]game.Piece
	window := func(r, c, dr, dc int) int {
		for i := 0; i < game.ConnectN; i++ {
			w[i] = b.At(r+i*dr, c+i*dc)
		}
		return ScoreWindow(w, me)
	}

	// horizontal
	for r := 0; r < game.Rows; r++ {
		for c := 0; c <= game.Cols-game.ConnectN; c++ {
			score += window(r, c, 0, 1)
		}
	}
	// vertical
	for c := 0; c < game.Cols; c++ {
		for r := 0; r <= game.Rows-game.ConnectN; r++ {
			score += window(r, c, 1, 0)
		}
	}
	// diagonal down-right
	for r := 0; r <= game.Rows-game.ConnectN; r++ {
		for c := 0; c <= game.Cols-game.ConnectN; c++ {
			score += window(r, c, 1, 1)
		}
	}
	// diagonal down-left
	for r := 0; r <= game.Rows-game.ConnectN; r++ {
		for c := game.ConnectN - 1; c < game.Cols; c++ {
			score += window(r, c, 1, -1)
		}
	}

	return score
}
