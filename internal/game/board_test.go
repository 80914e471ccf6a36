// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoves(t *testing.T, cols ...int) Board {
	t.Helper()
	b, err := FromMoves(cols...)
	require.NoError(t, err)
	return b
}

func TestNewBoard_Empty(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.ValidColumns())
	assert.Equal(t, 0, b.Moves())
	assert.Equal(t, Red, b.Turn())
	assert.Equal(t, InProgress, b.Outcome())
	assert.False(t, b.IsTerminal())
}

func TestDrop_StacksFromBottom(t *testing.T) {
	b := NewBoard()
	b1, err := b.Drop(3, Red)
	require.NoError(t, err)
	b2, err := b1.Drop(3, Yellow)
	require.NoError(t, err)

	assert.Equal(t, Red, b2.At(Rows-1, 3))
	assert.Equal(t, Yellow, b2.At(Rows-2, 3))
	assert.Equal(t, Empty, b2.At(Rows-3, 3))

	// receiver untouched
	assert.Equal(t, 0, b.Moves())
	assert.Equal(t, 1, b1.Moves())
}

func TestDrop_Errors(t *testing.T) {
	b := NewBoard()

	_, err := b.Drop(-1, Red)
	assert.True(t, errors.Is(err, ErrColumnOutOfRange))

	_, err = b.Drop(Cols, Red)
	assert.True(t, errors.Is(err, ErrColumnOutOfRange))

	_, err = b.Drop(0, Empty)
	assert.True(t, errors.Is(err, ErrInvalidPiece))

	full := mustMoves(t, 0, 0, 0, 0, 0, 0)
	assert.False(t, full.CanDrop(0))
	assert.NotContains(t, full.ValidColumns(), 0)
	_, err = full.Drop(0, Red)
	assert.True(t, errors.Is(err, ErrColumnFull))
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  Piece
	}{
		{"horizontal", []int{0, 0, 1, 1, 2, 2, 3}, Red},
		{"vertical", []int{0, 1, 0, 1, 0, 1, 0}, Red},
		{"vertical yellow", []int{6, 0, 1, 0, 1, 0, 1, 0}, Yellow},
		// R:0 Y:1 R:1 Y:2 R:2 Y:3 R:2 Y:3 R:3 Y:6 R:3
		{"diagonal up-right", []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, Red},
		// mirror of the above
		{"diagonal up-left", []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 0, 3}, Red},
		{"none", []int{0, 1, 2, 3}, Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustMoves(t, tt.moves...)
			switch tt.want {
			case Empty:
				assert.False(t, b.HasWon(Red))
				assert.False(t, b.HasWon(Yellow))
				assert.Equal(t, InProgress, b.Outcome())
			default:
				assert.True(t, b.HasWon(tt.want))
				assert.False(t, b.HasWon(tt.want.Opponent()))
				assert.Equal(t, WinnerOutcome(tt.want), b.Outcome())
				assert.True(t, b.IsTerminal())
			}
		})
	}
}

func TestHasWon_ThreeIsNotEnough(t *testing.T) {
	b := mustMoves(t, 0, 0, 1, 1, 2)
	assert.False(t, b.HasWon(Red))
}

func TestDrawBoard(t *testing.T) {
	// Column pattern that fills the board without four in a row.
	b, err := ParseBoard(
		"RRYYRRY" +
			"YYRRYYR" +
			"RRYYRRY" +
			"YYRRYYR" +
			"RRYYRRY" +
			"YYRRYYR")
	require.NoError(t, err)
	assert.True(t, b.IsFull())
	assert.Empty(t, b.ValidColumns())
	assert.Equal(t, Draw, b.Outcome())
	assert.True(t, b.IsTerminal())
}

func TestTurn_Alternates(t *testing.T) {
	b := mustMoves(t, 3)
	assert.Equal(t, Yellow, b.Turn())
	b = mustMoves(t, 3, 3)
	assert.Equal(t, Red, b.Turn())
}

func TestMirror(t *testing.T) {
	b := mustMoves(t, 0, 1)
	m := b.Mirror()
	assert.Equal(t, Red, m.At(Rows-1, 6))
	assert.Equal(t, Yellow, m.At(Rows-1, 5))
	assert.Equal(t, b, m.Mirror())
}

func TestPieceHelpers(t *testing.T) {
	assert.Equal(t, Yellow, Red.Opponent())
	assert.Equal(t, Red, Yellow.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())

	p, err := ParsePiece("Yellow")
	require.NoError(t, err)
	assert.Equal(t, Yellow, p)
	_, err = ParsePiece("blue")
	assert.True(t, errors.Is(err, ErrInvalidPiece))
}

func TestPieceAndOutcomeText(t *testing.T) {
	b, err := Yellow.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "yellow", string(b))

	var p Piece
	require.NoError(t, p.UnmarshalText([]byte("red")))
	assert.Equal(t, Red, p)

	var o Outcome
	require.NoError(t, o.UnmarshalText([]byte("yellow_wins")))
	assert.Equal(t, YellowWins, o)
	assert.Error(t, o.UnmarshalText([]byte("nobody")))
}
