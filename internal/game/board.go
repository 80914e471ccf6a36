// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Rows = 6
	Cols = 7

	// ConnectN is the run length needed to win.
	ConnectN = 4
)

// Piece is the content of a single cell.
type Piece uint8

const (
	Empty  Piece = 0
	Red    Piece = 1 // moves first; the human in play mode
	Yellow Piece = 2 // the AI in play mode
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
	ErrInvalidPiece     = errors.New("invalid piece")
	ErrInvalidBoard     = errors.New("invalid board encoding")
)

// Opponent returns the other player. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return Empty
	}
}

// Valid reports whether p is a playable piece.
func (p Piece) Valid() bool {
	return p == Red || p == Yellow
}

func (p Piece) String() string {
	switch p {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "empty"
	}
}

// MarshalText encodes the piece by name.
func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (p *Piece) UnmarshalText(text []byte) error {
	if string(text) == "empty" {
		*p = Empty
		return nil
	}
	v, err := ParsePiece(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePiece accepts "red"/"yellow" (case-insensitive) or the single letter codes.
func ParsePiece(s string) (Piece, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, nil
	case "yellow", "y":
		return Yellow, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidPiece, s)
}

// Outcome describes the state of a board from the rules' point of view.
type Outcome uint8

const (
	InProgress Outcome = iota
	RedWins
	YellowWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case RedWins:
		return "red_wins"
	case YellowWins:
		return "yellow_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{InProgress, RedWins, YellowWins, Draw} {
		if o.String() == s {
			return o, nil
		}
	}
	return InProgress, fmt.Errorf("unknown outcome %q", s)
}

// Finished reports whether the outcome ends the game.
func (o Outcome) Finished() bool {
	return o != InProgress
}

// WinnerOutcome maps a winning piece to its outcome.
func WinnerOutcome(p Piece) Outcome {
	switch p {
	case Red:
		return RedWins
	case Yellow:
		return YellowWins
	}
	return InProgress
}

// Board is a 6x7 grid. The zero value is an empty board.
type Board struct {
	cells [Rows][Cols]Piece
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// At returns the piece at row, col. Out of range coordinates read as Empty.
func (b Board) At(row, col int) Piece {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return Empty
	}
	return b.cells[row][col]
}

// ValidColumns returns the columns that still have space, in ascending order.
func (b Board) ValidColumns() []int {
	cols := make([]int, 0, Cols)
	for c := 0; c < Cols; c++ {
		if b.cells[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// CanDrop reports whether col is on the board and not full.
func (b Board) CanDrop(col int) bool {
	return col >= 0 && col < Cols && b.cells[0][col] == Empty
}

// Drop returns a copy of the board with piece placed in the lowest empty row of col.
func (b Board) Drop(col int, piece Piece) (Board, error) {
	if !piece.Valid() {
		return b, ErrInvalidPiece
	}
	if col < 0 || col >= Cols {
		return b, fmt.Errorf("%w: %d", ErrColumnOutOfRange, col)
	}
	for r := Rows - 1; r >= 0; r-- {
		if b.cells[r][col] == Empty {
			b.cells[r][col] = piece
			return b, nil
		}
	}
	return b, fmt.Errorf("%w: %d", ErrColumnFull, col)
}

// HasWon reports whether piece has ConnectN in a row in any direction.
func (b Board) HasWon(piece Piece) bool {
	if !piece.Valid() {
		return false
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.cells[r][c] != piece {
				continue
			}
			if b.run(r, c, 0, 1, piece) || // horizontal
				b.run(r, c, 1, 0, piece) || // vertical
				b.run(r, c, 1, 1, piece) || // diagonal down-right
				b.run(r, c, 1, -1, piece) { // diagonal down-left
				return true
			}
		}
	}
	return false
}

func (b Board) run(r, c, dr, dc int, piece Piece) bool {
	for i := 0; i < ConnectN; i++ {
		rr, cc := r+i*dr, c+i*dc
		if rr < 0 || rr >= Rows || cc < 0 || cc >= Cols || b.cells[rr][cc] != piece {
			return false
		}
	}
	return true
}

// IsFull reports whether no column accepts another piece.
func (b Board) IsFull() bool {
	for c := 0; c < Cols; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the game on this board is over.
func (b Board) IsTerminal() bool {
	return b.HasWon(Red) || b.HasWon(Yellow) || b.IsFull()
}

// Outcome evaluates the board. A board where both sides have a line is not
// reachable through legal play; Red is reported first in that case.
func (b Board) Outcome() Outcome {
	switch {
	case b.HasWon(Red):
		return RedWins
	case b.HasWon(Yellow):
		return YellowWins
	case b.IsFull():
		return Draw
	default:
		return InProgress
	}
}

// Count returns how many cells hold piece.
func (b Board) Count(piece Piece) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.cells[r][c] == piece {
				n++
			}
		}
	}
	return n
}

// Moves returns the number of pieces on the board.
func (b Board) Moves() int {
	return b.Count(Red) + b.Count(Yellow)
}

// Turn returns the side to move assuming Red opened the game.
func (b Board) Turn() Piece {
	if b.Count(Red) <= b.Count(Yellow) {
		return Red
	}
	return Yellow
}

// Column returns the cells of col from top to bottom.
func (b Board) Column(col int) [Rows]Piece {
	var out [Rows]Piece
	for r := 0; r < Rows; r++ {
		out[r] = b.cells[r][col]
	}
	return out
}

// Mirror returns the board reflected around the center column.
func (b Board) Mirror() Board {
	var m Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			m.cells[r][Cols-1-c] = b.cells[r][c]
		}
	}
	return m
}

// Validate checks gravity consistency and that piece counts are reachable
// with Red moving first.
func (b Board) Validate() error {
	for c := 0; c < Cols; c++ {
		seenPiece := false
		for r := 0; r < Rows; r++ {
			if b.cells[r][c] != Empty {
				seenPiece = true
			} else if seenPiece {
				return fmt.Errorf("%w: floating piece in column %d", ErrInvalidBoard, c+1)
			}
		}
	}
	red, yellow := b.Count(Red), b.Count(Yellow)
	if red != yellow && red != yellow+1 {
		return fmt.Errorf("%w: %d red vs %d yellow pieces", ErrInvalidBoard, red, yellow)
	}
	return nil
}
