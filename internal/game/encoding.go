// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package game

import (
	"fmt"
	"strings"
)

const (
	codeEmpty  = '.'
	codeRed    = 'R'
	codeYellow = 'Y'
)

// String encodes the board as Rows*Cols characters, top row first, using
// '.', 'R' and 'Y'. The encoding is the API wire format and the cache key.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Rows * Cols)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			switch b.cells[r][c] {
			case Red:
				sb.WriteByte(codeRed)
			case Yellow:
				sb.WriteByte(codeYellow)
			default:
				sb.WriteByte(codeEmpty)
			}
		}
	}
	return sb.String()
}

// Rows returns the encoded rows, top first.
func (b Board) Rows() []string {
	s := b.String()
	out := make([]string, Rows)
	for r := 0; r < Rows; r++ {
		out[r] = s[r*Cols : (r+1)*Cols]
	}
	return out
}

// ParseBoard decodes the String encoding. Whitespace and '/' row separators
// are ignored, and lower case letters are accepted. The decoded board must
// pass Validate.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, ch := range s {
		switch ch {
		case '/', ' ', '\n', '\t', '\r':
			continue
		}
		if i >= Rows*Cols {
			return Board{}, fmt.Errorf("%w: more than %d cells", ErrInvalidBoard, Rows*Cols)
		}
		var p Piece
		switch ch {
		case codeEmpty, '0':
			p = Empty
		case codeRed, 'r', '1':
			p = Red
		case codeYellow, 'y', '2':
			p = Yellow
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q at cell %d", ErrInvalidBoard, ch, i)
		}
		b.cells[i/Cols][i%Cols] = p
		i++
	}
	if i != Rows*Cols {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, i, Rows*Cols)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// FromMoves replays 0-based columns starting with Red.
func FromMoves(cols ...int) (Board, error) {
	b := NewBoard()
	p := Red
	for i, c := range cols {
		next, err := b.Drop(c, p)
		if err != nil {
			return Board{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		b = next
		p = p.Opponent()
	}
	return b, nil
}
