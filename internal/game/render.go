// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package game

import (
	"strconv"
	"strings"
)

// Style selects the glyphs used by Render.
type Style struct {
	Empty  string
	Red    string
	Yellow string
	// Narrow glyphs occupy one terminal cell instead of two and get an extra space.
	Narrow bool
}

var (
	StyleEmoji = Style{Empty: "⚫", Red: "🔴", Yellow: "🟡"}
	StyleASCII = Style{Empty: ".", Red: "X", Yellow: "O", Narrow: true}
)

// Glyph returns the symbol for p.
func (s Style) Glyph(p Piece) string {
	switch p {
	case Red:
		return s.Red
	case Yellow:
		return s.Yellow
	default:
		return s.Empty
	}
}

// Render draws the board with 1-based column numbers above it. Rows are
// indented by two spaces and every cell is a space followed by its glyph.
func Render(b Board, s Style) string {
	rule := "  " + strings.Repeat("─", Cols*4-1) + "\n"

	nums := make([]string, Cols)
	for c := range nums {
		nums[c] = strconv.Itoa(c + 1)
	}

	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(strings.Join(nums, "   "))
	sb.WriteString("\n")
	sb.WriteString(rule)
	cells := make([]string, Cols)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			g := s.Glyph(b.cells[r][c])
			if s.Narrow {
				g += " "
			}
			cells[c] = " " + g
		}
		sb.WriteString("  ")
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	sb.WriteString(rule)
	return sb.String()
}
