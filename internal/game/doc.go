// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package game implements the Connect 4 board and its rules.
//
// A Board is a value: Drop returns a new board and never mutates its
// receiver, so callers (the search engine in particular) can branch freely.
// Row 0 is the top row; pieces fall towards row Rows-1.
package game
