// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned for keys outside the difficulty table.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty couples a search depth with a blunder rate: the probability
// that the AI plays a random legal move instead of searching.
type Difficulty struct {
	Key     string  `json:"key" yaml:"key"`
	Name    string  `json:"name" yaml:"name"`
	Icon    string  `json:"icon" yaml:"icon"`
	Depth   int     `json:"depth" yaml:"depth"`
	Blunder float64 `json:"blunder" yaml:"blunder"`
}

// Label is the menu text, e.g. "🟢 Rookie".
func (d Difficulty) Label() string {
	if d.Icon == "" {
		return d.Name
	}
	return d.Icon + " " + d.Name
}

var difficulties = []Difficulty{
	{Key: "1", Name: "Rookie", Icon: "🟢", Depth: 2, Blunder: 0.25},
	{Key: "2", Name: "Tactician", Icon: "🟡", Depth: 4, Blunder: 0.08},
	{Key: "3", Name: "Grandmaster", Icon: "🔴", Depth: 6, Blunder: 0},
}

// Difficulties returns the difficulty table in menu order.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficulties))
	copy(out, difficulties)
	return out
}

// LookupDifficulty resolves a menu key ("1".."3") or a case-insensitive name.
func LookupDifficulty(key string) (Difficulty, error) {
	k := strings.TrimSpace(key)
	for _, d := range difficulties {
		if d.Key == k || strings.EqualFold(d.Name, k) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, key)
}
