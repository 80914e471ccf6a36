// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/connect4/internal/game"
)

func TestLookupDifficulty(t *testing.T) {
	tests := []struct {
		key     string
		name    string
		depth   int
		blunder float64
	}{
		{"1", "Rookie", 2, 0.25},
		{"2", "Tactician", 4, 0.08},
		{"3", "Grandmaster", 6, 0},
		{" grandmaster ", "Grandmaster", 6, 0},
	}
	for _, tt := range tests {
		d, err := LookupDifficulty(tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.name, d.Name)
		assert.Equal(t, tt.depth, d.Depth)
		assert.InDelta(t, tt.blunder, d.Blunder, 1e-9)
	}

	_, err := LookupDifficulty("4")
	assert.True(t, errors.Is(err, ErrUnknownDifficulty))

	assert.Len(t, Difficulties(), 3)
	assert.Equal(t, "🟢 Rookie", Difficulties()[0].Label())
}

func TestAIPlayer_AlwaysBlunders(t *testing.T) {
	eng := New(Config{Seed: 11})
	p := NewAIPlayer(eng, Difficulty{Name: "Chaos", Depth: 4, Blunder: 1})
	b := board(t, 0, 0, 0, 0, 0, 0) // column 0 full

	for i := 0; i < 20; i++ {
		d, err := p.Move(context.Background(), b, game.Red)
		require.NoError(t, err)
		assert.True(t, d.Blunder)
		assert.NotEqual(t, 0, d.Column)
		assert.True(t, b.CanDrop(d.Column))
	}
}

func TestAIPlayer_NeverBlundersAtZero(t *testing.T) {
	eng := New(Config{Seed: 11})
	d, err := LookupDifficulty("3")
	require.NoError(t, err)
	p := NewAIPlayer(eng, d)

	b := board(t, 0, 6, 1, 6, 2)
	dec, err := p.Move(context.Background(), b, game.Yellow)
	require.NoError(t, err)
	assert.False(t, dec.Blunder)
	assert.Equal(t, 3, dec.Column)
	assert.Positive(t, dec.Nodes)
}

func TestAIPlayer_NoMoves(t *testing.T) {
	eng := New(Config{Seed: 1})
	p := NewAIPlayer(eng, Difficulty{Depth: 2})
	won := board(t, 0, 1, 0, 1, 0, 1, 0)
	_, err := p.Move(context.Background(), won, game.Yellow)
	assert.True(t, errors.Is(err, ErrNoMoves))
}

func TestTaunt(t *testing.T) {
	eng := New(Config{Seed: 2})
	all := Taunts()
	assert.Len(t, all, 16)
	assert.Contains(t, all, eng.Taunt())
}
