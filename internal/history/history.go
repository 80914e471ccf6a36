// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package history persists finished matches and aggregates results.
package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned by Get for unknown match IDs.
var ErrNotFound = errors.New("match not found")

// Record is a finished match. Moves are 0-based columns with Red first.
type Record struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	Difficulty  string    `json:"difficulty,omitempty"`
	RedLabel    string    `json:"red"`
	YellowLabel string    `json:"yellow"`
	Moves       []int     `json:"moves"`
	Outcome     string    `json:"outcome"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Validate checks the fields every backend relies on.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("record id is empty")
	}
	if r.Mode == "" {
		return errors.New("record mode is empty")
	}
	if r.Outcome == "" {
		return errors.New("record outcome is empty")
	}
	if r.FinishedAt.IsZero() {
		return errors.New("record finish time is missing")
	}
	return nil
}

// Tally counts human_vs_ai results from the human's side. The human plays Red.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Total returns the number of games in the tally.
func (t Tally) Total() int { return t.Wins + t.Losses + t.Draws }

func (t *Tally) add(outcome string, n int) {
	switch outcome {
	case "red_wins":
		t.Wins += n
	case "yellow_wins":
		t.Losses += n
	case "draw":
		t.Draws += n
	}
}

// BattleTally counts ai_vs_ai results by colour.
type BattleTally struct {
	RedWins    int `json:"red_wins"`
	YellowWins int `json:"yellow_wins"`
	Draws      int `json:"draws"`
}

// Total returns the number of battles in the tally.
func (t BattleTally) Total() int { return t.RedWins + t.YellowWins + t.Draws }

func (t *BattleTally) add(outcome string, n int) {
	switch outcome {
	case "red_wins":
		t.RedWins += n
	case "yellow_wins":
		t.YellowWins += n
	case "draw":
		t.Draws += n
	}
}

// Stats aggregates the history: human results per difficulty and battle
// results by colour.
type Stats struct {
	ByDifficulty map[string]Tally `json:"by_difficulty"`
	Battles      BattleTally      `json:"battles"`
	Total        int              `json:"total"`
}

func newStats() Stats {
	return Stats{ByDifficulty: make(map[string]Tally)}
}

func (s *Stats) add(mode, difficulty, outcome string, n int) {
	s.Total += n
	if mode == "ai_vs_ai" {
		s.Battles.add(outcome, n)
		return
	}
	t := s.ByDifficulty[difficulty]
	t.add(outcome, n)
	s.ByDifficulty[difficulty] = t
}

// Store persists match records.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	// List returns up to limit records, most recently finished first.
	List(ctx context.Context, limit int) ([]Record, error)
	Stats(ctx context.Context) (Stats, error)
	Backend() string
	Close() error
}

// NewStore creates a history store based on the backend.
// An empty dir keeps history in memory regardless of backend.
func NewStore(backend, dir string) (Store, error) {
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "sqlite":
		if dir == "" {
			return NewMemoryStore(), nil
		}
		return NewSqliteStore(filepath.Join(dir, "history.sqlite"))
	case "badger":
		if dir == "" {
			return NewMemoryStore(), nil
		}
		return NewBadgerStore(filepath.Join(dir, "history.badger"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown history store backend: %s (supported: sqlite, badger, memory)", backend)
	}
}

func encodeMoves(moves []int) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

func decodeMoves(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("decode moves: %w", err)
		}
		out[i] = v
	}
	return out, nil
}

func sortNewestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].FinishedAt.Equal(recs[j].FinishedAt) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].FinishedAt.After(recs[j].FinishedAt)
	})
}

func cloneRecord(r Record) Record {
	r.Moves = append([]int(nil), r.Moves...)
	if r.Moves == nil {
		r.Moves = []int{}
	}
	return r
}
