// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package match tracks a single game from first move to result and drives
// the AI side of it.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/history"
	"github.com/ManuGH/connect4/internal/metrics"
)

// Mode is the kind of match being played.
type Mode string

const (
	ModeHumanVsAI Mode = "human_vs_ai"
	ModeAIVsAI    Mode = "ai_vs_ai"
)

var (
	ErrMatchFinished = errors.New("match is finished")
	ErrNotYourTurn   = errors.New("not your turn")
)

// Move is one ply. Column is 0-based.
type Move struct {
	Seq     int           `json:"seq"`
	Piece   game.Piece    `json:"piece"`
	Column  int           `json:"column"`
	Score   *int          `json:"score,omitempty"`
	Blunder bool          `json:"blunder,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// Match is a game in progress or finished. It is not safe for concurrent use;
// the live registry serialises access.
type Match struct {
	ID          string
	Mode        Mode
	Difficulty  string
	RedLabel    string
	YellowLabel string

	board      game.Board
	moves      []Move
	outcome    game.Outcome
	startedAt  time.Time
	finishedAt time.Time
	now        func() time.Time
	replaying  bool
}

// Option customises a new Match.
type Option func(*Match)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Match) { m.now = now }
}

// WithID fixes the match ID instead of generating a UUID.
func WithID(id string) Option {
	return func(m *Match) { m.ID = id }
}

// WithLabels names the two sides.
func WithLabels(red, yellow string) Option {
	return func(m *Match) {
		m.RedLabel = red
		m.YellowLabel = yellow
	}
}

// New starts a match on an empty board with Red to move.
func New(mode Mode, difficulty string, opts ...Option) *Match {
	m := newMatch(mode, difficulty, opts...)
	metrics.IncGameStarted(string(m.Mode))
	return m
}

func newMatch(mode Mode, difficulty string, opts ...Option) *Match {
	m := &Match{
		ID:          uuid.NewString(),
		Mode:        mode,
		Difficulty:  difficulty,
		RedLabel:    "red",
		YellowLabel: "yellow",
		board:       game.NewBoard(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.startedAt = m.now()
	return m
}

func (m *Match) Board() game.Board     { return m.board }
func (m *Match) Outcome() game.Outcome { return m.outcome }
func (m *Match) Finished() bool        { return m.outcome.Finished() }
func (m *Match) Turn() game.Piece      { return m.board.Turn() }
func (m *Match) MoveCount() int        { return len(m.moves) }
func (m *Match) StartedAt() time.Time  { return m.startedAt }
func (m *Match) FinishedAt() time.Time { return m.finishedAt }

// Moves returns a copy of the move list.
func (m *Match) Moves() []Move {
	out := make([]Move, len(m.moves))
	copy(out, m.moves)
	return out
}

// LastMove returns the most recent move, if any.
func (m *Match) LastMove() (Move, bool) {
	if len(m.moves) == 0 {
		return Move{}, false
	}
	return m.moves[len(m.moves)-1], true
}

// Play drops piece into col. It rejects moves after the end of the game and
// moves by the side not on turn.
func (m *Match) Play(piece game.Piece, col int) (Move, error) {
	if m.Finished() {
		return Move{}, ErrMatchFinished
	}
	if piece != m.board.Turn() {
		return Move{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, m.board.Turn())
	}
	next, err := m.board.Drop(col, piece)
	if err != nil {
		return Move{}, err
	}
	m.board = next
	mv := Move{Seq: len(m.moves) + 1, Piece: piece, Column: col}
	m.moves = append(m.moves, mv)

	m.outcome = next.Outcome()
	if m.outcome.Finished() {
		m.finishedAt = m.now()
		if !m.replaying {
			metrics.IncGameFinished(string(m.Mode), m.Difficulty, m.outcome.String())
		}
	}
	return mv, nil
}

// Apply plays col for whichever side is on turn.
func (m *Match) Apply(col int) error {
	_, err := m.Play(m.board.Turn(), col)
	return err
}

// annotate attaches search details to the last move.
func (m *Match) annotate(score int, blunder bool, elapsed time.Duration) {
	if len(m.moves) == 0 {
		return
	}
	last := &m.moves[len(m.moves)-1]
	if !blunder {
		s := score
		last.Score = &s
	}
	last.Blunder = blunder
	last.Elapsed = elapsed
}

// Winner returns the winning piece, or Empty for a draw or unfinished game.
func (m *Match) Winner() game.Piece {
	switch m.outcome {
	case game.RedWins:
		return game.Red
	case game.YellowWins:
		return game.Yellow
	}
	return game.Empty
}

// Record snapshots the match for the history store.
func (m *Match) Record() history.Record {
	cols := make([]int, len(m.moves))
	for i, mv := range m.moves {
		cols[i] = mv.Column
	}
	return history.Record{
		ID:          m.ID,
		Mode:        string(m.Mode),
		Difficulty:  m.Difficulty,
		RedLabel:    m.RedLabel,
		YellowLabel: m.YellowLabel,
		Moves:       cols,
		Outcome:     m.outcome.String(),
		StartedAt:   m.startedAt.UTC(),
		FinishedAt:  m.finishedAt.UTC(),
	}
}

// Replay rebuilds a finished match from a stored record.
func Replay(rec history.Record) (*Match, error) {
	m := newMatch(Mode(rec.Mode), rec.Difficulty,
		WithID(rec.ID),
		WithLabels(rec.RedLabel, rec.YellowLabel),
		WithClock(func() time.Time { return rec.FinishedAt }),
	)
	m.startedAt = rec.StartedAt
	m.replaying = true
	defer func() { m.replaying = false }()
	for i, col := range rec.Moves {
		if err := m.Apply(col); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return m, nil
}
