// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package match

import (
	"context"
	"fmt"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/metrics"
)

// Human and AI sides in a human_vs_ai match.
const (
	HumanPiece = game.Red
	AIPiece    = game.Yellow
)

// AITurn is the AI's reply to a human move.
type AITurn struct {
	Move     Move
	Decision engine.Decision
	Taunt    string
}

// Session is a human_vs_ai match with its AI opponent attached.
type Session struct {
	*Match
	Engine *engine.Engine
	AI     *engine.AIPlayer
}

// NewSession starts a human (Red) versus AI (Yellow) match.
func NewSession(e *engine.Engine, d engine.Difficulty, opts ...Option) *Session {
	opts = append([]Option{WithLabels("You", "AI "+d.Name)}, opts...)
	return &Session{
		Match:  New(ModeHumanVsAI, d.Key, opts...),
		Engine: e,
		AI:     engine.NewAIPlayer(e, d),
	}
}

// PlayHuman drops the human piece into col (0-based).
func (s *Session) PlayHuman(col int) (Move, error) {
	mv, err := s.Play(HumanPiece, col)
	if err != nil {
		return Move{}, err
	}
	metrics.IncMove(HumanPiece.String(), "human")
	return mv, nil
}

// PlayAI lets the AI choose and play its move.
func (s *Session) PlayAI(ctx context.Context) (turn AITurn, err error) {
	ctx, span := s.startSpan(ctx, "match.ai_move")
	defer func() { s.endSpan(span, err) }()

	if s.Finished() {
		return AITurn{}, ErrMatchFinished
	}
	if s.Turn() != AIPiece {
		return AITurn{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.Turn())
	}
	d, err := s.AI.Move(ctx, s.Board(), AIPiece)
	if err != nil {
		return AITurn{}, err
	}
	if _, err := s.Play(AIPiece, d.Column); err != nil {
		return AITurn{}, err
	}
	s.annotate(d.Score, d.Blunder, d.Elapsed)
	mv, _ := s.LastMove()
	return AITurn{Move: mv, Decision: d, Taunt: s.Engine.Taunt()}, nil
}

// Step plays the human move and, if the game goes on, the AI reply.
// The returned AITurn is nil when the human move ended the game.
func (s *Session) Step(ctx context.Context, col int) (Move, *AITurn, error) {
	mv, err := s.PlayHuman(col)
	if err != nil {
		return Move{}, nil, err
	}
	if s.Finished() {
		return mv, nil, nil
	}
	turn, err := s.PlayAI(ctx)
	if err != nil {
		return mv, nil, err
	}
	return mv, &turn, nil
}
