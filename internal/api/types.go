// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"time"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/history"
	"github.com/ManuGH/connect4/internal/match"
)

// Columns on the wire are 1-based, as shown to players.

type CreateGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type MoveRequest struct {
	Column *int `json:"column"`
}

type AnalyzeRequest struct {
	Board string     `json:"board"`
	Piece game.Piece `json:"piece,omitempty"`
	Depth int        `json:"depth,omitempty"`
}

type MoveDTO struct {
	Seq       int        `json:"seq"`
	Piece     game.Piece `json:"piece"`
	Column    int        `json:"column"`
	Score     *int       `json:"score,omitempty"`
	Blunder   bool       `json:"blunder,omitempty"`
	ElapsedMs int64      `json:"elapsedMs,omitempty"`
}

type GameResponse struct {
	ID           string       `json:"id"`
	Mode         string       `json:"mode"`
	Difficulty   string       `json:"difficulty"`
	Red          string       `json:"red"`
	Yellow       string       `json:"yellow"`
	Board        string       `json:"board"`
	Rows         []string     `json:"rows"`
	Turn         game.Piece   `json:"turn,omitempty"`
	Outcome      game.Outcome `json:"outcome"`
	ValidColumns []int        `json:"validColumns"`
	Moves        []MoveDTO    `json:"moves"`
	StartedAt    time.Time    `json:"startedAt"`
	FinishedAt   *time.Time   `json:"finishedAt,omitempty"`
}

type AIMoveDTO struct {
	Move  MoveDTO `json:"move"`
	Taunt string  `json:"taunt,omitempty"`
}

type MoveResponse struct {
	Human MoveDTO      `json:"human"`
	AI    *AIMoveDTO   `json:"ai,omitempty"`
	Game  GameResponse `json:"game"`
}

type ColumnScoreDTO struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

type AnalyzeResponse struct {
	Board     string           `json:"board"`
	Piece     game.Piece       `json:"piece"`
	Column    int              `json:"column"`
	Score     int              `json:"score"`
	Depth     int              `json:"depth"`
	Nodes     int64            `json:"nodes"`
	ElapsedMs int64            `json:"elapsedMs"`
	Cached    bool             `json:"cached"`
	Scores    []ColumnScoreDTO `json:"scores"`
}

type HistoryResponse struct {
	Matches []history.Record `json:"matches"`
	Count   int              `json:"count"`
}

type HistoryDetailResponse struct {
	history.Record
	Board string   `json:"board"`
	Rows  []string `json:"rows"`
}

func toMoveDTO(mv match.Move) MoveDTO {
	return MoveDTO{
		Seq:       mv.Seq,
		Piece:     mv.Piece,
		Column:    mv.Column + 1,
		Score:     mv.Score,
		Blunder:   mv.Blunder,
		ElapsedMs: mv.Elapsed.Milliseconds(),
	}
}

func toGameResponse(m *match.Match) GameResponse {
	b := m.Board()
	resp := GameResponse{
		ID:           m.ID,
		Mode:         string(m.Mode),
		Difficulty:   m.Difficulty,
		Red:          m.RedLabel,
		Yellow:       m.YellowLabel,
		Board:        b.String(),
		Rows:         b.Rows(),
		Outcome:      m.Outcome(),
		ValidColumns: []int{},
		StartedAt:    m.StartedAt().UTC(),
	}
	if m.Finished() {
		t := m.FinishedAt().UTC()
		resp.FinishedAt = &t
	} else {
		resp.Turn = m.Turn()
		for _, c := range b.ValidColumns() {
			resp.ValidColumns = append(resp.ValidColumns, c+1)
		}
	}
	moves := m.Moves()
	resp.Moves = make([]MoveDTO, len(moves))
	for i, mv := range moves {
		resp.Moves[i] = toMoveDTO(mv)
	}
	return resp
}

func toAnalyzeResponse(b game.Board, piece game.Piece, res engine.Result) AnalyzeResponse {
	scores := make([]ColumnScoreDTO, len(res.Scores))
	for i, s := range res.Scores {
		scores[i] = ColumnScoreDTO{Column: s.Column + 1, Score: s.Score}
	}
	return AnalyzeResponse{
		Board:     b.String(),
		Piece:     piece,
		Column:    res.Column + 1,
		Score:     res.Score,
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		ElapsedMs: res.Elapsed.Milliseconds(),
		Cached:    res.Cached,
		Scores:    scores,
	}
}
