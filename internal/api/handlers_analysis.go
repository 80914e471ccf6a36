// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/match"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.allowAnalyze(w, r) {
		return
	}
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	b, err := game.ParseBoard(req.Board)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	piece := req.Piece
	if piece == game.Empty {
		piece = b.Turn()
	}
	depth := req.Depth
	if depth == 0 {
		depth = defaultAnalyzeDepth
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()
	res, err := s.engine.BestMove(ctx, b, piece, depth)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyzeResponse(b, piece, res))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Matches: recs, Count: len(recs)})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	m, err := match.Replay(rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	b := m.Board()
	writeJSON(w, http.StatusOK, HistoryDetailResponse{Record: rec, Board: b.String(), Rows: b.Rows()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Stats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
