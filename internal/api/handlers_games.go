// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/connect4/internal/engine"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/match"
)

// decodeJSON reads a bounded JSON body into v. An empty body leaves v as is.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) searchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.searchTimeout > 0 {
		return context.WithTimeout(ctx, s.searchTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Server) handleDifficulties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, engine.Difficulties())
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "2"
	}
	d, err := engine.LookupDifficulty(req.Difficulty)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	sess := match.NewSession(s.engine, d)
	if err := s.registry.Add(sess); err != nil {
		writeDomainError(w, r, err)
		return
	}

	logger := xglog.WithContext(xglog.ContextWithMatchID(r.Context(), sess.ID), s.logger)
	logger.Info().
		Str(xglog.FieldEvent, "game.created").
		Str(xglog.FieldDifficulty, d.Key).
		Msg("game created")

	w.Header().Set("Location", APIPrefix+"/games/"+sess.ID)
	writeJSON(w, http.StatusCreated, toGameResponse(sess.Match))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var resp GameResponse
	err := s.registry.With(r.Context(), chi.URLParam(r, "id"), func(sess *match.Session) error {
		resp = toGameResponse(sess.Match)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	if req.Column == nil {
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidColumn, "column is required")
		return
	}

	id := chi.URLParam(r, "id")
	ctx, cancel := s.searchContext(xglog.ContextWithMatchID(r.Context(), id))
	defer cancel()

	var resp MoveResponse
	err := s.registry.With(ctx, id, func(sess *match.Session) error {
		// an AI reply lost to a timeout is owed before the human moves again
		if !sess.Finished() && sess.Turn() == match.AIPiece {
			if _, err := sess.PlayAI(ctx); err != nil {
				resp.Game = toGameResponse(sess.Match)
				return err
			}
		}
		human, ai, err := sess.Step(ctx, *req.Column-1)
		if err != nil && human.Seq == 0 {
			return err
		}
		// the human move stands; the AI reply is owed on the next request
		resp.Human = toMoveDTO(human)
		if ai != nil {
			resp.AI = &AIMoveDTO{Move: toMoveDTO(ai.Move), Taunt: ai.Taunt}
		}
		resp.Game = toGameResponse(sess.Match)
		return err
	})
	if err != nil {
		if isSearchTimeout(err) && resp.Game.ID != "" {
			writeSearchTimeout(w, r, err, &resp.Game)
			return
		}
		writeDomainError(w, r, err)
		return
	}

	logger := xglog.WithContext(ctx, s.logger)
	ev := logger.Debug().
		Str(xglog.FieldEvent, "game.move").
		Int(xglog.FieldColumn, resp.Human.Column)
	if resp.AI != nil {
		ev = ev.Int("ai_column", resp.AI.Move.Column)
	}
	ev.Str(xglog.FieldOutcome, resp.Game.Outcome.String()).Msg("move applied")

	writeJSON(w, http.StatusOK, resp)
}
