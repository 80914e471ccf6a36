// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/history"
	"github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/match"
)

// Error codes returned in the "error" field.
const (
	codeInvalidRequest    = "invalid_request"
	codeInvalidDifficulty = "invalid_difficulty"
	codeInvalidColumn     = "invalid_column"
	codeInvalidBoard      = "invalid_board"
	codeInvalidDepth      = "invalid_depth"
	codeInvalidPiece      = "invalid_piece"
	codeNoMoves           = "no_moves"
	codeNotFound          = "not_found"
	codeGameFinished      = "game_finished"
	codeTooManyGames      = "too_many_games"
	codeRateLimited       = "rate_limit_exceeded"
	codeSearchTimeout     = "search_timeout"
	codeInternal          = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	// Game carries the current state when the request changed it before
	// failing, e.g. a human move that landed before the AI ran out of time.
	Game *GameResponse `json:"game,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, status, ErrorResponse{
		Error:     code,
		Detail:    detail,
		RequestID: log.RequestIDFromContext(r.Context()),
	})
}

func isSearchTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// writeSearchTimeout reports a search that ran out of time. game may be nil.
func writeSearchTimeout(w http.ResponseWriter, r *http.Request, err error, game *GameResponse) {
	logger := log.WithComponentFromContext(r.Context(), "api")
	logger.Warn().Err(err).
		Str(log.FieldEvent, "api.search_timeout").
		Str(log.FieldPath, r.URL.Path).
		Msg("search did not finish in time")
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Error:     codeSearchTimeout,
		Detail:    "The AI search did not finish in time. Retry the request.",
		RequestID: log.RequestIDFromContext(r.Context()),
		Game:      game,
	})
}

// writeDomainError maps package errors onto HTTP statuses. Anything unknown
// is logged and reported as a 500 without leaking the message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound), errors.Is(err, history.ErrNotFound):
		writeError(w, r, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, match.ErrMatchFinished):
		writeError(w, r, http.StatusConflict, codeGameFinished, err.Error())
	case errors.Is(err, match.ErrNotYourTurn):
		writeError(w, r, http.StatusConflict, codeInvalidRequest, err.Error())
	case errors.Is(err, game.ErrColumnOutOfRange), errors.Is(err, game.ErrColumnFull):
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidColumn, err.Error())
	case errors.Is(err, game.ErrInvalidBoard):
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidBoard, err.Error())
	case errors.Is(err, game.ErrInvalidPiece):
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidPiece, err.Error())
	case errors.Is(err, engine.ErrInvalidDepth):
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidDepth, err.Error())
	case errors.Is(err, engine.ErrNoMoves):
		writeError(w, r, http.StatusUnprocessableEntity, codeNoMoves, err.Error())
	case errors.Is(err, engine.ErrUnknownDifficulty):
		writeError(w, r, http.StatusUnprocessableEntity, codeInvalidDifficulty, err.Error())
	case errors.Is(err, ErrTooManyGames):
		writeError(w, r, http.StatusServiceUnavailable, codeTooManyGames, err.Error())
	case isSearchTimeout(err):
		writeSearchTimeout(w, r, err, nil)
	default:
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).
			Str(log.FieldEvent, "api.internal_error").
			Str(log.FieldPath, r.URL.Path).
			Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, codeInternal, "An unexpected error occurred.")
	}
}
