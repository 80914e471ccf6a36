// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api serves the game engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ManuGH/connect4/internal/api/middleware"
	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/health"
	"github.com/ManuGH/connect4/internal/history"
	xglog "github.com/ManuGH/connect4/internal/log"
)

// APIPrefix is the mount point of the versioned routes.
const APIPrefix = "/api/v1"

const (
	defaultAnalyzeDepth = 4
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	maxBodyBytes        = 1 << 16
)

// Config wires the server's collaborators.
type Config struct {
	Engine   *engine.Engine
	Store    history.Store
	Health   *health.Manager
	Registry *Registry
	Stack    middleware.StackConfig
	// SearchTimeout bounds a single AI move or analysis. 0 means no limit.
	SearchTimeout time.Duration
	// AnalyzeLimiter throttles POST /analyze across all clients. Nil disables it.
	AnalyzeLimiter *rate.Limiter
}

// Server exposes games, analysis and history.
type Server struct {
	engine         *engine.Engine
	store          history.Store
	health         *health.Manager
	registry       *Registry
	stack          middleware.StackConfig
	searchTimeout  time.Duration
	analyzeLimiter *rate.Limiter
	logger         zerolog.Logger
}

// New creates a Server. A nil Registry gets a default one backed by Store.
func New(cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = NewRegistry(RegistryConfig{Store: cfg.Store})
	}
	return &Server{
		engine:         cfg.Engine,
		store:          cfg.Store,
		health:         cfg.Health,
		registry:       reg,
		stack:          cfg.Stack,
		searchTimeout:  cfg.SearchTimeout,
		analyzeLimiter: cfg.AnalyzeLimiter,
		logger:         xglog.WithComponent("api"),
	}
}

// Registry returns the live game registry.
func (s *Server) Registry() *Registry { return s.registry }

// Handler builds the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := middleware.NewRouter(s.stack)

	if s.health != nil {
		r.Get("/healthz", s.health.ServeHealth)
		r.Get("/readyz", s.health.ServeReady)
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/difficulties", s.handleDifficulties)

		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/moves", s.handleMove)

		r.Post("/analyze", s.handleAnalyze)

		r.Get("/history", s.handleListHistory)
		r.Get("/history/{id}", s.handleGetHistory)
		r.Get("/stats", s.handleStats)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, codeNotFound, "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, codeInvalidRequest, "method not allowed")
	})
	return r
}
