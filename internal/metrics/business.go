// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors for games, search and storage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Game metrics
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_games_started_total",
		Help: "Total number of games started by mode",
	}, []string{"mode"}) // mode=human_vs_ai|ai_vs_ai

	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_games_finished_total",
		Help: "Total number of finished games by mode, difficulty and outcome",
	}, []string{"mode", "difficulty", "outcome"}) // outcome=red_wins|yellow_wins|draw

	movesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_moves_total",
		Help: "Total number of moves played by piece and kind",
	}, []string{"piece", "kind"}) // kind=human|search|blunder

	activeGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "connect4_active_games",
		Help: "Games currently held in the live registry",
	})

	gamesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connect4_games_expired_total",
		Help: "Games evicted from the live registry after sitting idle",
	})

	// Storage metrics
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_store_operations_total",
		Help: "History store operations by backend, operation and result",
	}, []string{"backend", "op", "result"}) // result=success|error

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connect4_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})
)

func IncGameStarted(mode string) { gamesStarted.WithLabelValues(mode).Inc() }

func IncGameFinished(mode, difficulty, outcome string) {
	gamesFinished.WithLabelValues(mode, difficulty, outcome).Inc()
}

func IncMove(piece, kind string) { movesPlayed.WithLabelValues(piece, kind).Inc() }

func SetActiveGames(n int) { activeGames.Set(float64(n)) }
func IncGamesExpired(n int) { gamesExpired.Add(float64(n)) }

func RecordStoreOp(backend, op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	storeOperations.WithLabelValues(backend, op, result).Inc()
}

func IncConfigValidationError() { configValidationErrors.Inc() }

var (
	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_rate_limited_total",
		Help: "Requests rejected by a rate limiter",
	}, []string{"limiter"}) // limiter=client_ip|analyze

	configReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_config_reloads_total",
		Help: "Configuration reload attempts by result",
	}, []string{"result"}) // result=success|error
)

func IncRateLimited(limiter string) { rateLimited.WithLabelValues(limiter).Inc() }

func IncConfigReload(ok bool) {
	result := "success"
	if !ok {
		result = "error"
	}
	configReloads.WithLabelValues(result).Inc()
}
