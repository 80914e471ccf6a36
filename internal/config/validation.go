// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"net"
	"time"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/metrics"
	"github.com/ManuGH/connect4/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("logLevel", cfg.LogLevel, validate.LogLevels)
	v.OneOf("store.backend", cfg.Store.Backend, []string{"sqlite", "badger", "memory"})
	if cfg.Store.Backend != "memory" {
		v.Directory("dataDir", cfg.DataDir, false)
	}

	v.OneOf("cache.backend", cfg.Cache.Backend, []string{"memory", "redis", "none"})
	v.NonNegative("cache.maxEntries", cfg.Cache.MaxEntries)
	if cfg.Cache.TTL < 0 {
		v.AddError("cache.ttl", "ttl cannot be negative", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend == "redis" {
		v.NotEmpty("cache.redis.addr", cfg.Cache.Redis.Addr)
		if cfg.Cache.Redis.Addr != "" {
			v.Custom("cache.redis.addr", cfg.Cache.Redis.Addr, func(val interface{}) error {
				_, _, err := net.SplitHostPort(val.(string))
				return err
			})
		}
		v.Range("cache.redis.db", cfg.Cache.Redis.DB, 0, 15)
	}

	v.Range("engine.maxWorkers", cfg.Engine.MaxWorkers, 0, 256)

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	v.NonNegative("api.rateLimit", cfg.API.RateLimit)
	if cfg.API.RateLimit > 0 {
		v.MinDuration("api.rateWindow", cfg.API.RateWindow, time.Second)
	}
	if cfg.API.AnalyzeRate < 0 {
		v.AddError("api.analyzeRate", "rate cannot be negative", cfg.API.AnalyzeRate)
	} else if cfg.API.AnalyzeRate > 0 {
		v.Positive("api.analyzeBurst", cfg.API.AnalyzeBurst)
	}
	v.MinDuration("api.gameIdleTTL", cfg.API.GameIdleTTL, time.Second)
	v.Positive("api.maxGames", cfg.API.MaxGames)
	v.MinDuration("api.shutdownTimeout", cfg.API.ShutdownTimeout, 100*time.Millisecond)

	if cfg.Metrics.Enabled {
		v.ListenAddr("metrics.listenAddr", cfg.Metrics.ListenAddr)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.Probability("telemetry.samplingRate", cfg.Telemetry.SamplingRate)
	}

	if cfg.Console.Pacing < 0 {
		v.AddError("console.pacing", "pacing cannot be negative", cfg.Console.Pacing)
	}
	v.OneOf("console.style", cfg.Console.Style, []string{"emoji", "ascii"})
	v.Range("console.redDepth", cfg.Console.RedDepth, 1, engine.MaxDepth)
	v.Range("console.yellowDepth", cfg.Console.YellowDepth, 1, engine.MaxDepth)

	if err := v.Err(); err != nil {
		metrics.IncConfigValidationError()
		return err
	}
	return nil
}
