// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// AppConfig is the effective runtime configuration.
type AppConfig struct {
	Version    string
	ConfigPath string

	DataDir    string
	LogLevel   string
	LogService string
	// LogConsole switches to the human readable zerolog console writer.
	LogConsole bool

	Store     StoreConfig
	Cache     CacheConfig
	Engine    EngineConfig
	API       APIConfig
	Metrics   MetricsConfig
	Telemetry TelemetryConfig
	Console   ConsoleConfig
}

// StoreConfig selects the match history backend.
type StoreConfig struct {
	Backend string // sqlite, badger, memory
}

// CacheConfig configures the analysis cache.
type CacheConfig struct {
	Backend         string // memory, redis, none
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
	Redis           RedisConfig
}

// RedisConfig is used when Cache.Backend is redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// EngineConfig tunes the search engine.
type EngineConfig struct {
	MaxWorkers int
	// Seed fixes the blunder and taunt sequence; 0 means random.
	Seed uint64
}

// APIConfig configures the HTTP game service.
type APIConfig struct {
	ListenAddr      string
	RateLimit       int // requests per RateWindow per client IP, 0 disables
	RateWindow      time.Duration
	// AnalyzeRate caps POST /analyze across all clients, in searches per
	// second. 0 disables the cap.
	AnalyzeRate     float64
	AnalyzeBurst    int
	GameIdleTTL     time.Duration
	MaxGames        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
}

// TelemetryConfig configures OpenTelemetry trace export.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string // grpc, http
	Endpoint     string
	Environment  string
	SamplingRate float64
}

// ConsoleConfig configures the terminal game.
type ConsoleConfig struct {
	// Pacing is the delay between "thinking" dots and battle moves.
	Pacing      time.Duration
	Style       string // emoji, ascii
	RedDepth    int
	YellowDepth int
}
