// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// mergeEnvConfig merges environment variables into cfg.
// ENV variables have the highest precedence.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	l.mergeEnvCore(cfg)
	l.mergeEnvCache(cfg)
	l.mergeEnvEngine(cfg)
	l.mergeEnvAPI(cfg)
	l.mergeEnvMetrics(cfg)
	l.mergeEnvTelemetry(cfg)
	l.mergeEnvConsole(cfg)
}

func (l *Loader) mergeEnvCore(cfg *AppConfig) {
	cfg.DataDir = l.envString("C4_DATA", cfg.DataDir)
	cfg.LogLevel = l.envString("C4_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = l.envString("C4_LOG_SERVICE", cfg.LogService)
	cfg.LogConsole = l.envBool("C4_LOG_CONSOLE", cfg.LogConsole)
	cfg.Store.Backend = l.envString("C4_STORE_BACKEND", cfg.Store.Backend)
}

func (l *Loader) mergeEnvCache(cfg *AppConfig) {
	cfg.Cache.Backend = l.envString("C4_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = l.envDuration("C4_CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.MaxEntries = l.envInt("C4_CACHE_MAX_ENTRIES", cfg.Cache.MaxEntries)
	cfg.Cache.Redis.Addr = l.envString("C4_REDIS_ADDR", cfg.Cache.Redis.Addr)
	cfg.Cache.Redis.Password = l.envString("C4_REDIS_PASSWORD", cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = l.envInt("C4_REDIS_DB", cfg.Cache.Redis.DB)
	cfg.Cache.Redis.Prefix = l.envString("C4_REDIS_PREFIX", cfg.Cache.Redis.Prefix)
}

func (l *Loader) mergeEnvEngine(cfg *AppConfig) {
	cfg.Engine.MaxWorkers = l.envInt("C4_ENGINE_MAX_WORKERS", cfg.Engine.MaxWorkers)
	cfg.Engine.Seed = l.envUint64("C4_ENGINE_SEED", cfg.Engine.Seed)
}

func (l *Loader) mergeEnvAPI(cfg *AppConfig) {
	cfg.API.ListenAddr = l.envString("C4_LISTEN", cfg.API.ListenAddr)
	cfg.API.RateLimit = l.envInt("C4_RATE_LIMIT", cfg.API.RateLimit)
	cfg.API.RateWindow = l.envDuration("C4_RATE_WINDOW", cfg.API.RateWindow)
	cfg.API.AnalyzeRate = l.envFloat("C4_ANALYZE_RATE", cfg.API.AnalyzeRate)
	cfg.API.AnalyzeBurst = l.envInt("C4_ANALYZE_BURST", cfg.API.AnalyzeBurst)
	cfg.API.GameIdleTTL = l.envDuration("C4_GAME_IDLE_TTL", cfg.API.GameIdleTTL)
	cfg.API.MaxGames = l.envInt("C4_MAX_GAMES", cfg.API.MaxGames)
	cfg.API.ShutdownTimeout = l.envDuration("C4_SHUTDOWN_TIMEOUT", cfg.API.ShutdownTimeout)
}

func (l *Loader) mergeEnvMetrics(cfg *AppConfig) {
	cfg.Metrics.Enabled = l.envBool("C4_METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.ListenAddr = l.envString("C4_METRICS_LISTEN", cfg.Metrics.ListenAddr)
}

func (l *Loader) mergeEnvTelemetry(cfg *AppConfig) {
	cfg.Telemetry.Enabled = l.envBool("C4_TELEMETRY_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString("C4_OTLP_EXPORTER", cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString("C4_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Environment = l.envString("C4_ENVIRONMENT", cfg.Telemetry.Environment)
	cfg.Telemetry.SamplingRate = l.envFloat("C4_TRACE_SAMPLING_RATE", cfg.Telemetry.SamplingRate)
}

func (l *Loader) mergeEnvConsole(cfg *AppConfig) {
	cfg.Console.Pacing = l.envDuration("C4_CONSOLE_PACING", cfg.Console.Pacing)
	cfg.Console.Style = l.envString("C4_CONSOLE_STYLE", cfg.Console.Style)
}
