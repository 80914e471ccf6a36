// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// FileConfig is the on-disk YAML shape. Pointer fields distinguish "unset"
// from an explicit zero value.
type FileConfig struct {
	DataDir  string   `yaml:"dataDir,omitempty"`
	LogLevel string   `yaml:"logLevel,omitempty"`
	Log      *LogFile `yaml:"log,omitempty"`

	Store     *StoreFile     `yaml:"store,omitempty"`
	Cache     *CacheFile     `yaml:"cache,omitempty"`
	Engine    *EngineFile    `yaml:"engine,omitempty"`
	API       *APIFile       `yaml:"api,omitempty"`
	Metrics   *MetricsFile   `yaml:"metrics,omitempty"`
	Telemetry *TelemetryFile `yaml:"telemetry,omitempty"`
	Console   *ConsoleFile   `yaml:"console,omitempty"`
}

type LogFile struct {
	Service string `yaml:"service,omitempty"`
	Console *bool  `yaml:"console,omitempty"`
}

type StoreFile struct {
	Backend string `yaml:"backend,omitempty"`
}

type CacheFile struct {
	Backend         string     `yaml:"backend,omitempty"`
	TTL             string     `yaml:"ttl,omitempty"`
	MaxEntries      *int       `yaml:"maxEntries,omitempty"`
	CleanupInterval string     `yaml:"cleanupInterval,omitempty"`
	Redis           *RedisFile `yaml:"redis,omitempty"`
}

type RedisFile struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       *int   `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type EngineFile struct {
	MaxWorkers *int    `yaml:"maxWorkers,omitempty"`
	Seed       *uint64 `yaml:"seed,omitempty"`
}

type APIFile struct {
	ListenAddr      string   `yaml:"listenAddr,omitempty"`
	RateLimit       *int     `yaml:"rateLimit,omitempty"`
	RateWindow      string   `yaml:"rateWindow,omitempty"`
	AnalyzeRate     *float64 `yaml:"analyzeRate,omitempty"`
	AnalyzeBurst    *int     `yaml:"analyzeBurst,omitempty"`
	GameIdleTTL     string   `yaml:"gameIdleTTL,omitempty"`
	MaxGames        *int     `yaml:"maxGames,omitempty"`
	ReadTimeout     string   `yaml:"readTimeout,omitempty"`
	WriteTimeout    string   `yaml:"writeTimeout,omitempty"`
	ShutdownTimeout string   `yaml:"shutdownTimeout,omitempty"`
}

type MetricsFile struct {
	Enabled    *bool  `yaml:"enabled,omitempty"`
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

type TelemetryFile struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

type ConsoleFile struct {
	Pacing      string `yaml:"pacing,omitempty"`
	Style       string `yaml:"style,omitempty"`
	RedDepth    *int   `yaml:"redDepth,omitempty"`
	YellowDepth *int   `yaml:"yellowDepth,omitempty"`
}

// LoadFileConfig loads a YAML config file without applying defaults or env overrides.
func LoadFileConfig(path string) (*FileConfig, error) {
	loader := NewLoader(path, "")
	return loader.loadFile(path)
}
