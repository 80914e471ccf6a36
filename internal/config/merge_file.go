// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"time"
)

// mergeFileConfig merges file configuration into dst.
func (l *Loader) mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	l.mergeFileCore(dst, src)
	if err := l.mergeFileCache(dst, src); err != nil {
		return err
	}
	l.mergeFileEngine(dst, src)
	if err := l.mergeFileAPI(dst, src); err != nil {
		return err
	}
	l.mergeFileMetrics(dst, src)
	l.mergeFileTelemetry(dst, src)
	return l.mergeFileConsole(dst, src)
}

func (l *Loader) mergeFileCore(dst *AppConfig, src *FileConfig) {
	if src.DataDir != "" {
		dst.DataDir = expandEnv(src.DataDir)
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Log != nil {
		if src.Log.Service != "" {
			dst.LogService = src.Log.Service
		}
		if src.Log.Console != nil {
			dst.LogConsole = *src.Log.Console
		}
	}
	if src.Store != nil && src.Store.Backend != "" {
		dst.Store.Backend = src.Store.Backend
	}
}

func (l *Loader) mergeFileCache(dst *AppConfig, src *FileConfig) error {
	c := src.Cache
	if c == nil {
		return nil
	}
	if c.Backend != "" {
		dst.Cache.Backend = c.Backend
	}
	if err := setDuration(&dst.Cache.TTL, "cache.ttl", c.TTL); err != nil {
		return err
	}
	if err := setDuration(&dst.Cache.CleanupInterval, "cache.cleanupInterval", c.CleanupInterval); err != nil {
		return err
	}
	if c.MaxEntries != nil {
		dst.Cache.MaxEntries = *c.MaxEntries
	}
	if r := c.Redis; r != nil {
		if r.Addr != "" {
			dst.Cache.Redis.Addr = r.Addr
		}
		if r.Password != "" {
			dst.Cache.Redis.Password = expandEnv(r.Password)
		}
		if r.DB != nil {
			dst.Cache.Redis.DB = *r.DB
		}
		if r.Prefix != "" {
			dst.Cache.Redis.Prefix = r.Prefix
		}
	}
	return nil
}

func (l *Loader) mergeFileEngine(dst *AppConfig, src *FileConfig) {
	if src.Engine == nil {
		return
	}
	if src.Engine.MaxWorkers != nil {
		dst.Engine.MaxWorkers = *src.Engine.MaxWorkers
	}
	if src.Engine.Seed != nil {
		dst.Engine.Seed = *src.Engine.Seed
	}
}

func (l *Loader) mergeFileAPI(dst *AppConfig, src *FileConfig) error {
	a := src.API
	if a == nil {
		return nil
	}
	if a.ListenAddr != "" {
		dst.API.ListenAddr = a.ListenAddr
	}
	if a.RateLimit != nil {
		dst.API.RateLimit = *a.RateLimit
	}
	if a.MaxGames != nil {
		dst.API.MaxGames = *a.MaxGames
	}
	if a.AnalyzeRate != nil {
		dst.API.AnalyzeRate = *a.AnalyzeRate
	}
	if a.AnalyzeBurst != nil {
		dst.API.AnalyzeBurst = *a.AnalyzeBurst
	}
	for _, d := range []struct {
		dst   *time.Duration
		field string
		raw   string
	}{
		{&dst.API.RateWindow, "api.rateWindow", a.RateWindow},
		{&dst.API.GameIdleTTL, "api.gameIdleTTL", a.GameIdleTTL},
		{&dst.API.ReadTimeout, "api.readTimeout", a.ReadTimeout},
		{&dst.API.WriteTimeout, "api.writeTimeout", a.WriteTimeout},
		{&dst.API.ShutdownTimeout, "api.shutdownTimeout", a.ShutdownTimeout},
	} {
		if err := setDuration(d.dst, d.field, d.raw); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) mergeFileMetrics(dst *AppConfig, src *FileConfig) {
	if src.Metrics == nil {
		return
	}
	if src.Metrics.Enabled != nil {
		dst.Metrics.Enabled = *src.Metrics.Enabled
	}
	if src.Metrics.ListenAddr != "" {
		dst.Metrics.ListenAddr = src.Metrics.ListenAddr
	}
}

func (l *Loader) mergeFileTelemetry(dst *AppConfig, src *FileConfig) {
	t := src.Telemetry
	if t == nil {
		return
	}
	if t.Enabled != nil {
		dst.Telemetry.Enabled = *t.Enabled
	}
	if t.Exporter != "" {
		dst.Telemetry.Exporter = t.Exporter
	}
	if t.Endpoint != "" {
		dst.Telemetry.Endpoint = t.Endpoint
	}
	if t.Environment != "" {
		dst.Telemetry.Environment = t.Environment
	}
	if t.SamplingRate != nil {
		dst.Telemetry.SamplingRate = *t.SamplingRate
	}
}

func (l *Loader) mergeFileConsole(dst *AppConfig, src *FileConfig) error {
	c := src.Console
	if c == nil {
		return nil
	}
	if err := setDuration(&dst.Console.Pacing, "console.pacing", c.Pacing); err != nil {
		return err
	}
	if c.Style != "" {
		dst.Console.Style = c.Style
	}
	if c.RedDepth != nil {
		dst.Console.RedDepth = *c.RedDepth
	}
	if c.YellowDepth != nil {
		dst.Console.YellowDepth = *c.YellowDepth
	}
	return nil
}

func setDuration(dst *time.Duration, field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	*dst = d
	return nil
}
