// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/connect4/internal/log"
)

// EnvPrefix is the prefix of every environment key.
const EnvPrefix = "C4_"

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "token")
}

// parseEnv reads key and converts it with parse. Unset and empty variables
// yield def; unparsable values are logged and yield def as well.
func parseEnv[T any](key string, def T, parse func(string) (T, error)) T {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logger.Debug().
			Str("key", key).
			Interface("default", redact(key, def)).
			Str("source", "default").
			Msg("using default value")
		return def
	}
	out, err := parse(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Interface("value", redact(key, v)).
			Interface("default", redact(key, def)).
			Err(err).
			Msg("invalid value in environment variable, using default")
		return def
	}
	event := logger.Debug().Str("key", key).Str("source", "environment")
	if isSensitive(key) {
		event = event.Bool("sensitive", true)
	} else {
		event = event.Interface("value", out)
	}
	event.Msg("using environment variable")
	return out
}

func redact(key string, v any) any {
	if isSensitive(key) {
		return "***"
	}
	return v
}

// ParseString reads a string from environment variable or returns default value.
func ParseString(key, defaultValue string) string {
	return parseEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// ParseInt reads an integer from environment variable or returns default value.
func ParseInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

// ParseUint64 reads an unsigned integer from environment variable or returns default value.
func ParseUint64(key string, defaultValue uint64) uint64 {
	return parseEnv(key, defaultValue, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

// ParseFloat reads a float from environment variable or returns default value.
func ParseFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseDuration reads a duration in Go format (e.g. "5s").
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration)
}

// ParseBool accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func ParseBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, parseBool)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
