// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for connect4.
//
// Precedence is ENV > YAML file > defaults. The file is parsed strictly:
// unknown keys and multiple documents are rejected. Every environment key
// carries the C4_ prefix.
package config
