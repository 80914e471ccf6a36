// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ManuGH/connect4/internal/persistence/sqlite"
)

func runStorageCLI(args []string, s streams) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printStorageUsage(s.out)
		return 0
	}

	switch args[0] {
	case "verify":
		return runStorageVerify(args[1:], s)
	default:
		_, _ = fmt.Fprintf(s.err, "Unknown subcommand: %s\n\n", args[0])
		printStorageUsage(s.err)
		return 2
	}
}

func printStorageUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  connect4 storage verify [--path PATH] [--mode quick|full]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Flags:")
	_, _ = fmt.Fprintln(w, "  --path string  SQLite history database (default: $C4_DATA/history.sqlite)")
	_, _ = fmt.Fprintln(w, "  --mode string  Verification mode: quick (default) or full")
}

func runStorageVerify(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 storage verify", flag.ContinueOnError)
	fs.SetOutput(s.err)

	var path, mode, configPath string
	fs.StringVar(&path, "path", "", "Path to the SQLite database file")
	fs.StringVar(&mode, "mode", "quick", "Verification mode: quick or full")
	fs.StringVar(&configPath, "config", "", "path to config file (YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if mode != "quick" && mode != "full" {
		_, _ = fmt.Fprintf(s.err, "Invalid mode: %s (use quick or full)\n", mode)
		return 2
	}

	if path == "" {
		cfg, err := loadConfig(configPath, true, s)
		if err != nil {
			return fail(s, "%v", err)
		}
		path = filepath.Join(cfg.DataDir, "history.sqlite")
	}
	if _, err := os.Stat(path); err != nil {
		return fail(s, "database not found: %s", path)
	}

	problems, err := sqlite.VerifyIntegrity(context.Background(), path, mode)
	if err != nil {
		return fail(s, "%v", err)
	}
	if len(problems) > 0 {
		_, _ = fmt.Fprintf(s.out, "✗ %s: %d problem(s)\n", path, len(problems))
		for _, p := range problems {
			_, _ = fmt.Fprintf(s.out, "  - %s\n", p)
		}
		return 1
	}
	_, _ = fmt.Fprintf(s.out, "✓ %s: ok (%s)\n", path, mode)
	return 0
}
