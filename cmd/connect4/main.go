// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command connect4 plays Connect 4 against a minimax engine in the terminal
// and serves the same engine over HTTP.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/connect4/internal/config"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/version"
)

// streams bundles the process I/O so subcommands can be tested.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

func run(args []string, s streams) int {
	cmd := "menu"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "menu":
		return runMenuCLI(args, s)
	case "play":
		return runPlayCLI(args, s)
	case "battle":
		return runBattleCLI(args, s)
	case "serve":
		return runServeCLI(args, s)
	case "history":
		return runHistoryCLI(args, s)
	case "config":
		return runConfigCLI(args, s)
	case "storage":
		return runStorageCLI(args, s)
	case "healthcheck":
		return runHealthcheckCLI(args, s)
	case "version", "--version", "-version":
		_, _ = fmt.Fprintln(s.out, version.String())
		return 0
	case "help", "-h", "--help":
		printUsage(s.out)
		return 0
	default:
		_, _ = fmt.Fprintf(s.err, "Unknown command: %s\n\n", cmd)
		printUsage(s.err)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  connect4 [menu]                     interactive main menu")
	_, _ = fmt.Fprintln(w, "  connect4 play                       play against the AI")
	_, _ = fmt.Fprintln(w, "  connect4 battle [--red N --yellow N] watch two AIs play")
	_, _ = fmt.Fprintln(w, "  connect4 serve                      run the HTTP game service")
	_, _ = fmt.Fprintln(w, "  connect4 history list|show|stats|export")
	_, _ = fmt.Fprintln(w, "  connect4 config validate|dump")
	_, _ = fmt.Fprintln(w, "  connect4 storage verify")
	_, _ = fmt.Fprintln(w, "  connect4 healthcheck [--mode ready|live]")
	_, _ = fmt.Fprintln(w, "  connect4 version")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Every command accepts --config PATH. Without it, $C4_DATA/config.yaml is used when present.")
}

// resolveConfigPath returns the explicit path or the auto-loaded one.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	dataDir := strings.TrimSpace(config.ParseString(config.EnvPrefix+"DATA", "data"))
	if dataDir == "" {
		return ""
	}
	autoPath := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(autoPath); err == nil {
		return autoPath
	}
	return ""
}

// loadConfig loads configuration and reconfigures logging from it.
// Interactive commands log to stderr in console format and stay quiet at info.
func loadConfig(explicit string, interactive bool, s streams) (config.AppConfig, error) {
	path := resolveConfigPath(explicit)
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		return cfg, err
	}

	level := cfg.LogLevel
	if interactive && (level == "" || level == "info") {
		level = "warn"
	}
	xglog.Configure(xglog.Config{
		Level:   level,
		Output:  s.err,
		Service: cfg.LogService,
		Version: cfg.Version,
		Console: interactive || cfg.LogConsole,
	})

	logger := xglog.WithComponent("cli")
	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str("event", "config.loaded").
		Str("source", source).
		Str("path", path).
		Msg("configuration loaded")
	return cfg, nil
}

func fail(s streams, format string, args ...any) int {
	_, _ = fmt.Fprintf(s.err, "Error: "+format+"\n", args...)
	return 1
}
