// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"flag"

	"github.com/ManuGH/connect4/internal/daemon"
	xglog "github.com/ManuGH/connect4/internal/log"
)

func runServeCLI(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 serve", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "path to config file (YAML)")
	listen := fs.String("listen", "", "API listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, false, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	if *listen != "" {
		cfg.API.ListenAddr = *listen
	}
	logger := xglog.WithComponent("serve")

	ctx, stop := daemon.WaitForShutdown()
	defer stop()

	core, err := daemon.NewCore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("event", "startup.failed").Msg("failed to initialize core")
		return 1
	}
	svc, err := daemon.NewService(core)
	if err != nil {
		_ = core.Close(ctx)
		logger.Error().Err(err).Str("event", "startup.failed").Msg("failed to build service")
		return 1
	}

	logger.Info().
		Str("version", cfg.Version).
		Str("listen", cfg.API.ListenAddr).
		Msg("starting connect4 service")

	if err := svc.App.Run(ctx); err != nil {
		logger.Error().Err(err).Str("event", "service.failed").Msg("service stopped with error")
		return 1
	}
	logger.Info().Msg("service stopped")
	return 0
}
