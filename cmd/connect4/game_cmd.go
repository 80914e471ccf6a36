// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManuGH/connect4/internal/config"
	"github.com/ManuGH/connect4/internal/console"
	"github.com/ManuGH/connect4/internal/daemon"
)

type gameFlags struct {
	configPath string
	pacing     time.Duration
	style      string
	red        int
	yellow     int
}

func newGameFlagSet(name string, s streams, withDepths bool) (*flag.FlagSet, *gameFlags) {
	f := &gameFlags{pacing: -1}
	fs := flag.NewFlagSet("connect4 "+name, flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.StringVar(&f.configPath, "config", "", "path to config file (YAML)")
	fs.DurationVar(&f.pacing, "pacing", -1, "delay between thinking dots and battle moves (default from config)")
	fs.StringVar(&f.style, "style", "", "board style: emoji or ascii (default from config)")
	if withDepths {
		fs.IntVar(&f.red, "red", 0, "search depth of the red AI (default from config)")
		fs.IntVar(&f.yellow, "yellow", 0, "search depth of the yellow AI (default from config)")
	}
	return fs, f
}

// withConsole loads config, builds the core and runs fn with a console
// bound to the given streams. Ctrl-C cancels the game.
func withConsole(f *gameFlags, s streams, fn func(ctx context.Context, c *console.Console) error) int {
	cfg, err := loadConfig(f.configPath, true, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	applyGameFlags(&cfg, f)

	style, err := console.ParseStyle(cfg.Console.Style)
	if err != nil {
		return fail(s, "%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := daemon.NewCore(ctx, cfg)
	if err != nil {
		return fail(s, "%v", err)
	}
	defer func() { _ = core.Close(context.Background()) }()

	c := console.New(console.Config{
		In:          s.in,
		Out:         s.out,
		Engine:      core.Engine,
		Store:       core.Store,
		Style:       style,
		Pacing:      cfg.Console.Pacing,
		RedDepth:    cfg.Console.RedDepth,
		YellowDepth: cfg.Console.YellowDepth,
	})

	if err := fn(ctx, c); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, console.ErrInputClosed) {
			return 0
		}
		return fail(s, "%v", err)
	}
	return 0
}

func applyGameFlags(cfg *config.AppConfig, f *gameFlags) {
	if f.pacing >= 0 {
		cfg.Console.Pacing = f.pacing
	}
	if f.style != "" {
		cfg.Console.Style = f.style
	}
	if f.red > 0 {
		cfg.Console.RedDepth = f.red
	}
	if f.yellow > 0 {
		cfg.Console.YellowDepth = f.yellow
	}
}

func runMenuCLI(args []string, s streams) int {
	fs, f := newGameFlagSet("menu", s, true)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	return withConsole(f, s, func(ctx context.Context, c *console.Console) error {
		return c.Run(ctx)
	})
}

func runPlayCLI(args []string, s streams) int {
	fs, f := newGameFlagSet("play", s, false)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	return withConsole(f, s, func(ctx context.Context, c *console.Console) error {
		return c.Play(ctx)
	})
}

func runBattleCLI(args []string, s streams) int {
	fs, f := newGameFlagSet("battle", s, true)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	return withConsole(f, s, func(ctx context.Context, c *console.Console) error {
		_, err := c.Battle(ctx)
		return err
	})
}
