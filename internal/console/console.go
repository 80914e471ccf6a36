// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package console is the interactive terminal front-end: the main menu,
// human versus AI games and AI battles.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/history"
	xglog "github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/match"
)

// ErrInputClosed is returned when input ends in the middle of a prompt.
var ErrInputClosed = errors.New("input closed")

const clearSequence = "\033[H\033[2J"

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config wires a Console.
type Config struct {
	In     io.Reader
	Out    io.Writer
	Engine *engine.Engine
	// Store receives every finished match. Nil disables saving.
	Store history.Store
	Style game.Style
	// Pacing is the delay between thinking dots and between battle moves.
	Pacing      time.Duration
	RedDepth    int
	YellowDepth int
	// Sleep defaults to a context-aware timer.
	Sleep SleepFunc
	// Clear overrides terminal detection for screen clearing.
	Clear *bool
}

// Console runs the terminal game.
type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	engine      *engine.Engine
	store       history.Store
	style       game.Style
	pacing      time.Duration
	redDepth    int
	yellowDepth int
	sleepFn     SleepFunc
	clear       bool
	logger      zerolog.Logger
}

// New creates a Console. Zero values fall back to stdin, stdout, the
// emoji style and the default battle depths.
func New(cfg Config) *Console {
	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	style := cfg.Style
	if style == (game.Style{}) {
		style = game.StyleEmoji
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	clear := isTerminal(out)
	if cfg.Clear != nil {
		clear = *cfg.Clear
	}
	red, yellow := cfg.RedDepth, cfg.YellowDepth
	if red == 0 {
		red = match.DefaultRedDepth
	}
	if yellow == 0 {
		yellow = match.DefaultYellowDepth
	}
	return &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		engine:      cfg.Engine,
		store:       cfg.Store,
		style:       style,
		pacing:      cfg.Pacing,
		redDepth:    red,
		yellowDepth: yellow,
		sleepFn:     sleep,
		clear:       clear,
		logger:      xglog.WithComponent("console"),
	}
}

// ParseStyle maps a configured style name to board glyphs.
func ParseStyle(name string) (game.Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "emoji":
		return game.StyleEmoji, nil
	case "ascii":
		return game.StyleASCII, nil
	}
	return game.Style{}, fmt.Errorf("unknown console style %q (supported: emoji, ascii)", name)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Console) sleep(ctx context.Context, d time.Duration) error {
	return c.sleepFn(ctx, d)
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}

func (c *Console) clearScreen() {
	if c.clear {
		_, _ = io.WriteString(c.out, clearSequence)
	}
}

func (c *Console) render(b game.Board) {
	c.println(game.Render(b, c.style))
}

// prompt prints label and reads one trimmed line.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		c.println("")
		return "", fmt.Errorf("%w: %w", ErrInputClosed, io.EOF)
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// save stores a finished match. Failures are logged, never fatal to the game.
func (c *Console) save(ctx context.Context, m *match.Match) {
	if c.store == nil || !m.Finished() {
		return
	}
	if err := c.store.Save(context.WithoutCancel(ctx), m.Record()); err != nil {
		c.logger.Error().Err(err).
			Str(xglog.FieldEvent, "console.save_failed").
			Str(xglog.FieldMatchID, m.ID).
			Msg("failed to save match")
		return
	}
	c.logger.Debug().
		Str(xglog.FieldEvent, "console.saved").
		Str(xglog.FieldMatchID, m.ID).
		Str(xglog.FieldOutcome, m.Outcome().String()).
		Msg("match saved")
}
