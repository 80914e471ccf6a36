// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/ManuGH/connect4/internal/console"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/history"
	"github.com/ManuGH/connect4/internal/match"
)

func runHistoryCLI(args []string, s streams) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printHistoryUsage(s.out)
		return 0
	}

	switch args[0] {
	case "list":
		return runHistoryList(args[1:], s)
	case "show":
		return runHistoryShow(args[1:], s)
	case "stats":
		return runHistoryStats(args[1:], s)
	case "export":
		return runHistoryExport(args[1:], s)
	default:
		_, _ = fmt.Fprintf(s.err, "Unknown subcommand: %s\n\n", args[0])
		printHistoryUsage(s.err)
		return 2
	}
}

func printHistoryUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  connect4 history list [--limit N] [--json]")
	_, _ = fmt.Fprintln(w, "  connect4 history show [--style emoji|ascii] ID")
	_, _ = fmt.Fprintln(w, "  connect4 history stats [--json]")
	_, _ = fmt.Fprintln(w, "  connect4 history export --out FILE [--limit N | --id ID]")
}

func openStore(configPath string, s streams) (history.Store, error) {
	cfg, err := loadConfig(configPath, true, s)
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(cfg.Store.Backend, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return history.Instrument(store), nil
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runHistoryList(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 history list", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "path to config file (YAML)")
	limit := fs.Int("limit", 20, "maximum number of matches, newest first (0 = all)")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := openStore(*configPath, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	defer store.Close()

	recs, err := store.List(context.Background(), *limit)
	if err != nil {
		return fail(s, "%v", err)
	}
	if *asJSON {
		if err := writeJSONTo(s.out, recs); err != nil {
			return fail(s, "%v", err)
		}
		return 0
	}
	if len(recs) == 0 {
		_, _ = fmt.Fprintln(s.out, "No matches recorded yet.")
		return 0
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tFINISHED\tMODE\tRED\tYELLOW\tOUTCOME\tMOVES")
	for _, r := range recs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.ID, r.FinishedAt.Local().Format(time.DateTime), r.Mode,
			r.RedLabel, r.YellowLabel, r.Outcome, len(r.Moves))
	}
	_ = tw.Flush()
	return 0
}

func runHistoryShow(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 history show", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "path to config file (YAML)")
	styleName := fs.String("style", "emoji", "board style: emoji or ascii")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		return fail(s, "history show needs exactly one match ID")
	}
	style, err := console.ParseStyle(*styleName)
	if err != nil {
		return fail(s, "%v", err)
	}

	store, err := openStore(*configPath, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), fs.Arg(0))
	if err != nil {
		return fail(s, "%v", err)
	}
	m, err := match.Replay(rec)
	if err != nil {
		return fail(s, "%v", err)
	}

	_, _ = fmt.Fprintf(s.out, "Match %s (%s)\n", rec.ID, rec.Mode)
	_, _ = fmt.Fprintf(s.out, "%s %s vs %s %s\n", style.Red, rec.RedLabel, style.Yellow, rec.YellowLabel)
	_, _ = fmt.Fprintf(s.out, "Result: %s after %d moves\n", rec.Outcome, len(rec.Moves))
	_, _ = fmt.Fprintln(s.out, game.Render(m.Board(), style))
	return 0
}

func runHistoryStats(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 history stats", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "path to config file (YAML)")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := openStore(*configPath, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	defer store.Close()

	st, err := store.Stats(context.Background())
	if err != nil {
		return fail(s, "%v", err)
	}
	if *asJSON {
		if err := writeJSONTo(s.out, st); err != nil {
			return fail(s, "%v", err)
		}
		return 0
	}

	keys := make([]string, 0, len(st.ByDifficulty))
	for k := range st.ByDifficulty {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DIFFICULTY\tYOU WON\tAI WON\tDRAWS")
	for _, k := range keys {
		t := st.ByDifficulty[k]
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", k, t.Wins, t.Losses, t.Draws)
	}
	_, _ = fmt.Fprintf(tw, "battles\t%d red\t%d yellow\t%d\n", st.Battles.RedWins, st.Battles.YellowWins, st.Battles.Draws)
	_ = tw.Flush()
	_, _ = fmt.Fprintf(s.out, "Total matches: %d\n", st.Total)
	return 0
}

func runHistoryExport(args []string, s streams) int {
	fs := flag.NewFlagSet("connect4 history export", flag.ContinueOnError)
	fs.SetOutput(s.err)
	configPath := fs.String("config", "", "path to config file (YAML)")
	out := fs.String("out", "", "destination JSON file (written atomically)")
	limit := fs.Int("limit", 0, "maximum number of matches (0 = all)")
	id := fs.String("id", "", "export a single match")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *out == "" {
		return fail(s, "--out is required")
	}

	store, err := openStore(*configPath, s)
	if err != nil {
		return fail(s, "%v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if *id != "" {
		rec, err := store.Get(ctx, *id)
		if err != nil {
			return fail(s, "%v", err)
		}
		if err := history.ExportRecord(ctx, rec, *out); err != nil {
			return fail(s, "%v", err)
		}
		_, _ = fmt.Fprintf(s.out, "Exported match %s to %s\n", rec.ID, *out)
		return 0
	}

	n, err := history.Export(ctx, store, *out, *limit)
	if err != nil {
		return fail(s, "%v", err)
	}
	_, _ = fmt.Fprintf(s.out, "Exported %d matches to %s\n", n, *out)
	return 0
}
