package main

import (
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"
)

func runHealthcheckCLI(args []string, s streams) int {
	fs := flag.NewFlagSet("healthcheck", flag.ContinueOnError)
	fs.SetOutput(s.err)
	mode := fs.String("mode", "ready", "healthcheck mode: ready (default) or live")
	addr := fs.String("addr", "localhost:8080", "API address to check (host:port or URL)")
	timeout := fs.Duration("timeout", 5*time.Second, "check timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := "/healthz"
	if *mode == "ready" {
		path = "/readyz"
	}

	base := strings.TrimRight(*addr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	client := http.Client{
		Timeout: *timeout,
	}

	resp, err := client.Get(base + path)
	if err != nil {
		_, _ = fmt.Fprintf(s.err, "Healthcheck failed (network): %v\n", err)
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = fmt.Fprintf(s.err, "Healthcheck failed (status): %d %s\n", resp.StatusCode, resp.Status)
		return 1
	}

	_, _ = fmt.Fprintf(s.out, "Healthcheck successful (%s)\n", *mode)
	return 0
}
