// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FuncChecker adapts a check function. A failing critical check makes the
// service unhealthy; a failing optional one only degrades it.
type FuncChecker struct {
	name     string
	critical bool
	check    func(ctx context.Context) error
}

// NewFuncChecker creates a checker that calls check.
func NewFuncChecker(name string, critical bool, check func(ctx context.Context) error) *FuncChecker {
	return &FuncChecker{name: name, critical: critical, check: check}
}

func (c *FuncChecker) Name() string { return c.name }

func (c *FuncChecker) Check(ctx context.Context) CheckResult {
	if err := c.check(ctx); err != nil {
		status := StatusDegraded
		if c.critical {
			status = StatusUnhealthy
		}
		return CheckResult{Status: status, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}

// DataDirChecker verifies the data directory exists and is writable.
type DataDirChecker struct {
	path string
}

// NewDataDirChecker creates a checker for path. An empty path means
// persistence is disabled.
func NewDataDirChecker(path string) *DataDirChecker {
	return &DataDirChecker{path: path}
}

func (c *DataDirChecker) Name() string { return "data_dir" }

func (c *DataDirChecker) Check(_ context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{Status: StatusHealthy, Message: "not configured (in-memory)"}
	}

	info, err := os.Stat(c.path)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if !info.IsDir() {
		return CheckResult{Status: StatusUnhealthy, Error: "path is not a directory", Message: c.path}
	}

	marker := filepath.Join(c.path, ".write_test")
	if err := os.WriteFile(marker, []byte("ok"), 0600); err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: fmt.Sprintf("directory is not writable: %v", err)}
	}
	_ = os.Remove(marker)

	return CheckResult{Status: StatusHealthy, Message: "writable"}
}
