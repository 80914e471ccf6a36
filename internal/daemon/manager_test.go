// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/connect4/internal/log"
)

func reserveListenAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func waitForListen(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return errors.New("listen timeout")
}

func testDeps() Deps {
	return Deps{
		Logger: log.WithComponent("test"),
		APIHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("api"))
		}),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(ServerConfig{}, testDeps())
	require.NoError(t, err)

	deps := testDeps()
	deps.Logger = zerolog.Nop()
	_, err = NewManager(ServerConfig{}, deps)
	assert.ErrorIs(t, err, ErrMissingLogger)

	deps = testDeps()
	deps.APIHandler = nil
	_, err = NewManager(ServerConfig{}, deps)
	assert.ErrorIs(t, err, ErrMissingAPIHandler)
}

func TestManager_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	defer http.DefaultClient.CloseIdleConnections()

	apiAddr, metricsAddr := reserveListenAddr(t), reserveListenAddr(t)
	mgr, err := NewManager(ServerConfig{
		ListenAddr:      apiAddr,
		MetricsAddr:     metricsAddr,
		ShutdownTimeout: 2 * time.Second,
	}, testDeps())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Start(ctx) }()

	require.NoError(t, waitForListen(apiAddr, 2*time.Second))
	require.NoError(t, waitForListen(metricsAddr, 2*time.Second))
	assert.Equal(t, "api", get(t, "http://"+apiAddr+"/"))
	assert.Equal(t, "metrics", get(t, "http://"+metricsAddr+"/"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop")
	}

	assert.ErrorIs(t, mgr.Start(context.Background()), ErrManagerAlreadyStarted)
	assert.NoError(t, mgr.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestManager_ShutdownBeforeStart(t *testing.T) {
	mgr, err := NewManager(ServerConfig{}, testDeps())
	require.NoError(t, err)
	assert.ErrorIs(t, mgr.Shutdown(context.Background()), ErrManagerNotStarted)
}

func TestManager_BindFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	mgr, err := NewManager(ServerConfig{ListenAddr: ln.Addr().String()}, testDeps())
	require.NoError(t, err)

	var hookRan bool
	mgr.RegisterShutdownHook("cleanup", func(context.Context) error {
		hookRan = true
		return nil
	})

	err = mgr.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start API server")
	assert.True(t, hookRan, "hooks run even when startup fails")
}

func TestManager_HooksRunLIFO(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	addr := reserveListenAddr(t)
	mgr, err := NewManager(ServerConfig{ListenAddr: addr}, testDeps())
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string, err error) ShutdownHook {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return err
		}
	}
	mgr.RegisterShutdownHook("first", record("first", nil))
	mgr.RegisterShutdownHook("second", record("second", errors.New("boom")))
	mgr.RegisterShutdownHook("third", record("third", nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Start(ctx) }()
	require.NoError(t, waitForListen(addr, 2*time.Second))
	cancel()

	err = <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook second: boom")
	assert.Equal(t, []string{"third", "second", "first"}, order)
}
