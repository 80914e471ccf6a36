// SPDX-License-Identifier: MIT

package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/connect4/internal/config"
	"github.com/ManuGH/connect4/internal/health"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.DataDir = t.TempDir()
	cfg.API.ListenAddr = reserveListenAddr(t)
	cfg.Metrics.ListenAddr = reserveListenAddr(t)
	cfg.API.ShutdownTimeout = 2 * time.Second
	cfg.Cache.CleanupInterval = 10 * time.Millisecond
	cfg.Engine.Seed = 42
	return cfg
}

func TestNewCore_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Store.Backend = "badger"
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = mr.Addr()

	core, err := NewCore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "badger", core.Store.Backend())
	assert.Equal(t, "redis", core.Cache.Backend())

	hr := core.HealthManager().Health(context.Background(), true)
	assert.Equal(t, health.StatusHealthy, hr.Status)
	assert.Contains(t, hr.Checks, "analysis_cache")

	require.NoError(t, core.Close(context.Background()))
}

func TestNewCore_InvalidBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = "postgres"
	_, err := NewCore(context.Background(), cfg)
	assert.ErrorContains(t, err, "history store")

	cfg = testConfig(t)
	cfg.Cache.Backend = "memcached"
	_, err = NewCore(context.Background(), cfg)
	assert.ErrorContains(t, err, "cache")
}

func TestService_EndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	defer http.DefaultClient.CloseIdleConnections()

	cfg := testConfig(t)
	core, err := NewCore(context.Background(), cfg)
	require.NoError(t, err)
	svc, err := NewService(core)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.App.Run(ctx) }()
	require.NoError(t, waitForListen(cfg.API.ListenAddr, 2*time.Second))
	require.NoError(t, waitForListen(cfg.Metrics.ListenAddr, 2*time.Second))

	base := "http://" + cfg.API.ListenAddr
	resp, err := http.Get(base + "/readyz?verbose=true") //nolint:noctx
	require.NoError(t, err)
	var ready health.ReadinessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ready))
	_ = resp.Body.Close()
	assert.True(t, ready.Ready)
	assert.Contains(t, ready.Checks, "history_store")

	resp, err = http.Post(base+"/api/v1/games", "application/json", bytes.NewReader([]byte(`{"difficulty":"1"}`))) //nolint:noctx
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, svc.Registry.Len())

	metrics := get(t, "http://"+cfg.Metrics.ListenAddr+"/metrics")
	assert.True(t, strings.Contains(metrics, "connect4_games_started_total"), "business metrics are exported")
	assert.Contains(t, metrics, "connect4_http_request_duration_seconds")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestService_ConfigReload(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	cfg := testConfig(t)
	cfg.ConfigPath = filepath.Join(t.TempDir(), "connect4.yaml")
	write := func(body string) {
		require.NoError(t, os.WriteFile(cfg.ConfigPath, []byte("dataDir: "+cfg.DataDir+"\n"+body), 0600))
	}
	write("logLevel: info\n")

	core, err := NewCore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = core.Close(context.Background()) }()
	svc, err := NewService(core)
	require.NoError(t, err)

	write("logLevel: error\napi:\n  analyzeRate: 0\n")
	require.NoError(t, svc.Config.Reload())
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.Zero(t, svc.Config.Get().API.AnalyzeRate)
}
