// SPDX-License-Identifier: MIT

// Package daemon provides the core daemon bootstrapping and lifecycle management.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/connect4/internal/api"
	"github.com/ManuGH/connect4/internal/api/middleware"
	"github.com/ManuGH/connect4/internal/cache"
	"github.com/ManuGH/connect4/internal/config"
	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/health"
	"github.com/ManuGH/connect4/internal/history"
	"github.com/ManuGH/connect4/internal/log"
	"github.com/ManuGH/connect4/internal/telemetry"
)

// Core holds the components shared by the terminal game and the service.
type Core struct {
	Config    config.AppConfig
	Engine    *engine.Engine
	Store     history.Store
	Cache     cache.Cache
	Telemetry *telemetry.Provider

	logger zerolog.Logger
}

// NewCore builds telemetry, cache, engine and history store from cfg.
// The caller owns the result and must Close it.
func NewCore(ctx context.Context, cfg config.AppConfig) (*Core, error) {
	logger := log.WithComponent("daemon")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		// tracing is optional; a broken collector config must not stop the game
		logger.Warn().Err(err).
			Str("event", "telemetry.init_failed").
			Msg("telemetry initialization failed, continuing without tracing")
		tp, _ = telemetry.NewProvider(ctx, telemetry.Config{})
	} else if cfg.Telemetry.Enabled {
		logger.Info().
			Str("endpoint", cfg.Telemetry.Endpoint).
			Str("exporter", cfg.Telemetry.Exporter).
			Float64("sampling_rate", cfg.Telemetry.SamplingRate).
			Msg("telemetry initialized")
	}

	c, err := cache.New(cache.Config{
		Backend:         cfg.Cache.Backend,
		MaxEntries:      cfg.Cache.MaxEntries,
		CleanupInterval: cfg.Cache.CleanupInterval,
		Redis: cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		},
	}, log.WithComponent("cache"))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("cache: %w", err)
	}

	store, err := history.NewStore(cfg.Store.Backend, cfg.DataDir)
	if err != nil {
		_ = c.Close()
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("history store: %w", err)
	}

	eng := engine.New(engine.Config{
		Cache:      c,
		CacheTTL:   cfg.Cache.TTL,
		MaxWorkers: cfg.Engine.MaxWorkers,
		Seed:       cfg.Engine.Seed,
	})

	logger.Info().
		Str("store", store.Backend()).
		Str("cache", c.Backend()).
		Str("data_dir", cfg.DataDir).
		Msg("core initialized")

	return &Core{
		Config:    cfg,
		Engine:    eng,
		Store:     history.Instrument(store),
		Cache:     c,
		Telemetry: tp,
		logger:    logger,
	}, nil
}

// Close releases the store, cache and tracer provider.
func (c *Core) Close(ctx context.Context) error {
	var errs []error
	if err := c.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if err := c.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close cache: %w", err))
	}
	if err := c.Telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
	}
	return errors.Join(errs...)
}

// HealthManager builds health checks for the core components.
func (c *Core) HealthManager() *health.Manager {
	hm := health.NewManager(c.Config.Version)
	hm.RegisterChecker(health.NewDataDirChecker(c.Config.DataDir))
	if chk, ok := c.Store.(history.Checker); ok {
		hm.RegisterChecker(health.NewFuncChecker("history_store", true, chk.Check))
	}
	if rc, ok := c.Cache.(*cache.RedisCache); ok {
		hm.RegisterChecker(health.NewFuncChecker("analysis_cache", false, rc.HealthCheck))
	}
	return hm
}

// Service is the assembled HTTP game service.
type Service struct {
	App      *App
	Manager  Manager
	Server   *api.Server
	Registry *api.Registry
	Config   *config.Holder
}

// NewService wires the API and metrics servers around core. The core is
// closed by the manager's last shutdown hook.
func NewService(core *Core) (*Service, error) {
	cfg := core.Config

	registry := api.NewRegistry(api.RegistryConfig{
		IdleTTL:  cfg.API.GameIdleTTL,
		MaxGames: cfg.API.MaxGames,
		Store:    core.Store,
	})

	limiter := api.NewAnalyzeLimiter(cfg.API.AnalyzeRate, cfg.API.AnalyzeBurst)

	tracing := ""
	if cfg.Telemetry.Enabled {
		tracing = cfg.LogService
	}
	srv := api.New(api.Config{
		Engine:   core.Engine,
		Store:    core.Store,
		Health:   core.HealthManager(),
		Registry: registry,
		Stack: middleware.StackConfig{
			EnableMetrics:  cfg.Metrics.Enabled,
			TracingService: tracing,
			EnableLogging:  true,
			RateLimit:      cfg.API.RateLimit,
			RateWindow:     cfg.API.RateWindow,
		},
		SearchTimeout:  cfg.API.WriteTimeout,
		AnalyzeLimiter: limiter,
	})

	var metricsHandler http.Handler
	metricsAddr := ""
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsHandler = mux
		metricsAddr = cfg.Metrics.ListenAddr
	}

	mgr, err := NewManager(ServerConfig{
		ListenAddr:      cfg.API.ListenAddr,
		MetricsAddr:     metricsAddr,
		ReadTimeout:     cfg.API.ReadTimeout,
		WriteTimeout:    cfg.API.WriteTimeout,
		IdleTimeout:     2 * cfg.API.ReadTimeout,
		ShutdownTimeout: cfg.API.ShutdownTimeout,
	}, Deps{
		Logger:         log.WithComponent("daemon"),
		APIHandler:     srv.Handler(),
		MetricsHandler: metricsHandler,
	})
	if err != nil {
		return nil, err
	}
	mgr.RegisterShutdownHook("core", core.Close)

	holder := config.NewHolder(cfg, config.NewLoader(cfg.ConfigPath, cfg.Version))
	holder.OnReload(func(_, cur config.AppConfig) {
		if err := log.SetLevel(cur.LogLevel); err != nil {
			core.logger.Warn().Err(err).Msg("ignoring invalid log level")
		}
		api.SetAnalyzeRate(limiter, cur.API.AnalyzeRate, cur.API.AnalyzeBurst)
	})

	sweep := cfg.Cache.CleanupInterval
	app := NewApp(log.WithComponent("app"), mgr,
		Worker{
			Name: "registry-janitor",
			Run:  func(ctx context.Context) error { return registry.Run(ctx, sweep) },
		},
		Worker{
			Name: "config-watcher",
			Run: func(ctx context.Context) error {
				// hot reload is optional; keep serving without it
				if err := holder.Watch(ctx); err != nil {
					core.logger.Warn().Err(err).Msg("config hot reload disabled")
					<-ctx.Done()
				}
				return nil
			},
		},
	)

	return &Service{App: app, Manager: mgr, Server: srv, Registry: registry, Config: holder}, nil
}

// WaitForShutdown returns a context cancelled on interrupt or termination.
func WaitForShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
