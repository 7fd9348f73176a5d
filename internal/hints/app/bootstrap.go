package app

import (
	"context"
	"log/slog"

	"github.com/park285/action-reaction-hints/internal/common/bootstrap"
	"github.com/park285/action-reaction-hints/internal/common/health"
	"github.com/park285/action-reaction-hints/internal/common/telemetry"
	"github.com/park285/action-reaction-hints/internal/hints/config"
)

// Initialize 는 힌트 서비스 의존성을 초기화하고 ServerApp을 반환한다.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	tracing, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, err
	}
	cleanupTracing := func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("otel_shutdown_failed", slog.Any("error", err))
		}
	}

	catalog, err := newHintCatalog(cfg)
	if err != nil {
		cleanupTracing()
		return nil, nil, err
	}

	kv, kvCheck, cleanupKV, err := newHintKVStore(ctx, cfg, logger)
	if err != nil {
		cleanupTracing()
		return nil, nil, err
	}
	if kvCheck != nil {
		health.Register("hint_cache", kvCheck)
	}

	probe, err := newHintProbe(cfg, logger)
	if err != nil {
		cleanupKV()
		cleanupTracing()
		return nil, nil, err
	}

	registry := newHintMetricsRegistry()
	svc, cache, err := newHintService(cfg, catalog, kv, probe, registry, logger)
	if err != nil {
		cleanupKV()
		cleanupTracing()
		return nil, nil, err
	}

	httpServer := newHintHTTPServer(cfg, svc, cache, registry, logger)
	serverApp := newHintServerApp(logger, httpServer, svc)

	logger.Info("hint_service_initialized",
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.String("remote_base_url", cfg.Remote.BaseURL),
		slog.Bool("tracing", tracing.IsEnabled()),
		slog.Bool("dedupe_inflight", cfg.Service.DedupeInFlight),
	)

	cleanup := func() {
		svc.Wait()
		cleanupKV()
		cleanupTracing()
	}
	return serverApp, cleanup, nil
}
