package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/park285/action-reaction-hints/internal/common/bootstrap"
	"github.com/park285/action-reaction-hints/internal/common/dbutil"
	"github.com/park285/action-reaction-hints/internal/common/health"
	"github.com/park285/action-reaction-hints/internal/common/httpserver"
	"github.com/park285/action-reaction-hints/internal/common/valkeyx"
	"github.com/park285/action-reaction-hints/internal/hints/cachestore"
	"github.com/park285/action-reaction-hints/internal/hints/config"
	"github.com/park285/action-reaction-hints/internal/hints/connectivity"
	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/httpapi"
	"github.com/park285/action-reaction-hints/internal/hints/kvstore"
	"github.com/park285/action-reaction-hints/internal/hints/remote"
	"github.com/park285/action-reaction-hints/internal/hints/service"
	"github.com/park285/action-reaction-hints/internal/hints/static"
)

const (
	serviceName     = "hints"
	shutdownTimeout = 10 * time.Second
)

func newHintCatalog(cfg *config.Config) (*content.Catalog, error) {
	catalog, err := content.LoadFile(cfg.Service.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("load hint content failed: %w", err)
	}
	return catalog, nil
}

// newHintKVStore: 설정된 백엔드의 키-값 저장소를 연결한다.
// 반환한 점검 함수는 /health 에 등록된다.
func newHintKVStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (kvstore.KeyValueStore, health.Check, func(), error) {
	switch cfg.Cache.Backend {
	case kvstore.BackendValkey:
		client, closeFn, err := bootstrap.NewAndPingValkeyClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init valkey failed: %w", err)
		}
		store := kvstore.NewValkeyStore(client, valkeyx.PrefixPattern(cfg.Cache.Prefix+"_"), logger)
		check := func(ctx context.Context) error { return valkeyx.Ping(ctx, client) }
		return store, check, closeFn, nil

	case kvstore.BackendPostgres:
		return newHintSQLStore(ctx, dbutil.PostgresOpener(cfg.Postgres), "postgres", logger)

	case kvstore.BackendSQLite:
		return newHintSQLStore(ctx, dbutil.SQLiteOpener(cfg.Cache.SQLitePath), "sqlite", logger)

	case kvstore.BackendMemory:
		logger.Warn("hint_cache_memory_backend", slog.String("reason", "entries are lost on restart"))
		return kvstore.NewMemoryStore(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown kv backend: %q", cfg.Cache.Backend)
	}
}

func newHintSQLStore(
	ctx context.Context,
	open dbutil.OpenFunc,
	name string,
	logger *slog.Logger,
) (kvstore.KeyValueStore, health.Check, func(), error) {
	db, sqlDB, err := dbutil.OpenWithRetry(ctx, open, dbutil.DefaultRetryConfig(), logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s failed: %w", name, err)
	}

	closeFn := func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Warn("db_close_failed", slog.String("backend", name), slog.Any("error", closeErr))
		}
	}

	store := kvstore.NewSQLStore(db)
	if err := store.AutoMigrate(ctx); err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return store, sqlPingCheck(sqlDB), closeFn, nil
}

func sqlPingCheck(sqlDB *sql.DB) health.Check {
	return func(ctx context.Context) error {
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("db ping failed: %w", err)
		}
		return nil
	}
}

// newHintProbe: 강제 모드가 있으면 고정 상태, 없으면 네트워크 인터페이스 점검을 쓴다.
func newHintProbe(cfg *config.Config, logger *slog.Logger) (connectivity.NetworkProbe, error) {
	forced, ok, err := connectivity.ForcedProbe(cfg.Connectivity.ForceMode)
	if err != nil {
		return nil, fmt.Errorf("init connectivity probe failed: %w", err)
	}
	if ok {
		logger.Info("connectivity_forced", slog.String("mode", cfg.Connectivity.ForceMode))
		return forced, nil
	}
	return connectivity.NewInterfaceProbe(cfg.InterfaceProbeConfig(), logger), nil
}

func newHintMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newHintService(
	cfg *config.Config,
	catalog *content.Catalog,
	kv kvstore.KeyValueStore,
	probe connectivity.NetworkProbe,
	reg prometheus.Registerer,
	logger *slog.Logger,
) (*service.HintService, *cachestore.Store, error) {
	remoteClient, err := remote.New(cfg.RemoteClientConfig(), catalog, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create remote hint client failed: %w", err)
	}

	cache := cachestore.New(kv, logger,
		cachestore.WithPrefix(cfg.Cache.Prefix),
		cachestore.WithTTL(cfg.Cache.TTL),
	)

	svc := service.New(
		cfg.ServiceOptions(),
		static.NewGenerator(catalog),
		remoteClient,
		connectivity.NewProber(probe, logger),
		cache,
		logger,
		service.WithMetrics(service.NewMetrics(reg)),
	)
	return svc, cache, nil
}

func newHintHTTPServer(
	cfg *config.Config,
	svc *service.HintService,
	cache *cachestore.Store,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *http.Server {
	handler := httpapi.NewHandler(svc, cache, gatherer, logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return httpserver.NewServer(addr, handler.Routes(), httpserver.ServerOptions{
		UseH2C:            true,
		ReadHeaderTimeout: cfg.ServerTuning.ReadHeaderTimeout,
		IdleTimeout:       cfg.ServerTuning.IdleTimeout,
		MaxHeaderBytes:    cfg.ServerTuning.MaxHeaderBytes,
		Operation:         "hint-api",
	})
}

func newHintServerApp(logger *slog.Logger, server *http.Server, svc *service.HintService) *bootstrap.ServerApp {
	return bootstrap.NewServerApp(
		serviceName,
		logger,
		server,
		shutdownTimeout,
		bootstrap.BackgroundTask{
			Name:        "hint_cache_drain",
			ErrorLogKey: "hint_cache_drain_failed",
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				svc.Wait()
				logger.Info("hint_cache_writes_drained")
				return nil
			},
		},
	)
}
