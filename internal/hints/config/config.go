package config

import (
	"fmt"
	"strings"
	"time"

	commonconfig "github.com/park285/action-reaction-hints/internal/common/config"
	"github.com/park285/action-reaction-hints/internal/hints/cachestore"
	"github.com/park285/action-reaction-hints/internal/hints/connectivity"
	"github.com/park285/action-reaction-hints/internal/hints/kvstore"
	"github.com/park285/action-reaction-hints/internal/hints/remote"
	"github.com/park285/action-reaction-hints/internal/hints/service"
)

// 기본값
const (
	DefaultServerPort   = 40310
	DefaultServiceName  = "action-reaction-hints"
	DefaultHintBaseURL  = "http://localhost:3000"
	DefaultAppSecret    = "dev-secret"
	DefaultSQLitePath   = "hints.db"
	DefaultRedisHost    = "localhost"
	DefaultRedisPort    = 6379
	defaultCacheTTLSecs = int64(cachestore.DefaultTTL / time.Second)
)

// ServerConfig: HTTP 서버 설정 alias
type ServerConfig = commonconfig.ServerConfig

// ServerTuningConfig: 서버 튜닝 설정 alias
type ServerTuningConfig = commonconfig.ServerTuningConfig

// RedisConfig: Valkey 연결 설정 alias
type RedisConfig = commonconfig.RedisConfig

// PostgresConfig: PostgreSQL 설정 alias
type PostgresConfig = commonconfig.PostgresConfig

// LogConfig: 파일 로그 설정 alias
type LogConfig = commonconfig.LogConfig

// RemoteConfig: 원격 힌트 API 설정
type RemoteConfig struct {
	BaseURL    string
	Path       string
	Secret     string
	Timeout    time.Duration
	Difficulty string
}

// CacheConfig: 힌트 캐시 설정
type CacheConfig struct {
	Backend    string
	Prefix     string
	TTL        time.Duration
	SQLitePath string
}

// ConnectivityConfig: 연결 상태 판정 설정
type ConnectivityConfig struct {
	CheckURL  string
	Timeout   time.Duration
	CacheTTL  time.Duration
	ForceMode string
}

// ServiceConfig: 오케스트레이터 설정
type ServiceConfig struct {
	PrefetchConcurrency int
	DedupeInFlight      bool
	ContentFile         string
}

// Config: 전체 애플리케이션 설정
type Config struct {
	Server       ServerConfig
	ServerTuning ServerTuningConfig
	Remote       RemoteConfig
	Cache        CacheConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
	Connectivity ConnectivityConfig
	Service      ServiceConfig
	Log          LogConfig
	Telemetry    commonconfig.TelemetryConfig
}

// RemoteClientConfig: remote.Config 로 변환한다.
func (c *Config) RemoteClientConfig() remote.Config {
	return remote.Config{
		BaseURL: c.Remote.BaseURL,
		Path:    c.Remote.Path,
		Secret:  c.Remote.Secret,
		Timeout: c.Remote.Timeout,
	}
}

// ServiceOptions: service.Config 로 변환한다.
func (c *Config) ServiceOptions() service.Config {
	return service.Config{
		Difficulty:          c.Remote.Difficulty,
		PrefetchConcurrency: c.Service.PrefetchConcurrency,
		DedupeInFlight:      c.Service.DedupeInFlight,
	}
}

// InterfaceProbeConfig: connectivity.InterfaceProbeConfig 로 변환한다.
func (c *Config) InterfaceProbeConfig() connectivity.InterfaceProbeConfig {
	return connectivity.InterfaceProbeConfig{
		CheckURL: c.Connectivity.CheckURL,
		Timeout:  c.Connectivity.Timeout,
		CacheTTL: c.Connectivity.CacheTTL,
	}
}

// LoadFromEnv: 환경 변수로부터 전체 설정을 로드합니다.
func LoadFromEnv() (*Config, error) {
	server, err := commonconfig.ReadServerConfigFromEnv(DefaultServerPort)
	if err != nil {
		return nil, fmt.Errorf("read server config: %w", err)
	}
	serverTuning, err := commonconfig.ReadServerTuningConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read server tuning config: %w", err)
	}
	remoteCfg, err := readRemoteConfig()
	if err != nil {
		return nil, err
	}
	cache, err := readCacheConfig()
	if err != nil {
		return nil, err
	}
	redis, err := commonconfig.ReadRedisConfigFromEnv(
		[]string{"CACHE_HOST", "REDIS_HOST"},
		[]string{"CACHE_PORT", "REDIS_PORT"},
		[]string{"CACHE_PASSWORD", "REDIS_PASSWORD"},
		DefaultRedisHost,
		DefaultRedisPort,
	)
	if err != nil {
		return nil, fmt.Errorf("read redis config: %w", err)
	}
	postgres, err := commonconfig.ReadPostgresConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read postgres config: %w", err)
	}
	conn, err := readConnectivityConfig()
	if err != nil {
		return nil, err
	}
	svc, err := readServiceConfig()
	if err != nil {
		return nil, err
	}
	log, err := commonconfig.ReadLogConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read log config: %w", err)
	}
	telemetry, err := commonconfig.ReadTelemetryConfigFromEnv(DefaultServiceName)
	if err != nil {
		return nil, fmt.Errorf("read telemetry config: %w", err)
	}

	return &Config{
		Server:       server,
		ServerTuning: serverTuning,
		Remote:       remoteCfg,
		Cache:        cache,
		Redis:        redis,
		Postgres:     postgres,
		Connectivity: conn,
		Service:      svc,
		Log:          log,
		Telemetry:    telemetry,
	}, nil
}

func readRemoteConfig() (RemoteConfig, error) {
	timeout, err := commonconfig.DurationMillisFromEnv("HINT_API_TIMEOUT_MS", remote.DefaultTimeout.Milliseconds())
	if err != nil {
		return RemoteConfig{}, fmt.Errorf("read HINT_API_TIMEOUT_MS failed: %w", err)
	}
	if timeout == 0 {
		return RemoteConfig{}, fmt.Errorf("invalid HINT_API_TIMEOUT_MS: must be positive")
	}

	return RemoteConfig{
		BaseURL:    strings.TrimRight(commonconfig.StringFromEnv("HINT_API_BASE_URL", DefaultHintBaseURL), "/"),
		Path:       commonconfig.StringFromEnv("HINT_API_PATH", remote.DefaultPath),
		Secret:     commonconfig.StringFromEnvFirstNonEmpty([]string{"HINT_APP_SECRET", "APP_SECRET"}, DefaultAppSecret),
		Timeout:    timeout,
		Difficulty: commonconfig.StringFromEnv("HINT_DEFAULT_DIFFICULTY", service.DefaultDifficulty),
	}, nil
}

func readCacheConfig() (CacheConfig, error) {
	backend, err := kvstore.ParseBackend(commonconfig.StringFromEnv("HINT_CACHE_BACKEND", kvstore.BackendValkey))
	if err != nil {
		return CacheConfig{}, fmt.Errorf("read HINT_CACHE_BACKEND failed: %w", err)
	}
	ttl, err := commonconfig.DurationSecondsFromEnv("HINT_CACHE_TTL_SECONDS", defaultCacheTTLSecs)
	if err != nil {
		return CacheConfig{}, fmt.Errorf("read HINT_CACHE_TTL_SECONDS failed: %w", err)
	}
	if ttl == 0 {
		return CacheConfig{}, fmt.Errorf("invalid HINT_CACHE_TTL_SECONDS: must be positive")
	}

	return CacheConfig{
		Backend:    backend,
		Prefix:     commonconfig.StringFromEnv("HINT_CACHE_PREFIX", cachestore.DefaultPrefix),
		TTL:        ttl,
		SQLitePath: commonconfig.StringFromEnv("HINT_SQLITE_PATH", DefaultSQLitePath),
	}, nil
}

func readConnectivityConfig() (ConnectivityConfig, error) {
	timeout, err := commonconfig.DurationMillisFromEnv("CONNECTIVITY_CHECK_TIMEOUT_MS", connectivity.DefaultCheckTimeout.Milliseconds())
	if err != nil {
		return ConnectivityConfig{}, fmt.Errorf("read CONNECTIVITY_CHECK_TIMEOUT_MS failed: %w", err)
	}
	cacheTTL, err := commonconfig.DurationMillisFromEnv("CONNECTIVITY_CACHE_TTL_MS", connectivity.DefaultCacheTTL.Milliseconds())
	if err != nil {
		return ConnectivityConfig{}, fmt.Errorf("read CONNECTIVITY_CACHE_TTL_MS failed: %w", err)
	}

	forceMode := strings.ToLower(commonconfig.StringFromEnv("CONNECTIVITY_FORCE_MODE", ""))
	if _, _, err := connectivity.ForcedProbe(forceMode); err != nil {
		return ConnectivityConfig{}, fmt.Errorf("read CONNECTIVITY_FORCE_MODE failed: %w", err)
	}

	return ConnectivityConfig{
		CheckURL:  commonconfig.StringFromEnv("CONNECTIVITY_CHECK_URL", ""),
		Timeout:   timeout,
		CacheTTL:  cacheTTL,
		ForceMode: forceMode,
	}, nil
}

func readServiceConfig() (ServiceConfig, error) {
	concurrency, err := commonconfig.IntFromEnv("HINT_PREFETCH_CONCURRENCY", service.DefaultPrefetchConcurrency)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("read HINT_PREFETCH_CONCURRENCY failed: %w", err)
	}
	if concurrency <= 0 {
		return ServiceConfig{}, fmt.Errorf("invalid HINT_PREFETCH_CONCURRENCY: %d", concurrency)
	}
	dedupe, err := commonconfig.BoolFromEnv("HINT_DEDUPE_INFLIGHT", false)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("read HINT_DEDUPE_INFLIGHT failed: %w", err)
	}

	return ServiceConfig{
		PrefetchConcurrency: concurrency,
		DedupeInFlight:      dedupe,
		ContentFile:         commonconfig.StringFromEnv("HINT_CONTENT_FILE", ""),
	}, nil
}
