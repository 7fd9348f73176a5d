package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ReadServerConfigFromEnv: HTTP 서버 호스트와 포트 설정을 환경 변수에서 읽어옵니다.
func ReadServerConfigFromEnv(defaultPort int) (ServerConfig, error) {
	serverPort, err := IntFromEnv("SERVER_PORT", defaultPort)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read SERVER_PORT failed: %w", err)
	}

	return ServerConfig{
		Host: StringFromEnv("SERVER_HOST", "0.0.0.0"),
		Port: serverPort,
	}, nil
}

// ReadServerTuningConfigFromEnv: HTTP 서버 튜닝 설정(Timeouts, Limits)을 환경 변수에서 읽어옵니다.
func ReadServerTuningConfigFromEnv() (ServerTuningConfig, error) {
	readHeaderTimeout, err := DurationSecondsFromEnv("SERVER_READ_HEADER_TIMEOUT_SECONDS", 5)
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_READ_HEADER_TIMEOUT_SECONDS failed: %w", err)
	}

	// 명시적으로 0을 주면 비활성화
	idleTimeout, err := DurationSecondsFromEnv("SERVER_IDLE_TIMEOUT_SECONDS", 90)
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_IDLE_TIMEOUT_SECONDS failed: %w", err)
	}

	maxHeaderBytes, err := IntFromEnv("SERVER_MAX_HEADER_BYTES", 1<<20) // 1MiB
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read SERVER_MAX_HEADER_BYTES failed: %w", err)
	}
	if maxHeaderBytes < 0 {
		return ServerTuningConfig{}, fmt.Errorf("invalid SERVER_MAX_HEADER_BYTES: %d", maxHeaderBytes)
	}

	return ServerTuningConfig{
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}, nil
}

// ReadRedisConfigFromEnv: Redis(Valkey) 연결 설정을 환경 변수에서 읽어옵니다.
// 여러 환경 변수 키 중 첫 번째로 값이 존재하는 것을 사용합니다.
func ReadRedisConfigFromEnv(
	hostKeys []string,
	portKeys []string,
	passwordKeys []string,
	defaultHost string,
	defaultPort int,
) (RedisConfig, error) {
	port, err := IntFromEnvFirstNonEmpty(portKeys, defaultPort)
	if err != nil {
		return RedisConfig{}, fmt.Errorf("read redis port failed: %w", err)
	}

	db, err := IntFromEnvFirstNonEmpty([]string{"CACHE_DB", "REDIS_DB"}, 0)
	if err != nil {
		return RedisConfig{}, fmt.Errorf("read redis db failed: %w", err)
	}

	return RedisConfig{
		Host:     StringFromEnvFirstNonEmpty(hostKeys, defaultHost),
		Port:     port,
		Password: StringFromEnvFirstNonEmpty(passwordKeys, ""),
		DB:       db,

		DialTimeout:  10 * time.Second,
		WriteTimeout: 3 * time.Second,
	}, nil
}

// ReadPostgresConfigFromEnv: PostgreSQL 접속 설정을 환경 변수에서 읽어옵니다.
func ReadPostgresConfigFromEnv() (PostgresConfig, error) {
	port, err := IntFromEnvFirstNonEmpty([]string{"DB_PORT", "POSTGRES_PORT"}, 5432)
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("read postgres port failed: %w", err)
	}

	return PostgresConfig{
		Host:     StringFromEnvFirstNonEmpty([]string{"DB_HOST", "POSTGRES_HOST"}, "localhost"),
		Port:     port,
		Name:     StringFromEnvFirstNonEmpty([]string{"DB_NAME", "POSTGRES_DB"}, "action_reaction"),
		User:     StringFromEnvFirstNonEmpty([]string{"DB_USER", "POSTGRES_USER"}, "action_reaction"),
		Password: StringFromEnvFirstNonEmpty([]string{"DB_PASSWORD", "POSTGRES_PASSWORD"}, ""),
		SSLMode:  StringFromEnvFirstNonEmpty([]string{"DB_SSLMODE", "POSTGRES_SSLMODE"}, "disable"),
	}, nil
}

// ReadLogConfigFromEnv: 로그 레벨과 파일 출력 설정(디렉터리, 크기, 백업 수)을 환경 변수에서 읽어옵니다.
func ReadLogConfigFromEnv() (LogConfig, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(StringFromEnv("LOG_LEVEL", "info"))); err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_LEVEL failed: %w", err)
	}

	dir := StringFromEnv("LOG_DIR", "")
	if strings.TrimSpace(dir) == "" {
		return LogConfig{Level: level}, nil
	}

	maxSizeMB, err := IntFromEnv("LOG_FILE_MAX_SIZE_MB", 1)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_SIZE_MB failed: %w", err)
	}
	maxBackups, err := IntFromEnv("LOG_FILE_MAX_BACKUPS", 30)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_BACKUPS failed: %w", err)
	}
	maxAgeDays, err := IntFromEnv("LOG_FILE_MAX_AGE_DAYS", 7)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_MAX_AGE_DAYS failed: %w", err)
	}
	if maxSizeMB <= 0 || maxBackups <= 0 || maxAgeDays <= 0 {
		return LogConfig{}, fmt.Errorf("invalid log file config: size=%d backups=%d age_days=%d", maxSizeMB, maxBackups, maxAgeDays)
	}

	compress, err := BoolFromEnv("LOG_FILE_COMPRESS", true)
	if err != nil {
		return LogConfig{}, fmt.Errorf("read LOG_FILE_COMPRESS failed: %w", err)
	}

	return LogConfig{
		Level:      level,
		Dir:        dir,
		MaxSizeMB:  maxSizeMB,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAgeDays,
		Compress:   compress,
	}, nil
}

// ReadTelemetryConfigFromEnv: OpenTelemetry 설정을 환경 변수에서 읽어옵니다.
// 기본값은 비활성화 상태입니다.
func ReadTelemetryConfigFromEnv(defaultServiceName string) (TelemetryConfig, error) {
	enabled, err := BoolFromEnv("OTEL_ENABLED", false)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_ENABLED failed: %w", err)
	}

	insecure, err := BoolFromEnv("OTEL_EXPORTER_OTLP_INSECURE", true)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_EXPORTER_OTLP_INSECURE failed: %w", err)
	}

	sampleRate, err := Float64FromEnv("OTEL_SAMPLE_RATE", 1.0)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_SAMPLE_RATE failed: %w", err)
	}
	if sampleRate < 0 || sampleRate > 1 {
		return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %v", sampleRate)
	}

	return TelemetryConfig{
		Enabled:        enabled,
		ServiceName:    StringFromEnv("OTEL_SERVICE_NAME", defaultServiceName),
		ServiceVersion: StringFromEnv("OTEL_SERVICE_VERSION", "dev"),
		Environment:    StringFromEnv("OTEL_ENVIRONMENT", "local"),
		OTLPEndpoint:   StringFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   insecure,
		SampleRate:     sampleRate,
	}, nil
}
