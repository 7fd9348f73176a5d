package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	commonconfig "github.com/park285/action-reaction-hints/internal/common/config"
)

// ConfigLoader: 설정을 로드하는 함수 타입
type ConfigLoader[C any] func() (*C, error)

// LogSettings: 설정에서 뽑아낸 로깅 관련 값
type LogSettings struct {
	File commonconfig.LogConfig
	// OTel: 로그에 trace_id/span_id 를 붙인다.
	OTel bool
}

// LogSettingsGetter: 설정에서 로깅 설정을 추출하는 함수 타입
type LogSettingsGetter[C any] func(*C) LogSettings

// AppInitializer: 애플리케이션 초기화 함수 타입 (ServerApp 과 정리 함수 반환)
type AppInitializer[C any] func(context.Context, *C, *slog.Logger) (*ServerApp, func(), error)

// RunEntrypoint: 서비스 공통 시작점.
// .env 와 설정을 읽고 로거를 구성한 뒤 앱을 초기화해 종료 시그널까지 실행한다.
func RunEntrypoint[C any](
	ctx context.Context,
	logger *slog.Logger,
	logFileName string,
	loadConfig ConfigLoader[C],
	getLogSettings LogSettingsGetter[C],
	initialize AppInitializer[C],
) (*slog.Logger, error) {
	if err := commonconfig.LoadDotenvIfPresent(); err != nil {
		return logger, fmt.Errorf("load dotenv failed: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return logger, fmt.Errorf("load config failed: %w", err)
	}

	var settings LogSettings
	if getLogSettings != nil {
		settings = getLogSettings(cfg)
	}

	configured, logCloser, err := ConfigureLogger(settings.File, logFileName, settings.OTel)
	if err != nil {
		return logger, fmt.Errorf("configure logger failed: %w", err)
	}
	logger = configured
	defer func() { _ = logCloser.Close() }()

	serverApp, cleanup, err := initialize(ctx, cfg, logger)
	if err != nil {
		return logger, fmt.Errorf("initialize app failed: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	if err := serverApp.Run(ctx); err != nil {
		return logger, fmt.Errorf("run app failed: %w", err)
	}
	return logger, nil
}
