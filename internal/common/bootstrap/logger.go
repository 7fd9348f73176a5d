package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	commonconfig "github.com/park285/action-reaction-hints/internal/common/config"
)

// NewLogger: 설정을 읽기 전 단계에서 쓰는 stdout 로거 (Info, tint)
func NewLogger() *slog.Logger {
	return slog.New(newTintHandler(os.Stdout, slog.LevelInfo, false))
}

func newTintHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		AddSource:  true,
		NoColor:    noColor,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ConfigureLogger: 로그 설정을 적용한 로거를 만들고 기본 로거로 지정한다.
//
// cfg.Dir 이 있으면 stdout 과 회전 파일(fileName)에 함께 쓰며, 반환된 Closer 로 파일을 닫는다.
// withOTel 이면 trace_id/span_id 가 붙는다.
func ConfigureLogger(cfg commonconfig.LogConfig, fileName string, withOTel bool) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
		path   string
	)

	if logDir := strings.TrimSpace(cfg.Dir); logDir != "" {
		if cfg.MaxSizeMB <= 0 || cfg.MaxBackups <= 0 || cfg.MaxAgeDays <= 0 {
			return nil, nil, fmt.Errorf("invalid log config: size=%d backups=%d age_days=%d", cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir failed: %w", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, fileName),
			MaxSize:    cfg.MaxSizeMB,  // megabytes
			MaxBackups: cfg.MaxBackups, // files
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,
		}
		out = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
		path = logFile.Filename
	}

	// 파일이 섞이면 ANSI 색상 코드를 끈다.
	handler := newTintHandler(out, cfg.Level, path != "")
	if withOTel {
		handler = NewOTelHandler(handler)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	logger.Info("logger_configured",
		slog.String("level", cfg.Level.String()),
		slog.String("file", path),
		slog.Bool("otel_correlation", withOTel),
	)
	return logger, closer, nil
}
