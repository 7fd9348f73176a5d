package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/park285/action-reaction-hints/internal/common/bootstrap"
	"github.com/park285/action-reaction-hints/internal/common/health"
	hintapp "github.com/park285/action-reaction-hints/internal/hints/app"
	hintconfig "github.com/park285/action-reaction-hints/internal/hints/config"
)

// Version: 빌드 시 ldflags로 주입됨 (예: -ldflags="-X main.Version=1.0.0")
var Version = "dev"

func main() {
	health.Init(Version)

	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunEntrypoint(
		context.Background(),
		logger,
		"hints.log",
		hintconfig.LoadFromEnv,
		func(cfg *hintconfig.Config) bootstrap.LogSettings {
			return bootstrap.LogSettings{File: cfg.Log, OTel: cfg.Telemetry.Enabled}
		},
		hintapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}
