package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/park285/action-reaction-hints/internal/common/httpserver"
)

// BackgroundTask: 서버와 함께 실행되는 작업. ctx 가 끝나면 반환해야 한다.
type BackgroundTask struct {
	Name        string
	ErrorLogKey string
	Run         func(ctx context.Context) error
}

// ServerApp: HTTP 서버와 백그라운드 작업 묶음
type ServerApp struct {
	Service         string
	Logger          *slog.Logger
	Server          *http.Server
	ShutdownTimeout time.Duration
	BackgroundTasks []BackgroundTask
}

// NewServerApp: ServerApp 을 생성한다.
func NewServerApp(
	service string,
	logger *slog.Logger,
	server *http.Server,
	shutdownTimeout time.Duration,
	backgroundTasks ...BackgroundTask,
) *ServerApp {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServerApp{
		Service:         service,
		Logger:          logger,
		Server:          server,
		ShutdownTimeout: shutdownTimeout,
		BackgroundTasks: backgroundTasks,
	}
}

// Run: SIGINT/SIGTERM 또는 ctx 종료까지 서버와 작업을 실행하고 우아하게 종료한다.
// 리스너를 먼저 열기 때문에 바인딩 실패는 작업이 시작되기 전에 반환된다.
// 작업 하나가 실패하면 나머지와 서버도 함께 종료된다.
func (a *ServerApp) Run(ctx context.Context) error {
	if a == nil {
		return nil
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := httpserver.Listen(signalCtx, a.Server)
	if err != nil {
		return fmt.Errorf("%s listen failed: %w", a.Service, err)
	}

	g, gctx := errgroup.WithContext(signalCtx)
	for _, task := range a.BackgroundTasks {
		if task.Run == nil {
			continue
		}
		g.Go(func() error { return a.runTask(gctx, task) })
	}

	started := time.Now()
	a.Logger.Info("server_listening", slog.String("service", a.Service), slog.String("addr", a.Server.Addr))
	g.Go(func() error {
		return httpserver.Serve(gctx, a.Server, ln, a.ShutdownTimeout)
	})

	err = g.Wait()
	a.Logger.Info("server_stopped",
		slog.String("service", a.Service),
		slog.Duration("uptime", time.Since(started)),
		slog.Bool("failed", err != nil),
	)
	if err != nil {
		return fmt.Errorf("run %s failed: %w", a.Service, err)
	}
	return nil
}

func (a *ServerApp) runTask(ctx context.Context, task BackgroundTask) error {
	if err := task.Run(ctx); err != nil {
		logKey := task.ErrorLogKey
		if logKey == "" {
			logKey = "background_task_failed"
		}
		a.Logger.Error(logKey, slog.String("task", task.Name), slog.Any("error", err))
		return fmt.Errorf("%s failed: %w", task.Name, err)
	}
	return nil
}
