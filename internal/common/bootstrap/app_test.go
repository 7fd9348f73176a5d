package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestServerApp_RunStopsOnContextCancel(t *testing.T) {
	var drained atomic.Bool
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	app := NewServerApp("hints", discardLogger(), server, time.Second, BackgroundTask{
		Name: "drain",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			drained.Store(true)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	if !drained.Load() {
		t.Error("background task must observe shutdown")
	}
}

func TestServerApp_TaskFailureStopsServer(t *testing.T) {
	boom := errors.New("boom")
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	app := NewServerApp("hints", discardLogger(), server, time.Second, BackgroundTask{
		Name: "broken",
		Run:  func(context.Context) error { return boom },
	})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected task error, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after task failure")
	}
}

func TestServerApp_NilIsNoop(t *testing.T) {
	var app *ServerApp
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("nil app must be a no-op: %v", err)
	}
}
