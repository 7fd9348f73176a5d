package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Listen: server.Addr 에 TCP 리스너를 연다. 포트 0 이면 server.Addr 를 실제 주소로 바꾼다.
func Listen(ctx context.Context, server *http.Server) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s failed: %w", server.Addr, err)
	}
	server.Addr = ln.Addr().String()
	return ln, nil
}

// Serve: ln 으로 요청을 처리하다가 ctx 가 끝나면 shutdownTimeout 안에 진행 중 요청을 마치고 종료한다.
func Serve(ctx context.Context, server *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return serveResult(err, "http server serve failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return serveResult(<-errCh, "http server stopped with error")
}

func serveResult(err error, msg string) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
