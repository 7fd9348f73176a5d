package httpserver

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ServerOptions: HTTP 서버 생성 옵션
type ServerOptions struct {
	UseH2C            bool
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	// Operation: 비어 있지 않으면 otelhttp 핸들러로 감싸 요청마다 span 을 만든다.
	Operation string
}

// NewServer: 옵션을 적용한 http.Server 를 생성한다.
// 감싸는 순서: otelhttp → h2c → handler.
func NewServer(addr string, handler http.Handler, opts ServerOptions) *http.Server {
	if handler == nil {
		handler = http.NewServeMux()
	}

	finalHandler := handler
	if opts.Operation != "" {
		finalHandler = otelhttp.NewHandler(finalHandler, opts.Operation)
	}
	if opts.UseH2C {
		finalHandler = WrapH2C(finalHandler, opts.IdleTimeout)
	}

	readHeaderTimeout := opts.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           finalHandler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if opts.IdleTimeout > 0 {
		server.IdleTimeout = opts.IdleTimeout
	}
	if opts.MaxHeaderBytes > 0 {
		server.MaxHeaderBytes = opts.MaxHeaderBytes
	}

	return server
}
