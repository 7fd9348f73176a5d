// Package httpclient: 외부 HTTP 호출에 쓰는 공용 http.Client 생성기.
package httpclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
)

// Config: HTTP 클라이언트 설정
type Config struct {
	Timeout        time.Duration
	ConnectTimeout time.Duration
	// HTTP2Enabled: 평문 HTTP/2(h2c) 로 접속한다. 같은 서비스 메시 안의 h2c 서버용.
	HTTP2Enabled bool
	// Instrumented: otelhttp Transport 로 감싸 TraceContext 를 전파한다.
	Instrumented bool
}

// New: 설정에 맞는 http.Client 를 생성한다.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	var transport http.RoundTripper
	if cfg.HTTP2Enabled {
		transport = &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		}
	} else {
		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
	}

	if cfg.Instrumented {
		transport = otelhttp.NewTransport(transport)
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
}
