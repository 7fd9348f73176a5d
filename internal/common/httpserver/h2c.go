package httpserver

import (
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// h2cMaxConcurrentStreams: 연결 하나에서 동시에 처리하는 스트림 상한 (prefetch 팬아웃 여유분 포함)
const h2cMaxConcurrentStreams = 250

// WrapH2C: 평문 HTTP/2 업그레이드를 받도록 감싼다. idleTimeout 은 HTTP/1 과 같은 값을 쓴다.
func WrapH2C(handler http.Handler, idleTimeout time.Duration) http.Handler {
	return h2c.NewHandler(handler, &http2.Server{
		MaxConcurrentStreams: h2cMaxConcurrentStreams,
		IdleTimeout:          idleTimeout,
	})
}
