package connectivity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/park285/action-reaction-hints/internal/common/cache"
	"github.com/park285/action-reaction-hints/internal/common/httpclient"
	"github.com/park285/action-reaction-hints/internal/common/ptr"
)

// 기본 설정값
const (
	DefaultCheckTimeout = 3 * time.Second
	DefaultCacheTTL     = 5 * time.Second
)

// InterfaceProbeConfig: 호스트 네트워크 인터페이스 기반 프로브 설정
type InterfaceProbeConfig struct {
	// CheckURL: 인터넷 도달 확인용 HEAD 요청 대상. 비어 있으면 도달 가능 여부는 unknown.
	CheckURL string
	Timeout  time.Duration
	// CacheTTL: 도달 확인 결과 재사용 시간. 0 이하면 매번 확인한다.
	CacheTTL time.Duration
}

// LinkCheck: 네트워크 연결(링크) 여부 확인 함수
type LinkCheck func() (bool, error)

// InterfaceProbe: 호스트 인터페이스 상태와 HTTP HEAD 로 NetworkStatus 를 만든다.
type InterfaceProbe struct {
	checkURL   string
	httpClient *http.Client
	linkCheck  LinkCheck
	reachCache *cache.TTLLRUCache[bool]
	logger     *slog.Logger
}

// InterfaceProbeOption: InterfaceProbe 생성 옵션
type InterfaceProbeOption func(*InterfaceProbe)

// WithLinkCheck: 링크 확인 함수를 교체한다. (테스트용)
func WithLinkCheck(check LinkCheck) InterfaceProbeOption {
	return func(p *InterfaceProbe) {
		if check != nil {
			p.linkCheck = check
		}
	}
}

// NewInterfaceProbe: InterfaceProbe 를 생성한다.
func NewInterfaceProbe(cfg InterfaceProbeConfig, logger *slog.Logger, opts ...InterfaceProbeOption) *InterfaceProbe {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := httpclient.New(httpclient.Config{Timeout: timeout, ConnectTimeout: timeout})
	// 3xx 도 "도달 가능" 으로 보므로 리다이렉트를 따라가지 않는다.
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	p := &InterfaceProbe{
		checkURL:   strings.TrimSpace(cfg.CheckURL),
		httpClient: client,
		linkCheck:  HasActiveInterface,
		reachCache: cache.NewTTLLRUCache[bool](16, cfg.CacheTTL),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch: 현재 네트워크 상태를 조회한다.
func (p *InterfaceProbe) Fetch(ctx context.Context) (NetworkStatus, error) {
	connected, err := p.linkCheck()
	if err != nil {
		return NetworkStatus{}, fmt.Errorf("list network interfaces failed: %w", err)
	}

	status := NetworkStatus{IsConnected: connected}
	if !connected || p.checkURL == "" {
		return status, nil
	}

	if reachable, ok := p.reachCache.Get(p.checkURL); ok {
		status.IsInternetReachable = ptr.Bool(reachable)
		return status, nil
	}

	reachable := p.head(ctx)
	// 호출자가 취소한 결과는 다른 요청과 공유하지 않는다.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return NetworkStatus{}, fmt.Errorf("connectivity check canceled: %w", ctxErr)
	}
	p.reachCache.Set(p.checkURL, reachable)
	status.IsInternetReachable = ptr.Bool(reachable)
	return status, nil
}

func (p *InterfaceProbe) head(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.checkURL, nil)
	if err != nil {
		p.logger.Warn("connectivity_check_request_invalid", slog.String("url", p.checkURL), slog.Any("error", err))
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Debug("connectivity_check_failed", slog.String("url", p.checkURL), slog.Any("error", err))
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// HasActiveInterface: 주소가 할당된 활성 비루프백 인터페이스가 하나라도 있는지 확인한다.
func HasActiveInterface() (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, fmt.Errorf("net interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if len(addrs) > 0 {
			return true, nil
		}
	}
	return false, nil
}
