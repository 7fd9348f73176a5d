// Package connectivity: 네트워크 상태 신호를 온라인/오프라인 판정으로 정규화한다.
package connectivity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/park285/action-reaction-hints/internal/common/ptr"
)

// NetworkStatus: 네트워크 상태 신호.
// IsInternetReachable 이 nil 이면 인터넷 도달 가능 여부를 알 수 없는 상태다.
type NetworkStatus struct {
	IsConnected         bool
	IsInternetReachable *bool
}

// NetworkProbe: 네트워크 상태 조회 기능
type NetworkProbe interface {
	Fetch(ctx context.Context) (NetworkStatus, error)
}

// IsOnline: 판정 정책.
//   - 도달 가능 여부를 모르면 연결 신호만 본다.
//   - 그 외에는 연결과 도달 가능이 모두 true 여야 한다.
func (s NetworkStatus) IsOnline() bool {
	if s.IsInternetReachable == nil {
		return s.IsConnected
	}
	return s.IsConnected && *s.IsInternetReachable
}

// Prober: NetworkProbe 결과를 온라인 여부로 바꾼다. 조회 실패는 오프라인으로 취급한다.
type Prober struct {
	probe  NetworkProbe
	logger *slog.Logger
}

// NewProber: Prober 를 생성한다.
func NewProber(probe NetworkProbe, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{probe: probe, logger: logger}
}

// IsOnline: 현재 온라인인지 판정한다. 에러나 panic 이 나도 false 를 반환할 뿐 전파하지 않는다.
func (p *Prober) IsOnline(ctx context.Context) (online bool) {
	if p == nil || p.probe == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("connectivity_probe_panic", slog.String("panic", fmt.Sprint(r)))
			online = false
		}
	}()

	status, err := p.probe.Fetch(ctx)
	if err != nil {
		p.logger.Warn("connectivity_probe_failed", slog.Any("error", err))
		return false
	}

	online = status.IsOnline()
	p.logger.Debug("connectivity_probe",
		slog.Bool("connected", status.IsConnected),
		slog.String("reachable", ptr.FormatBool(status.IsInternetReachable)),
		slog.Bool("online", online),
	)
	return online
}
