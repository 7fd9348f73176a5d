package connectivity

import (
	"context"
	"fmt"
	"strings"

	"github.com/park285/action-reaction-hints/internal/common/ptr"
)

// 강제 모드 값
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// StaticProbe: 고정된 상태를 반환하는 프로브 (강제 모드, 테스트)
type StaticProbe struct {
	Status NetworkStatus
	Err    error
}

// Fetch: 고정 상태를 반환한다.
func (p StaticProbe) Fetch(ctx context.Context) (NetworkStatus, error) {
	if err := ctx.Err(); err != nil {
		return NetworkStatus{}, fmt.Errorf("fetch network status canceled: %w", err)
	}
	return p.Status, p.Err
}

// ForcedProbe: "online"/"offline" 모드 문자열로 StaticProbe 를 만든다. 빈 값이면 ok=false.
func ForcedProbe(mode string) (StaticProbe, bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		return StaticProbe{}, false, nil
	case ModeOnline:
		return StaticProbe{Status: NetworkStatus{IsConnected: true, IsInternetReachable: ptr.Bool(true)}}, true, nil
	case ModeOffline:
		return StaticProbe{Status: NetworkStatus{IsConnected: false, IsInternetReachable: ptr.Bool(false)}}, true, nil
	default:
		return StaticProbe{}, false, fmt.Errorf("unknown connectivity mode: %q", mode)
	}
}
