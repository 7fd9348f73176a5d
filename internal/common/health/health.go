// Package health: 서비스 상태 정보
package health

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"
)

// Status 값
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Check: 의존 컴포넌트 상태 점검 함수. nil 이면 정상.
type Check func(ctx context.Context) error

var (
	startTime time.Time
	version   = "dev"
	initOnce  sync.Once

	checksMu sync.RWMutex
	checks   = map[string]Check{}
)

// Init: 서비스 시작 시 호출 (버전 정보 설정)
func Init(v string) {
	initOnce.Do(func() {
		startTime = time.Now()
		if v != "" {
			version = v
		}
	})
}

// Register: 이름으로 점검 함수를 등록한다. 같은 이름은 덮어쓴다.
func Register(name string, check Check) {
	checksMu.Lock()
	defer checksMu.Unlock()
	if check == nil {
		delete(checks, name)
		return
	}
	checks[name] = check
}

// Response: /health 엔드포인트 표준 응답
type Response struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Goroutines int               `json:"goroutines"`
	Checks     map[string]string `json:"checks,omitempty"`
}

// Get: 현재 상태 반환. 점검 하나라도 실패하면 degraded.
// 캐시 백엔드는 참고용이므로 degraded 여도 서비스는 응답한다.
func Get(ctx context.Context) Response {
	resp := Response{
		Status:     StatusOK,
		Version:    version,
		Uptime:     formatDuration(time.Since(startTime)),
		Goroutines: runtime.NumGoroutine(),
	}

	checksMu.RLock()
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	registered := make([]Check, len(names))
	for i, name := range names {
		registered[i] = checks[name]
	}
	checksMu.RUnlock()

	if len(names) == 0 {
		return resp
	}
	resp.Checks = make(map[string]string, len(names))
	for i, name := range names {
		if err := registered[i](ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = StatusDegraded
			continue
		}
		resp.Checks[name] = StatusOK
	}
	return resp
}

// formatDuration: Duration을 사람이 읽기 쉬운 형식으로 변환
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return time.Duration(h*time.Hour + m*time.Minute + s*time.Second).String()
	}
	if m > 0 {
		return time.Duration(m*time.Minute + s*time.Second).String()
	}
	return time.Duration(s * time.Second).String()
}
