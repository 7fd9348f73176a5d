// Package kvstore: 힌트 캐시가 쓰는 영속 키-값 저장소 기능과 백엔드 구현.
//
// 백엔드:
//   - ValkeyStore: valkey-go (GET/SET/SCAN/UNLINK)
//   - SQLStore: gorm (PostgreSQL, SQLite)
//   - MemoryStore: 프로세스 로컬 맵
package kvstore

import (
	"context"
	"fmt"
	"strings"
)

// KeyValueStore: 문자열 키-값 저장소 기능.
// GetItem 은 키가 없으면 ok=false, err=nil 을 반환한다.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	GetAllKeys(ctx context.Context) ([]string, error)
	MultiRemove(ctx context.Context, keys []string) error
}

// 백엔드 이름
const (
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// ParseBackend: 백엔드 이름을 검증한다. 빈 값은 valkey.
func ParseBackend(raw string) (string, error) {
	switch backend := strings.ToLower(strings.TrimSpace(raw)); backend {
	case "":
		return BackendValkey, nil
	case BackendValkey, BackendPostgres, BackendSQLite, BackendMemory:
		return backend, nil
	default:
		return "", fmt.Errorf("unknown kv backend: %q", raw)
	}
}
