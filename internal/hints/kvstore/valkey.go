package kvstore

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/valkey-io/valkey-go"

	"github.com/park285/action-reaction-hints/internal/common/valkeyx"
)

const unlinkBatchSize = 500

// ValkeyStore: Valkey 기반 키-값 저장소
type ValkeyStore struct {
	client      valkey.Client
	scanPattern string
	logger      *slog.Logger
}

// NewValkeyStore: ValkeyStore 를 생성한다.
// scanPattern 은 GetAllKeys 의 SCAN MATCH 패턴이다. (예: "ai_hints_*", 빈 값이면 "*")
func NewValkeyStore(client valkey.Client, scanPattern string, logger *slog.Logger) *ValkeyStore {
	if scanPattern == "" {
		scanPattern = "*"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValkeyStore{client: client, scanPattern: scanPattern, logger: logger}
}

func (s *ValkeyStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	value, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkeyx.IsNil(err) {
			return "", false, nil
		}
		return "", false, valkeyx.WrapRedisError("kv_get", err)
	}
	return value, true, nil
}

func (s *ValkeyStore) SetItem(ctx context.Context, key, value string) error {
	cmd := s.client.B().Set().Key(key).Value(value).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return valkeyx.WrapRedisError("kv_set", err)
	}
	return nil
}

func (s *ValkeyStore) RemoveItem(ctx context.Context, key string) error {
	cmd := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return valkeyx.WrapRedisError("kv_remove", err)
	}
	return nil
}

// GetAllKeys: SCAN 으로 scanPattern 에 맞는 키를 모두 순회한다.
func (s *ValkeyStore) GetAllKeys(ctx context.Context) ([]string, error) {
	keys, err := valkeyx.ScanKeys(ctx, s.client, s.scanPattern, valkeyx.DefaultScanCount)
	if err != nil {
		return nil, valkeyx.WrapRedisError("kv_scan", err)
	}
	return lo.Uniq(keys), nil
}

// MultiRemove: UNLINK 로 배치 삭제한다. (서버에서 비동기 해제)
func (s *ValkeyStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	for _, batch := range lo.Chunk(keys, unlinkBatchSize) {
		cmd := s.client.B().Unlink().Key(batch...).Build()
		removed, err := s.client.Do(ctx, cmd).AsInt64()
		if err != nil {
			return valkeyx.WrapRedisError("kv_unlink", err)
		}
		s.logger.Debug("kv_unlink", slog.Int("requested", len(batch)), slog.Int64("removed", removed))
	}
	return nil
}
