// Package cachestore: (단어, 토픽, 언어) → 힌트 세트를 시간 만료 방식으로 캐싱한다.
//
// 캐시는 참고용(best-effort)이다. 읽기/쓰기 실패는 로그만 남기고 미스/무시로 처리한다.
package cachestore

import (
	"context"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"

	cerrors "github.com/park285/action-reaction-hints/internal/common/errors"
	"github.com/park285/action-reaction-hints/internal/hints/kvstore"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// 기본 설정값
const (
	DefaultPrefix = "ai_hints"
	DefaultTTL    = 24 * time.Hour
)

// Option: Store 생성 옵션
type Option func(*Store)

// WithPrefix: 캐시 키 prefix 를 지정한다.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL: 만료 시간을 지정한다.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock: 현재 시각 함수를 교체한다. (만료 테스트용)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store: 힌트 캐시 저장소
type Store struct {
	kv     kvstore.KeyValueStore
	prefix string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// New: 캐시 저장소를 생성한다.
func New(kv kvstore.KeyValueStore, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		kv:     kv,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prefix: 캐시 키 prefix
func (s *Store) Prefix() string { return s.prefix }

// TTL: 만료 시간
func (s *Store) TTL() time.Duration { return s.ttl }

// Key: <prefix>_<language>_<topic>_<소문자 단어>
func (s *Store) Key(word, topic string, lang model.Language) string {
	return s.prefix + "_" + lang.String() + "_" + topic + "_" + strings.ToLower(word)
}

// Get: 캐시된 힌트를 조회한다. 없거나, 깨졌거나, 만료됐으면 미스다.
// 만료되거나 깨진 엔트리는 읽는 시점에 삭제한다.
func (s *Store) Get(ctx context.Context, word, topic string, lang model.Language) (model.HintSet, bool) {
	key := s.Key(word, topic, lang)

	raw, ok, err := s.kv.GetItem(ctx, key)
	if err != nil {
		s.logger.Warn("hint_cache_get_failed",
			slog.String("key", key),
			slog.Bool("storage", cerrors.IsStorageError(err)),
			slog.Any("error", err),
		)
		return model.HintSet{}, false
	}
	if !ok {
		return model.HintSet{}, false
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.logger.Warn("hint_cache_entry_corrupt", slog.String("key", key), slog.Any("error", err))
		s.remove(ctx, key)
		return model.HintSet{}, false
	}

	age := s.now().Sub(time.UnixMilli(entry.Timestamp))
	if age >= s.ttl {
		s.logger.Debug("hint_cache_expired", slog.String("key", key), slog.Duration("age", age))
		s.remove(ctx, key)
		return model.HintSet{}, false
	}

	hints, err := model.NewHintSet(entry.Hints)
	if err != nil {
		s.logger.Warn("hint_cache_entry_invalid", slog.String("key", key), slog.Any("error", err))
		s.remove(ctx, key)
		return model.HintSet{}, false
	}
	return hints, true
}

// Put: 현재 시각으로 엔트리를 기록(덮어쓰기)한다. 실패는 로그만 남긴다.
func (s *Store) Put(ctx context.Context, word, topic string, hints model.HintSet, lang model.Language) {
	key := s.Key(word, topic, lang)

	raw, err := json.Marshal(model.CacheEntry{
		Word:      word,
		Topic:     topic,
		Language:  lang,
		Hints:     hints.Slice(),
		Timestamp: s.now().UnixMilli(),
	})
	if err != nil {
		s.logger.Warn("hint_cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := s.kv.SetItem(ctx, key, string(raw)); err != nil {
		s.logger.Warn("hint_cache_put_failed",
			slog.String("key", key),
			slog.Bool("storage", cerrors.IsStorageError(err)),
			slog.Any("error", err),
		)
	}
}

// ClearAll: prefix 아래 모든 키를 삭제하고 삭제한 개수를 반환한다.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	keys, err := s.cacheKeys(ctx)
	if err != nil {
		s.logger.Warn("hint_cache_clear_failed", slog.Any("error", err))
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := s.kv.MultiRemove(ctx, keys); err != nil {
		s.logger.Warn("hint_cache_clear_failed", slog.Int("keys", len(keys)), slog.Any("error", err))
		return 0, err
	}
	s.logger.Info("hint_cache_cleared", slog.Int("removed", len(keys)))
	return len(keys), nil
}

// Stats: 캐시 키 통계. 값은 읽지 않으며, 조회 실패 시 빈 통계를 반환한다.
func (s *Store) Stats(ctx context.Context) model.CacheStats {
	keys, err := s.cacheKeys(ctx)
	if err != nil {
		s.logger.Warn("hint_cache_stats_failed", slog.Any("error", err))
		return model.CacheStats{CacheKeys: []string{}}
	}
	return model.CacheStats{TotalCached: len(keys), CacheKeys: keys}
}

func (s *Store) cacheKeys(ctx context.Context) ([]string, error) {
	keys, err := s.kv.GetAllKeys(ctx)
	if err != nil {
		return nil, err
	}
	marker := s.prefix + "_"
	return lo.Filter(keys, func(key string, _ int) bool {
		return strings.HasPrefix(key, marker)
	}), nil
}

func (s *Store) remove(ctx context.Context, key string) {
	if err := s.kv.RemoveItem(ctx, key); err != nil {
		s.logger.Warn("hint_cache_remove_failed", slog.String("key", key), slog.Any("error", err))
	}
}
