// Package service: 힌트 조회 오케스트레이터.
//
// 요청마다 AI(원격) / 캐시 / 정적 힌트 중 무엇을 쓸지 결정한다.
//   - useAI=false: 정적 힌트
//   - 온라인: 원격 호출 → 성공 시 캐시 갱신(백그라운드) / 실패 시 캐시 → 정적
//   - 오프라인: 캐시 → 정적
//
// 어떤 경로도 호출자에게 에러를 돌려주지 않는다. 항상 4개의 힌트를 반환한다.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/park285/action-reaction-hints/internal/hints/model"
)

const tracerName = "github.com/park285/action-reaction-hints/internal/hints/service"

// 기본 설정값
const (
	DefaultDifficulty          = "medium"
	DefaultCacheWriteTimeout   = 5 * time.Second
	DefaultPrefetchConcurrency = 4
)

// StaticGenerator: 정적 힌트 생성 기능
type StaticGenerator interface {
	Generate(word, topic string, lang model.Language) model.HintSet
}

// RemoteClient: 원격 힌트 API 기능
type RemoteClient interface {
	RequestHintsWithSource(ctx context.Context, word, topic, difficulty string, lang model.Language) (model.HintSet, model.Source, error)
}

// Connectivity: 온라인 판정 기능
type Connectivity interface {
	IsOnline(ctx context.Context) bool
}

// Cache: 힌트 캐시 기능
type Cache interface {
	Get(ctx context.Context, word, topic string, lang model.Language) (model.HintSet, bool)
	Put(ctx context.Context, word, topic string, hints model.HintSet, lang model.Language)
}

// Config: 오케스트레이터 설정
type Config struct {
	Difficulty          string
	CacheWriteTimeout   time.Duration
	PrefetchConcurrency int
	// DedupeInFlight: 같은 (언어, 토픽, 단어) 원격 호출을 하나로 합친다.
	DedupeInFlight bool
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Difficulty) == "" {
		c.Difficulty = DefaultDifficulty
	}
	if c.CacheWriteTimeout <= 0 {
		c.CacheWriteTimeout = DefaultCacheWriteTimeout
	}
	if c.PrefetchConcurrency <= 0 {
		c.PrefetchConcurrency = DefaultPrefetchConcurrency
	}
	return c
}

// Option: HintService 생성 옵션
type Option func(*HintService)

// WithMetrics: Prometheus 메트릭을 연결한다.
func WithMetrics(m *Metrics) Option {
	return func(s *HintService) { s.metrics = m }
}

// HintService: 힌트 조회 오케스트레이터. 설정 외의 상태를 갖지 않는다.
type HintService struct {
	cfg          Config
	generator    StaticGenerator
	remote       RemoteClient
	connectivity Connectivity
	cache        Cache
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer

	inflight singleflight.Group
	writes   sync.WaitGroup
}

// New: HintService 를 생성한다.
func New(
	cfg Config,
	generator StaticGenerator,
	remote RemoteClient,
	connectivity Connectivity,
	cache Cache,
	logger *slog.Logger,
	opts ...Option,
) *HintService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &HintService{
		cfg:          cfg.withDefaults(),
		generator:    generator,
		remote:       remote,
		connectivity: connectivity,
		cache:        cache,
		logger:       logger,
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetHints: 단어의 힌트 4개를 반환한다.
func (s *HintService) GetHints(ctx context.Context, word, topic string, useAI bool, lang model.Language) model.HintSet {
	hints, _ := s.GetHintsDetailed(ctx, word, topic, useAI, lang)
	return hints
}

// GetHintsDetailed: GetHints 와 같지만 힌트 출처도 함께 반환한다.
func (s *HintService) GetHintsDetailed(
	ctx context.Context,
	word, topic string,
	useAI bool,
	lang model.Language,
) (model.HintSet, model.Source) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "HintService.GetHints",
		trace.WithAttributes(
			attribute.String("hints.topic", topic),
			attribute.String("hints.language", lang.String()),
			attribute.Bool("hints.use_ai", useAI),
		),
	)
	defer span.End()

	hints, source := s.resolve(ctx, word, topic, useAI, lang)

	span.SetAttributes(attribute.String("hints.source", string(source)))
	s.metrics.observe(source, time.Since(start))
	s.logger.DebugContext(ctx, "hint_resolved",
		slog.String("word", word),
		slog.String("topic", topic),
		slog.String("language", lang.String()),
		slog.String("source", string(source)),
	)
	return hints, source
}

// Wait: 백그라운드 캐시 쓰기가 모두 끝날 때까지 기다린다. (종료, 테스트)
func (s *HintService) Wait() {
	s.writes.Wait()
}

func (s *HintService) resolve(
	ctx context.Context,
	word, topic string,
	useAI bool,
	lang model.Language,
) (model.HintSet, model.Source) {
	if !useAI {
		return s.staticHints(word, topic, lang), model.SourceStatic
	}

	if s.isOnline(ctx) {
		hints, source, err := s.requestRemote(ctx, word, topic, lang)
		if err == nil {
			// 로컬 폴백 힌트는 캐시하지 않는다. 다음 오프라인 요청이 AI 힌트를 받을 수 있게 둔다.
			if source == model.SourceAI {
				s.putAsync(ctx, word, topic, hints, lang)
			}
			return hints, source
		}
		s.logger.WarnContext(ctx, "hint_remote_error",
			slog.String("word", word),
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}

	if hints, ok := s.cacheGet(ctx, word, topic, lang); ok {
		return hints, model.SourceCache
	}
	return s.staticHints(word, topic, lang), model.SourceStatic
}

type remoteResult struct {
	hints  model.HintSet
	source model.Source
}

func (s *HintService) requestRemote(
	ctx context.Context,
	word, topic string,
	lang model.Language,
) (model.HintSet, model.Source, error) {
	if !s.cfg.DedupeInFlight {
		return s.callRemote(ctx, word, topic, lang)
	}

	key := lang.String() + "\x00" + topic + "\x00" + strings.ToLower(word)
	resultCh := s.inflight.DoChan(key, func() (any, error) {
		// 공유 호출은 첫 호출자의 취소에 끌려가지 않는다. (원격 클라이언트 자체 타임아웃 적용)
		hints, source, err := s.callRemote(context.WithoutCancel(ctx), word, topic, lang)
		if err != nil {
			return nil, err
		}
		return remoteResult{hints: hints, source: source}, nil
	})

	select {
	case result := <-resultCh:
		if result.Err != nil {
			return model.HintSet{}, "", result.Err
		}
		r, ok := result.Val.(remoteResult)
		if !ok {
			return model.HintSet{}, "", fmt.Errorf("invalid singleflight result type: %T", result.Val)
		}
		return r.hints, r.source, nil
	case <-ctx.Done():
		return model.HintSet{}, "", fmt.Errorf("remote hints context done: %w", ctx.Err())
	}
}

func (s *HintService) callRemote(
	ctx context.Context,
	word, topic string,
	lang model.Language,
) (hints model.HintSet, source model.Source, err error) {
	if s.remote == nil {
		return model.HintSet{}, "", errors.New("remote hint client is not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			hints, source, err = model.HintSet{}, "", fmt.Errorf("remote hint client panic: %v", r)
		}
	}()

	hints, source, err = s.remote.RequestHintsWithSource(ctx, word, topic, s.cfg.Difficulty, lang)
	if err != nil {
		return model.HintSet{}, "", err
	}
	if !hints.IsComplete() {
		return model.HintSet{}, "", fmt.Errorf("remote hint client returned incomplete hints: %q", hints)
	}
	return hints, source, nil
}

func (s *HintService) isOnline(ctx context.Context) (online bool) {
	if s.connectivity == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.WarnContext(ctx, "connectivity_panic", slog.String("panic", fmt.Sprint(r)))
			online = false
		}
	}()
	return s.connectivity.IsOnline(ctx)
}

func (s *HintService) cacheGet(ctx context.Context, word, topic string, lang model.Language) (hints model.HintSet, ok bool) {
	if s.cache == nil {
		return model.HintSet{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.WarnContext(ctx, "hint_cache_panic", slog.String("panic", fmt.Sprint(r)))
			hints, ok = model.HintSet{}, false
		}
	}()

	hints, ok = s.cache.Get(ctx, word, topic, lang)
	if ok && !hints.IsComplete() {
		return model.HintSet{}, false
	}
	return hints, ok
}

// putAsync: 응답을 막지 않도록 캐시 쓰기를 백그라운드에서 수행한다.
func (s *HintService) putAsync(ctx context.Context, word, topic string, hints model.HintSet, lang model.Language) {
	if s.cache == nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.CacheWriteTimeout)
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("hint_cache_put_panic", slog.String("panic", fmt.Sprint(r)))
			}
		}()
		s.cache.Put(writeCtx, word, topic, hints, lang)
	}()
}

func (s *HintService) staticHints(word, topic string, lang model.Language) (hints model.HintSet) {
	if s.generator == nil {
		return lastResortHints(word)
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("static_hint_panic", slog.String("word", word), slog.String("panic", fmt.Sprint(r)))
			hints = lastResortHints(word)
		}
	}()

	hints = s.generator.Generate(word, topic, lang)
	if !hints.IsComplete() {
		return lastResortHints(word)
	}
	return hints
}
