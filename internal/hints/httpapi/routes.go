// Package httpapi: 힌트 서비스 HTTP API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/park285/action-reaction-hints/internal/common/health"
	"github.com/park285/action-reaction-hints/internal/common/httputil"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

const maxBodyBytes = 64 << 10

// HintResolver: 힌트 조회 기능 (service.HintService)
type HintResolver interface {
	GetHintsDetailed(ctx context.Context, word, topic string, useAI bool, lang model.Language) (model.HintSet, model.Source)
	PrefetchHints(ctx context.Context, words []string, topic string, useAI bool, lang model.Language) map[string]model.HintSet
}

// CacheAdmin: 캐시 관리 기능 (cachestore.Store)
type CacheAdmin interface {
	Stats(ctx context.Context) model.CacheStats
	ClearAll(ctx context.Context) (int, error)
}

type (
	// HintRequest: 단건 힌트 요청 DTO
	HintRequest struct {
		Word     string `json:"word" validate:"required,max=64"`
		Topic    string `json:"topic" validate:"max=64"`
		UseAI    bool   `json:"useAI"`
		Language string `json:"language" validate:"omitempty,oneof=en ta EN TA"`
	}

	// HintResponse: 단건 힌트 응답 DTO
	HintResponse struct {
		Hints  []string `json:"hints"`
		Source string   `json:"source"`
	}

	// PrefetchRequest: 여러 단어 힌트 요청 DTO
	PrefetchRequest struct {
		Words    []string `json:"words" validate:"required,min=1,max=50,dive,max=64"`
		Topic    string   `json:"topic" validate:"max=64"`
		UseAI    bool     `json:"useAI"`
		Language string   `json:"language" validate:"omitempty,oneof=en ta EN TA"`
	}

	// PrefetchResponse: 단어별 힌트 응답 DTO
	PrefetchResponse struct {
		Hints map[string][]string `json:"hints"`
	}

	// ClearResponse: 캐시 삭제 결과 DTO
	ClearResponse struct {
		Removed int `json:"removed"`
	}
)

// Handler: HTTP 핸들러 묶음
type Handler struct {
	hints    HintResolver
	cache    CacheAdmin
	gatherer prometheus.Gatherer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler: 핸들러를 생성한다. gatherer 가 nil 이면 기본 레지스트리를 노출한다.
func NewHandler(hints HintResolver, cache CacheAdmin, gatherer prometheus.Gatherer, logger *slog.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hints:    hints,
		cache:    cache,
		gatherer: gatherer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Register: 라우트를 등록한다.
func (h *Handler) Register(mux *http.ServeMux) {
	// POST /api/hints - 단건 힌트
	mux.HandleFunc("POST /api/hints", h.handleHints)
	// POST /api/hints/prefetch - 라운드 단어 일괄 힌트
	mux.HandleFunc("POST /api/hints/prefetch", h.handlePrefetch)
	// GET /api/hints/cache/stats - 캐시 통계
	mux.HandleFunc("GET /api/hints/cache/stats", h.handleCacheStats)
	// DELETE /api/hints/cache - 캐시 전체 삭제
	mux.HandleFunc("DELETE /api/hints/cache", h.handleCacheClear)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, health.Get(r.Context()))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	h.logger.Info("hint_http_api_registered")
}

// Routes: 등록된 mux 를 요청 ID 미들웨어로 감싸 반환한다.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return httputil.RequestIDMiddleware(mux)
}

func (h *Handler) decode(r *http.Request, out any) error {
	if err := httputil.ReadJSON(r, out, maxBodyBytes); err != nil {
		return err
	}
	return h.validate.Struct(out)
}

func (h *Handler) handleHints(w http.ResponseWriter, r *http.Request) {
	var req HintRequest
	if err := h.decode(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	start := time.Now()
	hints, source := h.hints.GetHintsDetailed(r.Context(), req.Word, req.Topic, req.UseAI, model.ParseLanguage(req.Language))
	h.logger.Info("hint_request_served",
		slog.String("request_id", httputil.RequestIDFrom(r.Context())),
		slog.String("topic", req.Topic),
		slog.String("source", string(source)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	_ = httputil.WriteJSON(w, http.StatusOK, HintResponse{Hints: hints.Slice(), Source: string(source)})
}

func (h *Handler) handlePrefetch(w http.ResponseWriter, r *http.Request) {
	var req PrefetchRequest
	if err := h.decode(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	results := h.hints.PrefetchHints(r.Context(), req.Words, req.Topic, req.UseAI, model.ParseLanguage(req.Language))
	resp := PrefetchResponse{Hints: make(map[string][]string, len(results))}
	for word, hints := range results {
		resp.Hints[word] = hints.Slice()
	}

	_ = httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, h.cache.Stats(r.Context()))
}

func (h *Handler) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.cache.ClearAll(r.Context())
	if err != nil {
		h.logger.Error("hint_cache_clear_request_failed", slog.Any("error", err))
		writeError(w, r, http.StatusServiceUnavailable, ErrorCodeCache, "Cache clear failed", nil)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, ClearResponse{Removed: removed})
}
