// Package remote: 원격 AI 힌트 생성 API 클라이언트.
//
// 원격 호출 실패(네트워크, 타임아웃, HTTP 에러, 잘못된 응답)는 호출자에게 노출되지 않고
// 로컬 폴백 힌트로 대체된다. 반환되는 에러는 호출자 Context 취소뿐이다.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	cerrors "github.com/park285/action-reaction-hints/internal/common/errors"
	"github.com/park285/action-reaction-hints/internal/common/httpclient"
	"github.com/park285/action-reaction-hints/internal/common/httputil"
	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// 기본 설정값
const (
	DefaultPath       = "/api/hints/generate"
	DefaultTimeout    = 15 * time.Second
	DefaultDifficulty = "medium"

	maxResponseBytes = 1 << 20
)

// Config: 원격 힌트 API 설정
type Config struct {
	BaseURL string
	Path    string
	Secret  string
	Timeout time.Duration
}

// Option: Client 생성 옵션
type Option func(*Client)

// WithHTTPClient: 사용할 http.Client 를 지정한다. (테스트, 커스텀 Transport)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client: 원격 힌트 생성 API 클라이언트
type Client struct {
	endpoint   string
	secret     string
	timeout    time.Duration
	httpClient *http.Client
	fallback   *Fallback
	logger     *slog.Logger
}

// New: 원격 힌트 클라이언트를 생성한다.
func New(cfg Config, catalog *content.Catalog, logger *slog.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("hint api base url is required")
	}
	if catalog == nil {
		return nil, errors.New("hint content catalog is required")
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		endpoint: baseURL + path,
		secret:   cfg.Secret,
		timeout:  timeout,
		httpClient: httpclient.New(httpclient.Config{
			Timeout:        timeout,
			ConnectTimeout: timeout,
			Instrumented:   true,
		}),
		fallback: NewFallback(catalog),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint: 호출 대상 URL
func (c *Client) Endpoint() string { return c.endpoint }

// RequestHints: 원격 API 로 힌트를 요청한다. 실패하면 로컬 폴백 힌트를 반환한다.
func (c *Client) RequestHints(ctx context.Context, word, topic, difficulty string, lang model.Language) (model.HintSet, error) {
	hints, _, err := c.RequestHintsWithSource(ctx, word, topic, difficulty, lang)
	return hints, err
}

// RequestHintsWithSource: RequestHints 와 같지만 힌트 출처(ai, remote_fallback)도 함께 반환한다.
func (c *Client) RequestHintsWithSource(
	ctx context.Context,
	word, topic, difficulty string,
	lang model.Language,
) (model.HintSet, model.Source, error) {
	if err := ctx.Err(); err != nil {
		return model.HintSet{}, "", fmt.Errorf("request hints canceled: %w", err)
	}

	hints, err := c.generate(ctx, word, topic, difficulty, lang)
	if err == nil {
		return hints, model.SourceAI, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.HintSet{}, "", fmt.Errorf("request hints canceled: %w", ctxErr)
	}

	c.logger.Warn("hint_remote_failed",
		slog.String("endpoint", c.endpoint),
		slog.String("word", word),
		slog.String("topic", topic),
		slog.String("language", lang.String()),
		slog.Bool("remote_failure", cerrors.IsRemoteFailure(err)),
		slog.Any("error", err),
	)
	return c.fallback.Generate(word, topic, lang), model.SourceRemoteFallback, nil
}

func (c *Client) generate(
	ctx context.Context,
	word, topic, difficulty string,
	lang model.Language,
) (model.HintSet, error) {
	if strings.TrimSpace(difficulty) == "" {
		difficulty = DefaultDifficulty
	}

	payload, err := json.Marshal(generateRequest{
		Word:       word,
		Topic:      topic,
		Difficulty: difficulty,
		Language:   lang.String(),
	})
	if err != nil {
		return model.HintSet{}, fmt.Errorf("marshal hint request failed: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.HintSet{}, cerrors.RemoteCallError{Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set(httputil.HeaderContentType, httputil.ContentTypeJSON)
	req.Header.Set(httputil.HeaderAppSecret, c.secret)
	httputil.PropagateRequestID(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.HintSet{}, cerrors.RemoteCallError{Endpoint: c.endpoint, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.HintSet{}, cerrors.RemoteCallError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	}

	var body generateResponse
	if err := httputil.DecodeJSON(resp.Body, &body, maxResponseBytes); err != nil {
		return model.HintSet{}, cerrors.InvalidResponseError{Reason: err.Error()}
	}
	if !body.Success {
		reason := "success=false"
		if body.Error != "" {
			reason += " error=" + body.Error
		}
		return model.HintSet{}, cerrors.InvalidResponseError{Reason: reason}
	}

	hints, err := model.NewHintSet(body.Hints)
	if err != nil {
		return model.HintSet{}, cerrors.InvalidResponseError{Reason: err.Error()}
	}
	return hints, nil
}
