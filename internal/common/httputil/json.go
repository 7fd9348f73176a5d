// Package httputil: JSON 요청/응답 처리와 요청 ID 전파 헬퍼.
package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// HTTP 헤더 관련 상수
const (
	// ContentTypeJSON: JSON 응답을 위한 Content-Type 헤더 값
	ContentTypeJSON = "application/json"
	// HeaderAppSecret: 원격 힌트 API 공유 비밀 헤더 이름
	HeaderAppSecret = "X-App-Secret"
	// HeaderContentType: Content-Type 헤더 이름
	HeaderContentType = "Content-Type"
	// HeaderRequestID: 요청 추적 ID 헤더 이름
	HeaderRequestID = "X-Request-Id"
)

// ErrEmptyBody: 요청 바디가 비어있을 때 발생하는 에러
var ErrEmptyBody = errors.New("empty request body")

// ErrBodyTooLarge: 바디가 허용 크기를 넘었을 때 발생하는 에러
var ErrBodyTooLarge = errors.New("body too large")

// ReadJSON: HTTP 요청 바디에서 JSON을 읽어 대상 구조체로 디코딩한다.
func ReadJSON(r *http.Request, out any, maxBytes int64) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	return DecodeJSON(r.Body, out, maxBytes)
}

// DecodeJSON: 최대 maxBytes 까지만 읽어 JSON 을 디코딩한다. (요청/응답 바디 공용)
func DecodeJSON(body io.Reader, out any, maxBytes int64) error {
	raw, err := io.ReadAll(io.LimitReader(body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}
	if int64(len(raw)) > maxBytes {
		return fmt.Errorf("%w: limit=%d", ErrBodyTooLarge, maxBytes)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode json failed: %w", err)
	}
	return nil
}

// WriteJSON: 데이터를 JSON으로 인코딩하여 HTTP 응답으로 전송한다.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json failed: %w", err)
	}
	return nil
}
