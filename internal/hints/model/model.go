// Package model: 힌트 서비스의 도메인 타입 (언어, 힌트 세트, 캐시 엔트리)
package model

import (
	"errors"
	"fmt"
	"strings"
)

// HintCount: 힌트 사다리의 고정 길이
const HintCount = 4

// Language: 힌트 언어 코드
type Language string

// 지원 언어 목록
const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

// ParseLanguage: 대소문자 구분 없이 언어 코드를 해석합니다. 알 수 없는 값은 영어로 취급합니다.
func ParseLanguage(raw string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case LanguageTamil:
		return LanguageTamil
	default:
		return LanguageEnglish
	}
}

// IsValid: 지원하는 언어 코드인지 확인합니다.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageTamil
}

func (l Language) String() string { return string(l) }

// HintSet: 점점 더 많은 정보를 드러내는 4단계 힌트.
//   - [0] 카테고리/설명 힌트
//   - [1] 글자 수 힌트
//   - [2] 첫 글자 + 설명 힌트
//   - [3] 일부 글자가 드러난 패턴 (가장 많이 드러남)
type HintSet [HintCount]string

// ErrInvalidHintCount: 힌트 개수가 4개가 아닐 때
var ErrInvalidHintCount = errors.New("hint set must contain exactly 4 hints")

// ErrBlankHint: 빈 힌트가 포함되어 있을 때
var ErrBlankHint = errors.New("hint set contains a blank hint")

// NewHintSet: 슬라이스를 검증하여 HintSet 으로 변환합니다.
func NewHintSet(hints []string) (HintSet, error) {
	var out HintSet
	if len(hints) != HintCount {
		return out, fmt.Errorf("%w: got %d", ErrInvalidHintCount, len(hints))
	}
	for i, hint := range hints {
		if strings.TrimSpace(hint) == "" {
			return HintSet{}, fmt.Errorf("%w: index=%d", ErrBlankHint, i)
		}
		out[i] = hint
	}
	return out, nil
}

// Slice: JSON 응답 등에 쓰기 위한 슬라이스 복사본을 반환합니다.
func (h HintSet) Slice() []string {
	out := make([]string, HintCount)
	copy(out, h[:])
	return out
}

// IsComplete: 모든 힌트가 비어 있지 않은지 확인합니다.
func (h HintSet) IsComplete() bool {
	for _, hint := range h {
		if strings.TrimSpace(hint) == "" {
			return false
		}
	}
	return true
}

// HintRequest: 힌트 요청 파라미터 (저장되지 않는 개념적 타입)
type HintRequest struct {
	Word     string
	Topic    string
	UseAI    bool
	Language Language
}

// CacheEntry: 영속 저장소에 JSON 으로 저장되는 캐시 레코드
type CacheEntry struct {
	Word      string   `json:"word"`
	Topic     string   `json:"topic"`
	Language  Language `json:"language"`
	Hints     []string `json:"hints"`
	Timestamp int64    `json:"timestamp"` // epoch millis
}

// CacheStats: 캐시 키 통계
type CacheStats struct {
	TotalCached int      `json:"totalCached"`
	CacheKeys   []string `json:"cacheKeys"`
}

// Source: 힌트가 어디서 왔는지 (로그, 메트릭, API 응답용)
type Source string

// 힌트 출처 목록
const (
	SourceAI             Source = "ai"
	SourceRemoteFallback Source = "remote_fallback"
	SourceCache          Source = "cache"
	SourceStatic         Source = "static"
)
