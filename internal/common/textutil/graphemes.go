// Package textutil: 힌트 생성에 쓰이는 유니코드 문자열 헬퍼.
// 타밀어처럼 결합 문자가 있는 스크립트도 사용자가 인지하는 문자(grapheme cluster) 단위로 다룬다.
package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Graphemes: NFC 정규화 후 문자열을 grapheme cluster 단위로 분리합니다.
// 힌트 표기용이며, 결과를 이어 붙이면 원문이 아니라 NFC 형태가 됩니다.
func Graphemes(s string) []string {
	return SplitGraphemes(norm.NFC.String(s))
}

// SplitGraphemes: 정규화 없이 grapheme cluster 단위로 분리합니다. 이어 붙이면 원문과 같습니다.
func SplitGraphemes(s string) []string {
	if s == "" {
		return nil
	}

	out := make([]string, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// GraphemeCount: 공백을 제외한 grapheme cluster 개수를 반환합니다.
func GraphemeCount(s string) int {
	count := 0
	for _, g := range Graphemes(s) {
		if !IsBlank(g) {
			count++
		}
	}
	return count
}

// IsBlank: 공백으로만 이루어진 grapheme 인지 확인합니다.
func IsBlank(g string) bool {
	return strings.TrimSpace(g) == ""
}

// First: 첫 grapheme 을 반환합니다. 빈 문자열이면 ok=false.
func First(s string) (string, bool) {
	gs := Graphemes(s)
	if len(gs) == 0 {
		return "", false
	}
	return gs[0], true
}
