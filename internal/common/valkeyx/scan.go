// Package valkeyx 는 Redis/Valkey 클라이언트 공통 유틸리티를 제공한다.
// 연결, nil 체크, 키 순회 등의 헬퍼 함수들을 포함한다.
package valkeyx

import (
	"context"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"
)

// DefaultScanCount: SCAN 한 번에 요청할 키 개수 힌트
const DefaultScanCount = 500

// ScanKeys: SCAN 커서를 끝까지 순회하며 pattern 에 맞는 키를 모두 반환한다.
// KEYS 명령과 달리 서버를 오래 블로킹하지 않는다.
func ScanKeys(ctx context.Context, client valkey.Client, pattern string, count int64) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if count <= 0 {
		count = DefaultScanCount
	}

	var (
		cursor uint64
		keys   []string
	)
	for {
		cmd := client.B().Scan().Cursor(cursor).Match(pattern).Count(count).Build()
		entry, err := client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan keys failed pattern=%s: %w", pattern, err)
		}
		keys = append(keys, entry.Elements...)
		cursor = entry.Cursor
		if cursor == 0 {
			return keys, nil
		}
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// PrefixPattern: prefix 로 시작하는 키만 고르는 MATCH 패턴. prefix 의 glob 메타 문자는 이스케이프한다.
func PrefixPattern(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}
