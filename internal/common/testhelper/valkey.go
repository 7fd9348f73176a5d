// Package testhelper: 테스트 공용 헬퍼 (miniredis 기반 Valkey 클라이언트 등)
package testhelper

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"
)

// NewMiniredisClient: 테스트마다 독립된 miniredis 인스턴스와 Valkey 클라이언트를 생성합니다.
// 정리는 t.Cleanup 에 등록되므로 호출자가 Close 할 필요가 없습니다.
func NewMiniredisClient(t *testing.T) (valkey.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{mr.Addr()},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	if err != nil {
		t.Fatalf("valkey client create failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client, mr
}

// DiscardLogger: 출력을 버리는 테스트용 로거를 반환합니다.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
