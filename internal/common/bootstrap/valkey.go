package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	commonconfig "github.com/park285/action-reaction-hints/internal/common/config"
	"github.com/park285/action-reaction-hints/internal/common/valkeyx"
)

// ToValkeyConfig: 힌트 캐시용 Valkey 설정을 만든다.
// 만료 판정은 캐시 엔트리 timestamp 로 하므로 클라이언트 사이드 캐싱은 끈다.
// 단일 인스턴스 배포만 지원한다.
func ToValkeyConfig(cfg commonconfig.RedisConfig) valkeyx.Config {
	return valkeyx.Config{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:          cfg.Password,
		DB:                cfg.DB,
		DialTimeout:       cfg.DialTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		DisableCache:      true,
		ForceSingleClient: true,
	}
}

// NewAndPingValkeyClient: Valkey 클라이언트를 생성하고 PING 으로 연결을 확인합니다.
// 실패 시 생성된 리소스를 정리하고 에러를 반환합니다.
func NewAndPingValkeyClient(
	ctx context.Context,
	cfg commonconfig.RedisConfig,
	logger *slog.Logger,
) (valkey.Client, func(), error) {
	client, err := valkeyx.NewClient(ToValkeyConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("create valkey client failed: %w", err)
	}

	closeFn := func() {
		valkeyx.Close(client)
		logger.Debug("valkey_client_closed")
	}

	if pingErr := valkeyx.Ping(ctx, client); pingErr != nil {
		closeFn()
		return nil, nil, fmt.Errorf("valkey ping failed: %w", pingErr)
	}

	return client, closeFn, nil
}
