package valkeyx

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/park285/action-reaction-hints/internal/common/errors"
)

// WrapRedisError: 저장소 실패를 RedisError 로 감싼다.
// 호출자 취소/마감은 저장소 장애가 아니므로 RedisError 로 분류하지 않는다.
func WrapRedisError(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("valkey %s interrupted: %w", operation, err)
	default:
		return cerrors.RedisError{Operation: operation, Err: err}
	}
}
