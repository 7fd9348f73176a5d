// Package errors: 힌트 서비스 전체에서 공용으로 사용되는 인프라 에러 타입들을 정의한다.
// 저장소(Valkey, DB)와 원격 힌트 API 호출 실패를 구분하기 위해 사용한다.
package errors

import (
	"errors"
	"fmt"
)

// RedisError: Redis/Valkey 작업을 수행하는 도중 발생한 에러
type RedisError struct {
	Operation string
	Err       error
}

func (e RedisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis error operation=%s", e.Operation)
	}
	return fmt.Sprintf("redis error operation=%s: %v", e.Operation, e.Err)
}

func (e RedisError) Unwrap() error { return e.Err }

// DatabaseError: 데이터베이스(PostgreSQL, SQLite) 작업을 수행하는 도중 발생한 에러
type DatabaseError struct {
	Operation string
	Err       error
}

func (e DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("db error operation=%s", e.Operation)
	}
	return fmt.Sprintf("db error operation=%s: %v", e.Operation, e.Err)
}

func (e DatabaseError) Unwrap() error { return e.Err }

// RemoteCallError: 원격 힌트 API 호출 자체가 실패한 경우 (네트워크, 타임아웃, HTTP 상태 코드)
type RemoteCallError struct {
	Endpoint   string
	StatusCode int // 응답을 받지 못했으면 0
	Err        error
}

func (e RemoteCallError) Error() string {
	msg := fmt.Sprintf("remote call failed endpoint=%s", e.Endpoint)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s status=%d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e RemoteCallError) Unwrap() error { return e.Err }

// InvalidResponseError: 원격 API 응답은 받았으나 형식이 올바르지 않은 경우
type InvalidResponseError struct {
	Reason string
}

func (e InvalidResponseError) Error() string {
	if e.Reason == "" {
		return "invalid remote response"
	}
	return "invalid remote response: " + e.Reason
}

// IsStorageError: 저장소 계층(Redis, DB)에서 발생한 에러인지 확인한다.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	var redisErr RedisError
	if errors.As(err, &redisErr) {
		return true
	}
	var dbErr DatabaseError
	return errors.As(err, &dbErr)
}

// IsRemoteFailure: 원격 힌트 API 호출 실패 또는 잘못된 응답인지 확인한다.
func IsRemoteFailure(err error) bool {
	if err == nil {
		return false
	}
	var callErr RemoteCallError
	if errors.As(err, &callErr) {
		return true
	}
	var respErr InvalidResponseError
	return errors.As(err, &respErr)
}
