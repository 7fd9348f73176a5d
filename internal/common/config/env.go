package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv: 환경 변수를 읽어 공백을 제거합니다. 값이 없거나 비어 있으면 ok=false 입니다.
func lookupEnv(key string) (string, bool) {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return "", false
	}
	return rawValue, true
}

// lookupFirstEnv: 여러 키 중 처음으로 값이 존재하는 키와 값을 반환합니다.
func lookupFirstEnv(keys []string) (string, string, bool) {
	for _, key := range keys {
		if value, ok := lookupEnv(key); ok {
			return key, value, true
		}
	}
	return "", "", false
}

func parseBool(key string, rawValue string) (bool, error) {
	switch strings.ToLower(rawValue) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool env %s=%q", key, rawValue)
	}
}

// IntFromEnv: 환경 변수에서 정수 값을 읽어옵니다.
func IntFromEnv(key string, defaultValue int) (int, error) {
	return IntFromEnvFirstNonEmpty([]string{key}, defaultValue)
}

// Int64FromEnv: 환경 변수에서 64비트 정수 값을 읽어옵니다.
func Int64FromEnv(key string, defaultValue int64) (int64, error) {
	return Int64FromEnvFirstNonEmpty([]string{key}, defaultValue)
}

// Float64FromEnv: 환경 변수에서 64비트 실수 값을 읽어옵니다.
func Float64FromEnv(key string, defaultValue float64) (float64, error) {
	rawValue, ok := lookupEnv(key)
	if !ok {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float64 env %s=%q: %w", key, rawValue, err)
	}
	return value, nil
}

// DurationSecondsFromEnv: 환경 변수에서 초 단위 시간을 읽어 Duration으로 변환합니다.
func DurationSecondsFromEnv(key string, defaultSeconds int64) (time.Duration, error) {
	valueSeconds, err := Int64FromEnv(key, defaultSeconds)
	if err != nil {
		return 0, err
	}
	if valueSeconds < 0 {
		return 0, fmt.Errorf("invalid duration seconds env %s=%d", key, valueSeconds)
	}
	return time.Duration(valueSeconds) * time.Second, nil
}

// DurationMillisFromEnv: 환경 변수에서 밀리초 단위 시간을 읽어 Duration으로 변환합니다.
func DurationMillisFromEnv(key string, defaultMillis int64) (time.Duration, error) {
	valueMillis, err := Int64FromEnv(key, defaultMillis)
	if err != nil {
		return 0, err
	}
	if valueMillis < 0 {
		return 0, fmt.Errorf("invalid duration millis env %s=%d", key, valueMillis)
	}
	return time.Duration(valueMillis) * time.Millisecond, nil
}

// BoolFromEnv: 환경 변수에서 불리언 값을 읽어옵니다. (true/1/yes/y, false/0/no/n)
func BoolFromEnv(key string, defaultValue bool) (bool, error) {
	rawValue, ok := lookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	return parseBool(key, rawValue)
}

// StringFromEnv: 환경 변수에서 문자열 값을 읽어옵니다.
func StringFromEnv(key string, defaultValue string) string {
	return StringFromEnvFirstNonEmpty([]string{key}, defaultValue)
}

// StringFromEnvFirstNonEmpty: 여러 환경 변수 키 중 첫 번째로 값이 존재하는 것을 반환합니다.
func StringFromEnvFirstNonEmpty(keys []string, defaultValue string) string {
	_, value, ok := lookupFirstEnv(keys)
	if !ok {
		return defaultValue
	}
	return value
}

// IntFromEnvFirstNonEmpty: 여러 환경 변수 키 중 첫 번째로 값이 존재하는 정수를 반환합니다.
func IntFromEnvFirstNonEmpty(keys []string, defaultValue int) (int, error) {
	key, rawValue, ok := lookupFirstEnv(keys)
	if !ok {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(rawValue)
	if err != nil {
		return 0, fmt.Errorf("invalid int env %s=%q: %w", key, rawValue, err)
	}
	return value, nil
}

// Int64FromEnvFirstNonEmpty: 여러 환경 변수 키 중 첫 번째로 값이 존재하는 64비트 정수를 반환합니다.
func Int64FromEnvFirstNonEmpty(keys []string, defaultValue int64) (int64, error) {
	key, rawValue, ok := lookupFirstEnv(keys)
	if !ok {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(rawValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 env %s=%q: %w", key, rawValue, err)
	}
	return value, nil
}
