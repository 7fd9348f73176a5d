// Package ptr: 선택 값(tri-state 등)을 포인터로 다루기 위한 헬퍼.
package ptr

import "strconv"

// Bool: bool 포인터를 만든다.
func Bool(v bool) *bool { return &v }

// FormatBool: 로그용 tri-state 표기 (nil 이면 "unknown")
func FormatBool(v *bool) string {
	if v == nil {
		return "unknown"
	}
	return strconv.FormatBool(*v)
}
