package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/park285/action-reaction-hints/internal/common/httputil"
)

// ErrorCode: API 오류 코드
type ErrorCode string

// 오류 코드 목록
const (
	ErrorCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorCodeCache        ErrorCode = "CACHE_ERROR"
)

// FieldError: 필드 검증 실패 상세
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// ErrorResponse: API 오류 응답 본문
type ErrorResponse struct {
	ErrorCode string       `json:"error_code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code ErrorCode, message string, fields []FieldError) {
	_ = httputil.WriteJSON(w, status, ErrorResponse{
		ErrorCode: string(code),
		Message:   message,
		RequestID: httputil.RequestIDFrom(r.Context()),
		Errors:    fields,
	})
}

// writeDecodeError: 바디 파싱/검증 실패를 400/413/422 로 변환한다.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		fields := make([]FieldError, 0, len(validationErrors))
		for _, validationErr := range validationErrors {
			fields = append(fields, FieldError{
				Field:   validationErr.Field(),
				Message: validationErr.Error(),
				Value:   validationErr.Value(),
			})
		}
		writeError(w, r, http.StatusUnprocessableEntity, ErrorCodeValidation, "Input validation failed", fields)
	case errors.Is(err, httputil.ErrBodyTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, ErrorCodeInvalidInput, "Request body too large", nil)
	default:
		writeError(w, r, http.StatusBadRequest, ErrorCodeInvalidInput, err.Error(), nil)
	}
}
