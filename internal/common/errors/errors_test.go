package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsStorageError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", base, false},
		{"redis", RedisError{Operation: "get", Err: base}, true},
		{"wrapped db", fmt.Errorf("ctx: %w", DatabaseError{Operation: "kv_get", Err: base}), true},
		{"remote", RemoteCallError{Endpoint: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStorageError(tt.err); got != tt.want {
				t.Errorf("IsStorageError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRemoteFailure(t *testing.T) {
	if !IsRemoteFailure(fmt.Errorf("wrap: %w", RemoteCallError{Endpoint: "http://h/api", StatusCode: 502})) {
		t.Error("wrapped remote call error must be detected")
	}
	if !IsRemoteFailure(InvalidResponseError{Reason: "success=false"}) {
		t.Error("invalid response must be detected")
	}
	if IsRemoteFailure(DatabaseError{Operation: "kv_get"}) || IsRemoteFailure(nil) {
		t.Error("non-remote errors must not be detected")
	}
}

func TestErrorMessages(t *testing.T) {
	base := errors.New("refused")

	err := RemoteCallError{Endpoint: "http://h/api", StatusCode: 503, Err: base}
	if got, want := err.Error(), "remote call failed endpoint=http://h/api status=503: refused"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !errors.Is(err, base) {
		t.Error("remote call error must unwrap")
	}
	if got := (InvalidResponseError{}).Error(); got != "invalid remote response" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := (RedisError{Operation: "scan"}).Error(); got != "redis error operation=scan" {
		t.Errorf("unexpected message: %q", got)
	}
}
