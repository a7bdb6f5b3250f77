package service

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err:  &ValidationError{Field: "question", Message: "cannot be empty"},
			want: "invalid question: cannot be empty",
		},
		{
			name: "empty field",
			err:  &ValidationError{Field: "", Message: "invalid"},
			want: "invalid request: invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationErrorIsInvalidInput(t *testing.T) {
	err := WrapError(&ValidationError{Field: "top_k", Message: "must not be negative"}, "bad request")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("wrapped validation error should match ErrInvalidInput")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("validation error should not match ErrNotFound")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{name: "nil error", err: nil, msg: "context", wantNil: true},
		{name: "wraps error", err: ErrExternalService, msg: "graph store", wantMsg: "graph store: external service error"},
		{name: "wraps unknown source", err: ErrUnknownSource, msg: "ingest freebase", wantMsg: "ingest freebase: unknown source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("WrapError() should preserve the wrapped error")
			}
		})
	}
}
