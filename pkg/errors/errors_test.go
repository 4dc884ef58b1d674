package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad value %d", 42)

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "bad value 42" {
		t.Errorf("Message = %q, want %q", err.Message, "bad value 42")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeUnknownUnit, "unknown unit"),
			want: "UNKNOWN_UNIT: unknown unit",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInternal, fmt.Errorf("disk full"), "write failed"),
			want: "INTERNAL_ERROR: write failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "context")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidCanvas, "bad canvas")

	if !Is(err, ErrCodeInvalidCanvas) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("Is() should not match a plain error")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) should be false")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeUnknownCountry, "no such country")
	outer := fmt.Errorf("compose: %w", inner)

	if !Is(outer, ErrCodeUnknownCountry) {
		t.Error("Is() should find the code through wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "nope")); got != ErrCodeUnsupported {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeUnsupported)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: webp")
	if got := UserMessage(err); got != "invalid format: webp" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	if strings.Contains(UserMessage(err), string(ErrCodeInvalidFormat)) {
		t.Error("UserMessage() should strip the code prefix")
	}

	plain := fmt.Errorf("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain error")
	}
}
