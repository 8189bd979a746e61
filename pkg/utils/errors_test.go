package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{NewDecodeError("bad bytes", nil), ErrorKindDecode},
		{NewNoTextError("empty"), ErrorKindNoText},
		{NewUnsupportedError("not a zip", nil), ErrorKindUnsupported},
		{NewToolError("exit 1", nil), ErrorKindTool},
		{errors.New("plain error"), ErrorKindTool},
		{fmt.Errorf("wrapped: %w", NewUnsupportedError("corrupt", nil)), ErrorKindUnsupported},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestWrapErrorPreservesKind(t *testing.T) {
	cause := NewUnsupportedError("file is not a zip file", nil)
	wrapped := WrapError(cause, "", "extraction failed")

	if wrapped.Kind != ErrorKindUnsupported {
		t.Errorf("wrapped kind = %s, want %s", wrapped.Kind, ErrorKindUnsupported)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause by kind")
	}
}

func TestWrapErrorExplicitKind(t *testing.T) {
	wrapped := WrapError(errors.New("disk full"), ErrorKindIO, "failed to save output")
	if wrapped.Kind != ErrorKindIO {
		t.Errorf("wrapped kind = %s, want %s", wrapped.Kind, ErrorKindIO)
	}
}

func TestWrapNilError(t *testing.T) {
	if WrapError(nil, ErrorKindIO, "nothing") != nil {
		t.Error("wrapping nil should yield nil")
	}
}

func TestIsKind(t *testing.T) {
	err := NewNoTextError("no text extractable from the specified file")
	if !IsKind(err, ErrorKindNoText) {
		t.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, ErrorKindTool) {
		t.Error("IsKind should not match a different kind")
	}
}
