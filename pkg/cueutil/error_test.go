// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "target.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "target.cue")
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
		if !strings.Contains(err.Error(), "target.cue") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"empty path", []string{}, ""},
		{"single element", []string{"defines"}, "defines"},
		{"nested path", []string{"toolchain", "cc"}, "toolchain.cc"},
		{"array index", []string{"targets", "0", "name"}, "targets[0].name"},
		{"nested arrays", []string{"toolchain", "args", "1"}, "toolchain.args[1]"},
		{"leading number is a field", []string{"0", "name"}, "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if result := formatPath(tt.path); result != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"within limit", 11, false},
		{"exact limit", 100, false},
		{"exceeding limit", 101, true},
		{"empty", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), 100, "target.cue")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("error should wrap ErrFileTooLarge, got: %v", err)
			}
			if want := "target.cue: file size 101 bytes exceeds maximum 100 bytes"; err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	withPath := &ValidationError{FilePath: "config.cue", CUEPath: "toolchain.cc", Message: "expected string, got int"}
	if got, want := withPath.Error(), "config.cue: toolchain.cc: expected string, got int"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	noPath := &ValidationError{FilePath: "config.cue", Message: "syntax error"}
	if got, want := noPath.Error(), "config.cue: syntax error"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
