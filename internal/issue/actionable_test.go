// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "probe toolchain"}, "failed to probe toolchain"},
		{"with resource", &ActionableError{Operation: "load descriptor", Resource: "ios.cue"}, "failed to load descriptor: ios.cue"},
		{"with cause", &ActionableError{Operation: "probe toolchain", Cause: cause}, "failed to probe toolchain: exit status 1"},
		{
			"all fields",
			&ActionableError{Operation: "probe toolchain", Resource: "clang", Cause: cause, Suggestions: []string{"ignored"}},
			"failed to probe toolchain: clang: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("classify target").Wrap(fmt.Errorf("wrapped: %w", sentinel)).BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the sentinel through the cause chain")
	}

	var ae *ActionableError
	if !errors.As(fmt.Errorf("outer: %w", err), &ae) || ae.Operation != "classify target" {
		t.Errorf("errors.As should find the ActionableError, got %v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("no such file")
	ae := NewErrorContext().
		WithOperation("load descriptor").
		WithResource("mingw.toml").
		WithSuggestions("Check the path", "Use an absolute path").
		Wrap(fmt.Errorf("open mingw.toml: %w", root)).
		Build()

	short := ae.Format(false)
	if !strings.HasPrefix(short, "failed to load descriptor: mingw.toml") {
		t.Errorf("Format(false) = %q", short)
	}
	if !strings.Contains(short, "  • Check the path") || !strings.Contains(short, "  • Use an absolute path") {
		t.Errorf("Format(false) should list suggestions:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	long := ae.Format(true)
	if !strings.Contains(long, "Error chain:") || !strings.Contains(long, "2. no such file") {
		t.Errorf("Format(true) should number the cause chain:\n%s", long)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without an operation = %v, want untyped nil", err)
	}

	ae := NewErrorContext().
		WithOperation("probe toolchain").
		WithSuggestion("one").
		WithSuggestion("two").
		Build()
	if !ae.HasSuggestions() || len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("boom")
	ae := WrapWithContext(cause, "classify target", "android")
	if ae.Operation != "classify target" || ae.Resource != "android" || !errors.Is(ae, cause) {
		t.Errorf("WrapWithContext() = %+v", ae)
	}
	if ae.HasSuggestions() {
		t.Error("WrapWithContext should not add suggestions")
	}
}
