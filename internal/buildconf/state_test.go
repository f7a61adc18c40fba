// SPDX-License-Identifier: MPL-2.0

package buildconf

import (
	"errors"
	"testing"
)

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StatePending, "pending"},
		{StateConfigured, "configured"},
		{StateFailed, "failed"},
		{StateClosed, "closed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateValidate(t *testing.T) {
	t.Parallel()

	for _, s := range []State{StatePending, StateConfigured, StateFailed, StateClosed} {
		if err := s.Validate(); err != nil {
			t.Errorf("State(%s).Validate() = %v", s, err)
		}
	}

	err := State(-1).Validate()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.Value != -1 {
		t.Errorf("expected *InvalidStateError{Value: -1}, got %v", err)
	}
}

func TestStateIsTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  bool
	}{
		{StatePending, false},
		{StateConfigured, false},
		{StateFailed, true},
		{StateClosed, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.want {
			t.Errorf("State(%s).IsTerminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
