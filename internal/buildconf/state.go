// SPDX-License-Identifier: MPL-2.0

package buildconf

import (
	"errors"
	"fmt"
)

const (
	// StatePending indicates the configuration has not been resolved yet, or
	// its last read failed with a retryable reader error.
	StatePending State = iota
	// StateConfigured indicates the profile is cached.
	StateConfigured
	// StateFailed is terminal: classification failed and the error is cached.
	StateFailed
	// StateClosed is terminal: the configuration was torn down.
	StateClosed
)

// ErrInvalidState is returned when a State value is not one of the defined states.
var ErrInvalidState = errors.New("invalid state")

type (
	// State is the lifecycle state of a Configuration.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConfigured:
		return "configured"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d (valid: 0=pending, 1=configured, 2=failed, 3=closed)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Validate returns nil if s is one of the defined states.
func (s State) Validate() error {
	switch s {
	case StatePending, StateConfigured, StateFailed, StateClosed:
		return nil
	default:
		return &InvalidStateError{Value: s}
	}
}

// IsTerminal reports whether no further read will change the state.
func (s State) IsTerminal() bool {
	return s == StateFailed || s == StateClosed
}
