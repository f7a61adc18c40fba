// SPDX-License-Identifier: MPL-2.0

package buildconf

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by a Configuration after Close.
	ErrClosed = errors.New("build configuration closed")

	// ErrDuplicateConfiguration is returned by Session.Configure for a name
	// that is already in use.
	ErrDuplicateConfiguration = errors.New("build configuration already exists")

	// ErrUnknownConfiguration is returned for names the session does not hold.
	ErrUnknownConfiguration = errors.New("unknown build configuration")
)

// ConfigurationError attributes a failure to a named configuration. It
// unwraps to the underlying reader, classification or lifecycle error.
type ConfigurationError struct {
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %q: %v", e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
