// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolchainProbe is returned when the C compiler could not be run or
	// its preprocessor output could not be read.
	ErrToolchainProbe = errors.New("toolchain probe failed")

	// ErrUnsupportedDescriptor is returned for descriptor files that are
	// neither CUE nor TOML.
	ErrUnsupportedDescriptor = errors.New("unsupported target descriptor format")

	// ErrInvalidDescriptor is returned when a descriptor decodes but names an
	// invalid signal.
	ErrInvalidDescriptor = errors.New("invalid target descriptor")
)

type (
	// ToolchainProbeError describes a failed compiler run. It matches both
	// ErrToolchainProbe and the underlying cause (exec.ErrNotFound,
	// *exec.ExitError, context.Canceled) with errors.Is and errors.As.
	ToolchainProbeError struct {
		// Command is the full argv that was run, sandbox prefix included.
		Command []string
		// Stderr is the trimmed standard error of the compiler, if any.
		Stderr string
		Err    error
	}

	// UnsupportedDescriptorError is returned by LoadDescriptor for unknown
	// file extensions. It wraps ErrUnsupportedDescriptor.
	UnsupportedDescriptorError struct {
		Path string
	}
)

func (e *ToolchainProbeError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", ErrToolchainProbe, strings.Join(e.Command, " "), e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *ToolchainProbeError) Unwrap() []error {
	return []error{ErrToolchainProbe, e.Err}
}

func (e *UnsupportedDescriptorError) Error() string {
	return fmt.Sprintf("%s: %s (want .cue or .toml)", ErrUnsupportedDescriptor, e.Path)
}

func (e *UnsupportedDescriptorError) Unwrap() error { return ErrUnsupportedDescriptor }
