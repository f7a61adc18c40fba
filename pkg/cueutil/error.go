// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when a document exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

type (
	// ValidationError is a CUE compile, validation or decode failure in a
	// user document.
	ValidationError struct {
		// FilePath is the document being validated.
		FilePath string

		// CUEPath is the path of the invalid value (e.g. "targets[0].name"),
		// empty when the failure is not tied to a field.
		CUEPath string

		// Message is the CUE error message.
		Message string
	}

	// FileTooLargeError is returned by CheckFileSize. It wraps ErrFileTooLarge.
	FileTooLargeError struct {
		FilePath string
		Size     int64
		Max      int64
	}
)

func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.FilePath, e.Size, e.Max)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts a CUE error into a *ValidationError whose CUEPath uses
// JSON-path notation:
//
//	config.cue: toolchain.args[1]: conflicting values 3 and string
//
// Several CUE errors are folded into one ValidationError listing each of them.
// Errors that do not come from CUE are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	if len(cueErrs) == 1 {
		path, msg := splitCUEError(cueErrs[0])
		return &ValidationError{FilePath: filePath, CUEPath: path, Message: msg}
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		path, msg := splitCUEError(e)
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	return &ValidationError{
		FilePath: filePath,
		Message:  "validation failed:\n  " + strings.Join(lines, "\n  "),
	}
}

// splitCUEError returns the JSON path and the message of a single CUE error,
// with the path prefix CUE sometimes repeats in the message removed.
func splitCUEError(e cueerrors.Error) (path, msg string) {
	path = formatPath(cueerrors.Path(e))
	msg = e.Error()
	if path != "" && strings.HasPrefix(msg, path) {
		msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
	}
	return path, msg
}

// formatPath turns a CUE path such as ["targets", "0", "name"] into
// "targets[0].name".
func formatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns a *FileTooLargeError when data is larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &FileTooLargeError{FilePath: filename, Size: int64(len(data)), Max: maxSize}
	}
	return nil
}
