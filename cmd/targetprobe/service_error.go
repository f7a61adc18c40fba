// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/targetprobe/targetprobe/internal/buildconf"
	"github.com/targetprobe/targetprobe/internal/issue"
	"github.com/targetprobe/targetprobe/internal/signals"
	"github.com/targetprobe/targetprobe/pkg/cueutil"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer: a catalog issue page and a pre-styled message printed before
// it. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// diagnose maps a failure to its catalog page and exit code. An explicit
// ServiceError issue wins over the error chain.
func diagnose(err error) (*ServiceError, int) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.IssueID != 0 {
		return svcErr, exitCodeFor(svcErr.IssueID)
	}

	var (
		id      issue.Id
		styled  string
		probe   *signals.ToolchainProbeError
		invalid *cueutil.ValidationError
	)
	switch {
	case errors.Is(err, platform.ErrUnresolvedApplePlatform):
		id = issue.UnresolvedApplePlatformId
	case errors.Is(err, platform.ErrUnresolvedBSDVariant):
		id = issue.UnresolvedBSDVariantId
	case errors.Is(err, platform.ErrUnresolvedPlatform):
		id = issue.UnresolvedPlatformId
	case errors.Is(err, exec.ErrNotFound):
		id = issue.CompilerNotFoundId
	case errors.As(err, &probe):
		id = issue.ToolchainProbeFailedId
		if stderr := strings.TrimSpace(probe.Stderr); stderr != "" {
			styled = ErrorStyle.Render("compiler output:") + "\n" + VerboseStyle.Render(stderr) + "\n"
		}
	case errors.Is(err, signals.ErrInvalidDescriptor),
		errors.Is(err, signals.ErrUnsupportedDescriptor),
		errors.Is(err, platform.ErrInvalidSignal),
		errors.Is(err, cueutil.ErrFileTooLarge),
		errors.As(err, &invalid):
		id = issue.DescriptorInvalidId
	case errors.Is(err, buildconf.ErrUnknownConfiguration):
		id = issue.TargetNotFoundId
	}

	return newServiceError(err, id, styled), exitCodeFor(id)
}

func exitCodeFor(id issue.Id) int {
	switch id {
	case issue.UnresolvedPlatformId, issue.UnresolvedApplePlatformId, issue.UnresolvedBSDVariantId:
		return ExitUnresolved
	case issue.ToolchainProbeFailedId, issue.CompilerNotFoundId:
		return ExitToolchain
	case issue.DescriptorInvalidId, issue.ConfigLoadFailedId, issue.TargetNotFoundId:
		return ExitInput
	default:
		return ExitFailure
	}
}

// failure renders err for the user and returns it as an *ExitError.
func (a *App) failure(err error) error {
	svcErr, code := diagnose(err)
	renderServiceError(a.stderr, svcErr, a.glamourStyle(), a.logger)
	return &ExitError{Code: code, Err: err}
}

// renderServiceError prints any styled message first, then the optional issue
// help page.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string, logger *log.Logger) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display, with suggestions
// for an ActionableError and its cause chain in verbose mode.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
