// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"

	"github.com/targetprobe/targetprobe/pkg/platform"
)

// DefaultCompiler is used when neither the configuration nor $CC names one.
const DefaultCompiler = "cc"

// probeSource is the translation unit fed to the preprocessor. It pulls in
// the headers that define BSD, _POSIX_VERSION and the TargetConditionals
// macros, and turns the Windows phone partition check (a function-like macro
// the classifier cannot evaluate) into a plain signal.
const probeSource = `#if defined(__unix__) || defined(__unix) || (defined(__APPLE__) && defined(__MACH__))
#include <sys/param.h>
#include <unistd.h>
#endif
#if defined(__APPLE__) && defined(__MACH__)
#include <TargetConditionals.h>
#endif
#if defined(_WIN32) && defined(__has_include)
#if __has_include(<winapifamily.h>)
#include <winapifamily.h>
#if defined(WINAPI_FAMILY_PARTITION) && defined(WINAPI_PARTITION_PHONE_APP)
#if WINAPI_FAMILY_PARTITION(WINAPI_PARTITION_PHONE_APP)
#define TARGETPROBE_WINAPI_PHONE_APP 1
#endif
#endif
#endif
#endif
`

// preprocessArgs make the compiler print every macro defined after
// preprocessing C read from standard input.
var preprocessArgs = []string{"-dM", "-E", "-x", "c", "-"}

type (
	// ToolchainConfig selects the C compiler to probe.
	ToolchainConfig struct {
		// CC is the compiler command line, split with shell rules, so wrappers
		// and flags work: "ccache clang -m32". Empty means $CC, then "cc".
		CC string

		// Args are extra arguments placed before the preprocessing flags,
		// typically --target=, -isysroot or -arch.
		Args []string

		// Sandbox overrides sandbox detection. The zero value detects.
		Sandbox SandboxType

		// Logger receives debug output; nil disables logging.
		Logger *log.Logger
	}

	// runFunc runs argv with stdin and returns its standard output.
	runFunc func(ctx context.Context, argv []string, stdin io.Reader) ([]byte, error)

	toolchainReader struct {
		cfg     ToolchainConfig
		run     runFunc
		sandbox func() SandboxType
		getenv  func(string) string
	}
)

// Toolchain returns a Reader that runs the configured C compiler's
// preprocessor and collects the macros it predefines.
func Toolchain(cfg ToolchainConfig) Reader {
	return &toolchainReader{
		cfg:     cfg,
		run:     runCommand,
		sandbox: DetectSandbox,
		getenv:  os.Getenv,
	}
}

// Read runs the compiler once. Failures to start it, a non-zero exit and
// unreadable output are all returned as *ToolchainProbeError.
func (r *toolchainReader) Read(ctx context.Context) (platform.SignalSet, error) {
	argv, err := r.command()
	if err != nil {
		return platform.SignalSet{}, err
	}

	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("probing toolchain", "command", strings.Join(argv, " "))
	}

	out, err := r.run(ctx, argv, strings.NewReader(probeSource))
	if err != nil {
		probeErr := &ToolchainProbeError{Command: argv, Err: err}
		var stderrErr *stderrError
		if errors.As(err, &stderrErr) {
			probeErr.Stderr = stderrErr.stderr
			probeErr.Err = stderrErr.err
		}
		return platform.SignalSet{}, probeErr
	}

	set, err := ParseMacros(bytes.NewReader(out))
	if err != nil {
		return platform.SignalSet{}, &ToolchainProbeError{Command: argv, Err: err}
	}

	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("toolchain probed", "macros", set.Len())
	}
	return set, nil
}

// command builds the full argv: sandbox prefix, compiler words, extra
// arguments, preprocessing flags.
func (r *toolchainReader) command() ([]string, error) {
	cc := r.cfg.CC
	if cc == "" {
		cc = r.getenv("CC")
	}
	if cc == "" {
		cc = DefaultCompiler
	}

	words, err := shell.Fields(cc, r.getenv)
	if err != nil {
		return nil, &ToolchainProbeError{Command: []string{cc}, Err: fmt.Errorf("parse compiler command: %w", err)}
	}
	if len(words) == 0 {
		return nil, &ToolchainProbeError{Command: []string{cc}, Err: errors.New("empty compiler command")}
	}

	argv := make([]string, 0, len(words)+len(r.cfg.Args)+len(preprocessArgs))
	argv = append(argv, words...)
	argv = append(argv, r.cfg.Args...)
	argv = append(argv, preprocessArgs...)

	st := r.cfg.Sandbox
	if st == SandboxNone {
		st = r.sandbox()
	}
	return HostCommand(st, argv), nil
}

// stderrError carries the compiler's standard error next to the exec error.
type stderrError struct {
	err    error
	stderr string
}

func (e *stderrError) Error() string { return e.err.Error() }

func (e *stderrError) Unwrap() error { return e.err }

func runCommand(ctx context.Context, argv []string, stdin io.Reader) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &stderrError{err: err, stderr: strings.TrimSpace(stderr.String())}
	}
	return stdout.Bytes(), nil
}
