// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/targetprobe/targetprobe/internal/signals"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

// ErrNoSignals is returned by classify when neither -D nor --descriptor is given.
var ErrNoSignals = errors.New("no signals given: pass -D NAME[=VALUE] or --descriptor FILE")

// sourceFlags selects where a command reads its signals from. Explicit
// signals (a descriptor and -D defines) win over --host, which wins over the
// toolchain probe.
type sourceFlags struct {
	host       bool
	cc         string
	descriptor string
	defines    []string
}

func (f *sourceFlags) registerProbe(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.host, "host", false, "use the Go host table instead of running a C compiler")
	cmd.Flags().StringVar(&f.cc, "cc", "", "C compiler command line (default: toolchain.cc, $CC, cc)")
}

func (f *sourceFlags) registerExplicit(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.defines, "define", "D", nil, "add a signal NAME[=VALUE] (repeatable)")
	cmd.Flags().StringVar(&f.descriptor, "descriptor", "", "read signals from a .cue or .toml target descriptor")
}

func (f *sourceFlags) explicit() bool {
	return f.descriptor != "" || len(f.defines) > 0
}

// reader returns the signal reader and a display name for it.
func (f *sourceFlags) reader(app *App) (signals.Reader, string, error) {
	defines, err := parseDefines(f.defines)
	if err != nil {
		return nil, "", err
	}

	var (
		base signals.Reader
		name string
	)
	switch {
	case f.descriptor != "":
		base = app.Readers.Descriptor(f.descriptor)
		name = strings.TrimSuffix(filepath.Base(f.descriptor), filepath.Ext(f.descriptor))
	case len(f.defines) > 0:
		return signals.Static(defines), "defines", nil
	case f.host:
		base, name = app.Readers.Host(), "host"
	default:
		base, name = app.Readers.Toolchain(app.toolchainConfig(f.cc)), "toolchain"
	}

	if defines.Len() > 0 {
		base = signals.Overlay(base, defines)
	}
	return base, name, nil
}

// parseDefines parses -D arguments. A bare NAME gets the value "1", like the
// compiler's own -D.
func parseDefines(defs []string) (platform.SignalSet, error) {
	values := make(map[platform.Signal]string, len(defs))
	for _, def := range defs {
		sig, value, err := platform.ParseSignal(def)
		if err != nil {
			return platform.SignalSet{}, fmt.Errorf("-D %s: %w", def, err)
		}
		values[sig] = value
	}
	return platform.NewSignalSet(values), nil
}
