// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/targetprobe/targetprobe/internal/buildconf"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

func newDetectCommand(app *App) *cobra.Command {
	var (
		src      sourceFlags
		tolerate bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Classify the host toolchain",
		Long: `Classify the platform targeted by the host C toolchain.

The compiler is taken from --cc, toolchain.cc in the config file, $CC, then cc.
With --host no compiler is run: the signals come from the Go runtime's view
of the host operating system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runClassify(cmd.Context(), &src, tolerate, format)
		},
	}

	src.registerProbe(cmd)
	registerClassifyFlags(cmd, &tolerate, &format)
	return cmd
}

func newClassifyCommand(app *App) *cobra.Command {
	var (
		src      sourceFlags
		tolerate bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify explicit signals or a target descriptor",
		Example: `  targetprobe classify -D __linux__ -D __ANDROID__
  targetprobe classify -D _WIN32 -D _WIN64 -D __MINGW32__ --format json
  targetprobe classify --descriptor targets/ios-sim.cue
  targetprobe classify --descriptor targets/mingw.toml -D _WIN64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !src.explicit() {
				return ErrNoSignals
			}
			return app.runClassify(cmd.Context(), &src, tolerate, format)
		},
	}

	src.registerExplicit(cmd)
	registerClassifyFlags(cmd, &tolerate, &format)
	return cmd
}

func registerClassifyFlags(cmd *cobra.Command, tolerate *bool, format *string) {
	cmd.Flags().BoolVar(tolerate, "tolerate-unknown", false, "report unrecognized targets as unknown instead of failing")
	cmd.Flags().StringVar(format, "format", string(formatText), "output format: text, json or toml")
}

// classifyOptions returns the build configuration options for one command
// run. The flag and classify.tolerate_unknown both enable tolerant mode.
func (a *App) classifyOptions(tolerate bool) []buildconf.Option {
	opts := []buildconf.Option{buildconf.WithLogger(a.logger)}
	if tolerate || a.config().Classify.TolerateUnknown {
		opts = append(opts, buildconf.WithClassifyOptions(platform.WithTolerateUnknown()))
	}
	return opts
}

func (a *App) runClassify(ctx context.Context, src *sourceFlags, tolerate bool, format string) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	r, name, err := src.reader(a)
	if err != nil {
		return a.failure(err)
	}

	c := buildconf.New(name, r, a.classifyOptions(tolerate)...)
	defer c.Close()

	res, err := c.Resolve(ctx)
	if err != nil {
		return a.failure(err)
	}
	return writeReports(a.stdout, f, []profileReport{newProfileReport("", res, nil)})
}
