// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

func newSignalsCommand(app *App) *cobra.Command {
	var (
		src    sourceFlags
		format string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Print the raw signal set",
		Long: `Print the signals a reader produces, before classification.

With --format toml the output is a target descriptor that can be checked in
and classified later with 'targetprobe classify --descriptor'.`,
		Example: `  targetprobe signals --cc "clang --target=aarch64-linux-android21"
  targetprobe signals --format toml --name android > targets/android.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			r, sourceName, err := src.reader(app)
			if err != nil {
				return app.failure(err)
			}
			set, err := r.Read(cmd.Context())
			if err != nil {
				return app.failure(err)
			}
			if name == "" {
				name = sourceName
			}
			return writeSignals(app.stdout, f, name, set)
		},
	}

	src.registerProbe(cmd)
	src.registerExplicit(cmd)
	cmd.Flags().StringVar(&format, "format", string(formatText), "output format: text, json or toml")
	cmd.Flags().StringVar(&name, "name", "", "descriptor name written with --format toml")
	return cmd
}
