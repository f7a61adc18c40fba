// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/targetprobe/targetprobe/internal/buildconf"
	"github.com/targetprobe/targetprobe/internal/config"
)

func newTargetsCommand(app *App) *cobra.Command {
	var (
		tolerate bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "targets [NAME...]",
		Short: "Classify the configured cross-compilation targets",
		Long: `Classify every target listed in the config file, or only the named ones.

Targets are classified concurrently, one build configuration each. A target
that fails does not stop the others; the command exits non-zero if any failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := app.requireConfig()
			if err != nil {
				return err
			}

			entries, err := selectTargets(cfg.Targets, args)
			if err != nil {
				return app.failure(err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no targets configured)"))
				return nil
			}

			session := buildconf.NewSession(app.classifyOptions(tolerate)...)
			defer session.Close()
			for _, e := range entries {
				if _, err := session.Configure(string(e.Name), app.Readers.Descriptor(string(e.Descriptor))); err != nil {
					return app.failure(err)
				}
			}

			outcomes, err := session.ClassifyAll(cmd.Context())
			if err != nil {
				return err
			}

			reports := make([]profileReport, len(outcomes))
			var failed []buildconf.Outcome
			for i, o := range outcomes {
				reports[i] = newProfileReport(o.Name, o.Resolution, o.Err)
				if o.Err != nil {
					failed = append(failed, o)
				}
			}
			if err := writeReports(app.stdout, f, reports); err != nil {
				return err
			}

			switch {
			case len(failed) == 0:
				return nil
			case len(outcomes) == 1:
				return app.failure(failed[0].Err)
			default:
				return &ExitError{
					Code: ExitUnresolved,
					Err:  fmt.Errorf("%d of %d targets failed to classify", len(failed), len(outcomes)),
				}
			}
		},
	}

	registerClassifyFlags(cmd, &tolerate, &format)
	return cmd
}

// selectTargets returns the entries named in names, or all entries when names
// is empty.
func selectTargets(entries []config.TargetEntry, names []string) ([]config.TargetEntry, error) {
	if len(names) == 0 {
		return entries, nil
	}

	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	selected := make([]config.TargetEntry, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(entries, func(e config.TargetEntry) bool { return string(e.Name) == name })
		if i < 0 {
			return nil, fmt.Errorf("target %q: %w", name, buildconf.ErrUnknownConfiguration)
		}
		selected = append(selected, entries[i])
	}
	return selected, nil
}
