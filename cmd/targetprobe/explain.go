// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/targetprobe/targetprobe/pkg/platform"
)

func newExplainCommand(app *App) *cobra.Command {
	var (
		src      sourceFlags
		tolerate bool
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the rule cascade and which rule matched",
		Long: `Walk the classification cascade for a signal set.

Rules are evaluated top to bottom and the first match wins. Rules above the
match did not apply; rules below it were never evaluated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, name, err := src.reader(app)
			if err != nil {
				return app.failure(err)
			}
			set, err := r.Read(cmd.Context())
			if err != nil {
				return app.failure(err)
			}

			var opts []platform.ClassifyOption
			if tolerate || app.config().Classify.TolerateUnknown {
				opts = append(opts, platform.WithTolerateUnknown())
			}
			e := platform.Explain(set, opts...)

			rules := platform.Rules()
			matched := slices.Index(rules, e.Rule)

			fmt.Fprintln(app.stdout, TitleStyle.Render("Rule cascade")+SubtitleStyle.Render(" ("+name+", "+fmt.Sprint(set.Len())+" signals)"))
			for i, rule := range rules {
				switch {
				case i < matched:
					fmt.Fprintf(app.stdout, "  %s %s\n", SubtitleStyle.Render(rule), SubtitleStyle.Render("no match"))
				case i == matched:
					fmt.Fprintf(app.stdout, "%s %s\n", TitleStyle.Render("→ "+rule), SuccessStyle.Render("matched"))
				default:
					fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render(rule+" (not evaluated)"))
				}
			}
			fmt.Fprintln(app.stdout)

			if e.Err != nil {
				fmt.Fprintf(app.stdout, "%s%s\n", keyColumnStyle.Render("Result"), ErrorStyle.Render(e.Err.Error()))
				return app.failure(e.Err)
			}
			writeField(app.stdout, "Result", SuccessStyle.Render(e.Profile.Family().String()))
			return nil
		},
	}

	src.registerProbe(cmd)
	src.registerExplicit(cmd)
	cmd.Flags().BoolVar(&tolerate, "tolerate-unknown", false, "accept signal sets that match no rule")
	return cmd
}
