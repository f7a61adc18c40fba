// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "targetprobe",
		Short: "Classify the platform a C/C++ toolchain targets",
		Long: TitleStyle.Render("targetprobe") + SubtitleStyle.Render(" - build-target platform classifier") + `

targetprobe reads the macros a C toolchain predefines (or the Go host table,
or a target descriptor) and resolves them to one platform identity: the OS
family plus Unix, POSIX and Mach traits and the platform's file naming
conventions.

` + SubtitleStyle.Render("Examples:") + `
  targetprobe detect                      Classify the default C compiler
  targetprobe detect --cc x86_64-w64-mingw32-gcc
  targetprobe classify -D __APPLE__ -D __MACH__ -D TARGET_OS_MAC
  targetprobe explain --descriptor ios.cue
  targetprobe targets                     Classify all configured targets`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.initialize(cmd.Context())
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/targetprobe/config.cue)")

	rootCmd.AddCommand(
		newDetectCommand(app),
		newClassifyCommand(app),
		newSignalsCommand(app),
		newExplainCommand(app),
		newTargetsCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
