// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/targetprobe/targetprobe/internal/config"
)

// newConfigCommand creates the `targetprobe config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage targetprobe configuration",
		Long: `Manage targetprobe configuration.

Configuration is stored in:
  - Linux: ~/.config/targetprobe/config.cue
  - macOS: ~/Library/Application Support/targetprobe/config.cue
  - Windows: %APPDATA%\targetprobe\config.cue

Every key can be overridden with a TARGETPROBE_* environment variable,
e.g. TARGETPROBE_TOOLCHAIN_CC or TARGETPROBE_LOG_LEVEL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := config.ResolvePath(app.loadOptions())
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(app.stdout, path)
			} else {
				fmt.Fprintf(app.stdout, "%s %s\n", path, SubtitleStyle.Render("(not created yet)"))
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if created {
				fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			} else {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.requireConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App) error {
	cfg, err := app.requireConfig()
	if err != nil {
		return err
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, exists, err := config.ResolvePath(app.loadOptions())
	if err == nil && exists {
		writeField(w, "Config file", path)
	} else {
		writeField(w, "Config file", SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	cc := cfg.Toolchain.CC.String()
	if cc == "" {
		cc = SubtitleStyle.Render("($CC or cc)")
	}
	fmt.Fprintln(w, KeyStyle.Render("toolchain"))
	writeField(w, "  cc", cc)
	writeField(w, "  args", strings.Join(cfg.Toolchain.Args, " "))

	fmt.Fprintln(w, KeyStyle.Render("classify"))
	writeField(w, "  tolerate_unknown", yesNo(cfg.Classify.TolerateUnknown))

	fmt.Fprintln(w, KeyStyle.Render("targets"))
	if len(cfg.Targets) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, t := range cfg.Targets {
		writeField(w, "  "+t.Name.String(), t.Descriptor.String())
	}

	fmt.Fprintln(w, KeyStyle.Render("ui"))
	writeField(w, "  color_scheme", cfg.UI.ColorScheme.String())
	writeField(w, "  verbose", yesNo(cfg.UI.Verbose))

	fmt.Fprintln(w, KeyStyle.Render("log"))
	writeField(w, "  level", cfg.Log.Level.String())

	return nil
}
