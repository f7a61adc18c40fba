// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/targetprobe/targetprobe/internal/config"
	"github.com/targetprobe/targetprobe/internal/issue"
	"github.com/targetprobe/targetprobe/internal/signals"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every command handler receives the App and reads signals
	// through its ReaderFactory.
	App struct {
		Config  ConfigProvider
		Readers ReaderFactory
		stdout  io.Writer
		stderr  io.Writer

		issueStyle string

		// Set by the root command before any subcommand runs.
		flags  globalFlags
		cfg    *config.Config
		cfgErr error
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Readers ReaderFactory
		Stdout  io.Writer
		Stderr  io.Writer
		// IssueStyle forces the glamour style of issue pages ("dark", "light",
		// "notty"). Empty follows ui.color_scheme.
		IssueStyle string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ReaderFactory creates the signal readers the commands classify.
	ReaderFactory interface {
		Host() signals.Reader
		Toolchain(cfg signals.ToolchainConfig) signals.Reader
		Descriptor(path string) signals.Reader
	}

	globalFlags struct {
		verbose    bool
		configFile string
	}

	defaultReaders struct{}
)

func (defaultReaders) Host() signals.Reader { return signals.Host() }

func (defaultReaders) Toolchain(cfg signals.ToolchainConfig) signals.Reader {
	return signals.Toolchain(cfg)
}

func (defaultReaders) Descriptor(path string) signals.Reader { return signals.Descriptor(path) }

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Readers == nil {
		deps.Readers = defaultReaders{}
	}

	return &App{
		Config:     deps.Config,
		Readers:    deps.Readers,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		issueStyle: deps.IssueStyle,
		cfg:        config.DefaultConfig(),
		logger:     newLogger(deps.Stderr, config.LogLevelInfo, false),
	}, nil
}

// initialize loads the configuration and sets up logging and colors. A
// configuration that fails to load is remembered: commands that depend on it
// report the failure, the others warn and continue with defaults.
func (a *App) initialize(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		a.cfgErr = err
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	// Apply verbose from config if not set via flag
	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}

	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	a.logger = newLogger(a.stderr, cfg.Log.Level, a.flags.verbose)
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configFile}
}

// config returns the loaded configuration, warning once when it fell back to
// defaults.
func (a *App) config() *config.Config {
	if a.cfgErr != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(a.cfgErr, a.flags.verbose))
		a.cfgErr = nil
	}
	return a.cfg
}

// requireConfig returns the loaded configuration or its load failure.
func (a *App) requireConfig() (*config.Config, error) {
	if a.cfgErr != nil {
		return nil, a.failure(newServiceError(a.cfgErr, issue.ConfigLoadFailedId, ""))
	}
	return a.cfg, nil
}

// toolchainConfig builds the toolchain reader configuration; cc overrides the
// configured compiler when set.
func (a *App) toolchainConfig(cc string) signals.ToolchainConfig {
	cfg := a.config()
	if cc == "" {
		cc = string(cfg.Toolchain.CC)
	}
	return signals.ToolchainConfig{
		CC:     cc,
		Args:   cfg.Toolchain.Args,
		Logger: a.logger,
	}
}

func (a *App) glamourStyle() string {
	if a.issueStyle != "" {
		return a.issueStyle
	}
	switch a.cfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func newLogger(w io.Writer, level config.LogLevel, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: config.AppName,
	})
}
