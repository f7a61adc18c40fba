// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/targetprobe/targetprobe/internal/issue"
	"github.com/targetprobe/targetprobe/pkg/cueutil"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "targetprobe"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (TARGETPROBE_TOOLCHAIN_CC).
	EnvPrefix = "TARGETPROBE"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the targetprobe configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the config file path inside cfgDir.
func FilePath(cfgDir string) string {
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read from
// ("" when only defaults and environment applied).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("toolchain.cc", defaults.Toolchain.CC)
	v.SetDefault("toolchain.args", defaults.Toolchain.Args)
	v.SetDefault("classify.tolerate_unknown", defaults.Classify.TolerateUnknown)
	v.SetDefault("targets", defaults.Targets)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// If a custom config file path is set via --config, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'targetprobe config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := FilePath(cfgDir)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", loadError(cuePath, err)
			}
			resolvedPath = cuePath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, and target name uniqueness
	// cannot be expressed in it.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Ensure each target name is unique").
			WithSuggestion("Check TARGETPROBE_* environment variables for invalid values").
			Wrap(errs[0]).
			BuildError()
	}

	if resolvedPath != "" {
		resolveDescriptorPaths(cfg.Targets, filepath.Dir(resolvedPath))
	}

	return &cfg, resolvedPath, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("Run 'targetprobe config dump' to see a valid configuration").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// contents into Viper. Fields are optional, so the document is not required
// to be concrete beyond what it sets.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	result, err := cueutil.ParseFile[map[string]any](configSchema, path, "#Config",
		cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// resolveDescriptorPaths makes relative descriptor paths relative to baseDir.
func resolveDescriptorPaths(targets []TargetEntry, baseDir string) {
	for i, t := range targets {
		p := string(t.Descriptor)
		if !filepath.IsAbs(p) {
			targets[i].Descriptor = DescriptorPath(filepath.Join(baseDir, p))
		}
	}
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file into cfgDir (ConfigDir when
// empty) unless one exists. It returns the file path and whether it was created.
func CreateDefaultConfig(cfgDir string) (path string, created bool, err error) {
	cfgDir, err = configDirWithOverride(cfgDir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	path = FilePath(cfgDir)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// targetprobe configuration file\n\n")

	sb.WriteString("toolchain: {\n")
	if cfg.Toolchain.CC != "" {
		fmt.Fprintf(&sb, "\tcc: %q\n", cfg.Toolchain.CC)
	} else {
		sb.WriteString("\t// cc: \"clang\"  // defaults to $CC, then cc\n")
	}
	sb.WriteString("\targs: [")
	for i, arg := range cfg.Toolchain.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", arg)
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	sb.WriteString("\nclassify: {\n")
	fmt.Fprintf(&sb, "\ttolerate_unknown: %v\n", cfg.Classify.TolerateUnknown)
	sb.WriteString("}\n")

	if len(cfg.Targets) > 0 {
		sb.WriteString("\ntargets: [\n")
		for _, t := range cfg.Targets {
			fmt.Fprintf(&sb, "\t{name: %q, descriptor: %q},\n", t.Name, t.Descriptor)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}
