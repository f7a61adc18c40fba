// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs signal reads and classification decisions.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn only logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError only logs errors.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidTargetName is the sentinel error wrapped by InvalidTargetNameError.
	ErrInvalidTargetName = errors.New("invalid target name")
	// ErrInvalidDescriptorPath is the sentinel error wrapped by InvalidDescriptorPathError.
	ErrInvalidDescriptorPath = errors.New("invalid descriptor path")
	// ErrInvalidCompilerCommand is returned when a CompilerCommand is whitespace-only.
	ErrInvalidCompilerCommand = errors.New("invalid compiler command")
	// ErrDuplicateTarget is returned when two targets share a name.
	ErrDuplicateTarget = errors.New("duplicate target")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	targetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// TargetName identifies a configured cross-compilation target.
	TargetName string

	// InvalidTargetNameError is returned when a TargetName is empty or contains
	// characters outside [A-Za-z0-9._-].
	InvalidTargetNameError struct {
		Value TargetName
	}

	// DescriptorPath is a filesystem path to a .cue or .toml target descriptor.
	DescriptorPath string

	// InvalidDescriptorPathError is returned when a DescriptorPath is empty or
	// whitespace-only.
	InvalidDescriptorPathError struct {
		Value DescriptorPath
	}

	// CompilerCommand is a compiler command line such as "ccache clang -m32".
	// The zero value means "use $CC, then cc".
	CompilerCommand string

	// InvalidCompilerCommandError is returned when a CompilerCommand is
	// non-empty but whitespace-only.
	InvalidCompilerCommandError struct {
		Value CompilerCommand
	}

	// DuplicateTargetError is returned when two target entries share a name.
	DuplicateTargetError struct {
		Name TargetName
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Toolchain selects the C compiler used by the toolchain probe.
		Toolchain ToolchainConfig `json:"toolchain" mapstructure:"toolchain"`
		// Classify configures classification policy.
		Classify ClassifyConfig `json:"classify" mapstructure:"classify"`
		// Targets lists named cross-compilation targets classified by `targetprobe targets`.
		Targets []TargetEntry `json:"targets" mapstructure:"targets"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures the stderr logger.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// ToolchainConfig selects the compiler to probe.
	ToolchainConfig struct {
		CC   CompilerCommand `json:"cc" mapstructure:"cc"`
		Args []string        `json:"args" mapstructure:"args"`
	}

	// ClassifyConfig configures classification policy.
	ClassifyConfig struct {
		// TolerateUnknown reports unrecognized signal sets as the unknown family
		// instead of failing.
		TolerateUnknown bool `json:"tolerate_unknown" mapstructure:"tolerate_unknown"`
	}

	// TargetEntry binds a target name to its descriptor file. Relative
	// descriptor paths are resolved against the config file's directory.
	TargetEntry struct {
		Name       TargetName     `json:"name" mapstructure:"name"`
		Descriptor DescriptorPath `json:"descriptor" mapstructure:"descriptor"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidTargetNameError.
func (e *InvalidTargetNameError) Error() string {
	return fmt.Sprintf("invalid target name %q: must match %s", e.Value, targetNamePattern)
}

// Unwrap returns ErrInvalidTargetName for errors.Is() compatibility.
func (e *InvalidTargetNameError) Unwrap() error { return ErrInvalidTargetName }

// String returns the string representation of the TargetName.
func (n TargetName) String() string { return string(n) }

// IsValid returns whether the TargetName is valid.
func (n TargetName) IsValid() (bool, []error) {
	if !targetNamePattern.MatchString(string(n)) {
		return false, []error{&InvalidTargetNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDescriptorPathError.
func (e *InvalidDescriptorPathError) Error() string {
	return fmt.Sprintf("invalid descriptor path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidDescriptorPath for errors.Is() compatibility.
func (e *InvalidDescriptorPathError) Unwrap() error { return ErrInvalidDescriptorPath }

// String returns the string representation of the DescriptorPath.
func (p DescriptorPath) String() string { return string(p) }

// IsValid returns whether the DescriptorPath is valid.
func (p DescriptorPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidDescriptorPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCompilerCommandError.
func (e *InvalidCompilerCommandError) Error() string {
	return fmt.Sprintf("invalid compiler command %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidCompilerCommand for errors.Is() compatibility.
func (e *InvalidCompilerCommandError) Unwrap() error { return ErrInvalidCompilerCommand }

// String returns the string representation of the CompilerCommand.
func (c CompilerCommand) String() string { return string(c) }

// IsValid returns whether the CompilerCommand is valid.
// The zero value ("") is valid.
func (c CompilerCommand) IsValid() (bool, []error) {
	if c != "" && strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidCompilerCommandError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for DuplicateTargetError.
func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate target %q", e.Name)
}

// Unwrap returns ErrDuplicateTarget for errors.Is() compatibility.
func (e *DuplicateTargetError) Unwrap() error { return ErrDuplicateTarget }

// IsValid returns whether the TargetEntry has valid fields.
func (e TargetEntry) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := e.Name.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := e.Descriptor.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields. Target names must be
// unique.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Toolchain.CC.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	seen := make(map[TargetName]bool, len(c.Targets))
	for _, entry := range c.Targets {
		if valid, fieldErrs := entry.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
		if seen[entry.Name] {
			errs = append(errs, &DuplicateTargetError{Name: entry.Name})
		}
		seen[entry.Name] = true
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			CC:   "", // $CC, then cc
			Args: []string{},
		},
		Targets: []TargetEntry{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}
