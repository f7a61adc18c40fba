// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme ColorScheme
		want   bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"DARK", false},
		{"solarized", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidColorScheme)) {
				t.Errorf("expected ErrInvalidColorScheme, got %v", errs)
			}
		})
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{"", false},
		{"trace", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.level.IsValid()
			if isValid != tt.want {
				t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidLogLevel)) {
				t.Errorf("expected ErrInvalidLogLevel, got %v", errs)
			}
		})
	}
}

func TestTargetName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name TargetName
		want bool
	}{
		{"mingw64", true},
		{"ios-sim", true},
		{"aarch64.linux_android21", true},
		{"", false},
		{"-leading-dash", false},
		{"has space", false},
		{"slash/name", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.name.IsValid()
			if isValid != tt.want {
				t.Errorf("TargetName(%q).IsValid() = %v, want %v", tt.name, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidTargetName) {
				t.Errorf("expected ErrInvalidTargetName, got %v", errs)
			}
		})
	}
}

func TestCompilerCommand_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := CompilerCommand("").IsValid(); !ok {
		t.Error("empty compiler command should be valid")
	}
	if ok, _ := CompilerCommand("ccache clang").IsValid(); !ok {
		t.Error("compiler with wrapper should be valid")
	}
	ok, errs := CompilerCommand(" \t").IsValid()
	if ok || !errors.Is(errs[0], ErrInvalidCompilerCommand) {
		t.Errorf("whitespace compiler command: ok=%v errs=%v", ok, errs)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if ok, errs := DefaultConfig().IsValid(); !ok {
		t.Fatalf("DefaultConfig() should be valid, got %v", errs)
	}

	cfg := DefaultConfig()
	cfg.Targets = []TargetEntry{
		{Name: "mingw64", Descriptor: "mingw64.toml"},
		{Name: "mingw64", Descriptor: "other.toml"},
		{Name: "bad name", Descriptor: " "},
	}
	cfg.Log.Level = "loud"

	ok, errs := cfg.IsValid()
	if ok {
		t.Fatal("expected config to be invalid")
	}
	err := errs[0]
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	for _, sentinel := range []error{ErrDuplicateTarget, ErrInvalidTargetName, ErrInvalidDescriptorPath, ErrInvalidLogLevel} {
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v in %v", sentinel, err)
		}
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %v", err)
	}
}
