// SPDX-License-Identifier: MPL-2.0

// Package config handles targetprobe configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/targetprobe/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/targetprobe/config.cue on macOS,
// %APPDATA%\targetprobe\config.cue on Windows). It selects the C toolchain used for
// probing, the classification policy, the named cross-compilation targets and UI/logging
// preferences. Every key can be overridden with a TARGETPROBE_* environment variable
// (toolchain.cc becomes TARGETPROBE_TOOLCHAIN_CC).
//
// Files are validated against an embedded CUE schema (config_schema.cue) before they are
// merged into Viper.
package config
