// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the targetprobe CLI commands.
//
// The commands read platform signals from the host, a C toolchain or target
// descriptors, classify them with pkg/platform and print the resulting
// profile as styled text, JSON or TOML.
package cmd
