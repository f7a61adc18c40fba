// SPDX-License-Identifier: MPL-2.0

// Package signals reads the identity signals of a build environment.
//
// Readers only collect facts; they never decide what platform the facts
// describe. Four sources exist:
//
//   - Static: a fixed set, used for -D flags and tests.
//   - Host: the macros a native C toolchain on the running host predefines,
//     derived from the Go runtime and uname(2).
//   - Toolchain: the macros a real C compiler predefines, read from its
//     preprocessor (cc -dM -E).
//   - Descriptor: a cross-compilation target described in a CUE or TOML file.
package signals
