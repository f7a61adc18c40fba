// SPDX-License-Identifier: MPL-2.0

// Package platform classifies a build target from the identity signals its
// toolchain predefines.
//
// A SignalSet is captured once per build configuration (see the signals
// readers) and handed to Classify, which runs an ordered rule cascade and
// returns an immutable Profile: the target's operating-system family, the
// Unix/POSIX/Mach capability bits and the naming conventions (dynamic library
// and executable suffixes) the rest of the build tool consumes.
//
//	profile, err := platform.Classify(platform.SignalSetOf(
//		platform.SignalLinux, platform.SignalUnix, platform.SignalPosixVersion,
//	))
//	if err != nil {
//		return err
//	}
//	lib := "libfoo" + profile.DynamicLibraryExtension() // libfoo.so
//
// Classification is a pure function: no I/O, no global state. A Profile may be
// shared freely between goroutines.
package platform
