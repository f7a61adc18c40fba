// SPDX-License-Identifier: MPL-2.0

package platform

type (
	// Profile is the classification of one build target. It is built only by
	// Classify and never changes afterwards; Profile values are comparable, so
	// two classifications can be checked for equality with ==.
	//
	// The zero Profile is what Classify returns alongside an error. It must not
	// be used as a classification.
	Profile struct {
		family Family

		// Windows-only traits, zero for every other family.
		wordWidth    WordWidth
		toolchain    WindowsToolchain
		phoneSandbox bool

		unixLike  bool
		posix     bool
		machBased bool
	}

	// extensionPair holds the per-family naming conventions.
	extensionPair struct {
		dynlib     string
		executable string
	}
)

// Family returns the target operating-system family.
func (p Profile) Family() Family { return p.family }

// WordWidth returns the pointer width of a Windows target. ok is false for
// every other family; reading the width of a non-Windows profile is a bug in
// the caller.
func (p Profile) WordWidth() (width WordWidth, ok bool) {
	if p.family != FamilyWindows {
		return WordWidthUnspecified, false
	}
	return p.wordWidth, true
}

// WindowsToolchain returns the toolchain flavor of a Windows target. ok is
// false for every other family.
func (p Profile) WindowsToolchain() (toolchain WindowsToolchain, ok bool) {
	if p.family != FamilyWindows {
		return ToolchainNone, false
	}
	return p.toolchain, true
}

// IsWindowsPhoneSandbox reports whether the target is the Windows phone/store
// application partition.
func (p Profile) IsWindowsPhoneSandbox() bool { return p.phoneSandbox }

// IsMinGW reports whether the target is Windows built with a MinGW toolchain.
func (p Profile) IsMinGW() bool {
	return p.family == FamilyWindows && p.toolchain == ToolchainMingw
}

// IsUnixLike reports whether the target exposes a Unix environment. Native
// Windows never does, even when built with a Cygwin toolchain.
func (p Profile) IsUnixLike() bool { return p.unixLike }

// IsPosixCompliant reports whether the target is Unix-like and advertises a
// POSIX version. It implies IsUnixLike.
func (p Profile) IsPosixCompliant() bool { return p.posix }

// IsMachKernelDerived reports whether the target runs on a Mach-derived
// kernel (Darwin, iOS, NeXTSTEP lineage).
func (p Profile) IsMachKernelDerived() bool { return p.machBased }

// DynamicLibraryExtension returns the file suffix of shared libraries,
// including the leading dot.
func (p Profile) DynamicLibraryExtension() string {
	return extensionsFor(p.family).dynlib
}

// ExecutableExtension returns the file suffix of executables, which is empty
// everywhere but Windows.
func (p Profile) ExecutableExtension() string {
	return extensionsFor(p.family).executable
}

// PathSeparator returns the directory separator of the target.
func (p Profile) PathSeparator() string {
	if p.family == FamilyWindows {
		return `\`
	}
	return "/"
}

// String returns a short description such as "windows/64/mingw" or "linux".
func (p Profile) String() string {
	if p.family != FamilyWindows {
		return p.family.String()
	}
	s := p.family.String() + "/" + p.wordWidth.String() + "/" + p.toolchain.String()
	if p.phoneSandbox {
		s += "/phone"
	}
	return s
}

// extensionsFor is the fixed family to naming-convention table.
func extensionsFor(f Family) extensionPair {
	switch {
	case f == FamilyWindows:
		return extensionPair{dynlib: ".dll", executable: ".exe"}
	case f.IsApple():
		return extensionPair{dynlib: ".dylib", executable: ""}
	default:
		return extensionPair{dynlib: ".so", executable: ""}
	}
}
