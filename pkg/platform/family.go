// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FamilyUnknown is the zero value. It is only ever returned by Classify
	// when the caller opted into WithTolerateUnknown.
	FamilyUnknown Family = iota
	FamilyLinux
	FamilyAndroid
	// FamilyCygwinPosix is the Cygwin POSIX layer targeted on its own, as
	// opposed to a native Windows target built with a Cygwin toolchain.
	FamilyCygwinPosix
	FamilyWindows
	FamilyAppleMac
	FamilyAppleIOSDevice
	FamilyAppleIOSSimulator
	FamilyEmscripten
	FamilyFreeBSD
	FamilyDragonFlyBSD
	FamilyNetBSD
	FamilyOpenBSD
	// FamilyGenericBSD is a BSD host that is none of the four named variants
	// and does not assert a unix signal.
	FamilyGenericBSD
	FamilyAIX
	FamilyHPUX
	FamilySolaris
)

const (
	// WordWidthUnspecified is reported for non-Windows profiles.
	WordWidthUnspecified WordWidth = 0
	WordWidth32          WordWidth = 32
	WordWidth64          WordWidth = 64
)

const (
	// ToolchainNone is a native Windows toolchain (MSVC, clang-cl).
	ToolchainNone WindowsToolchain = iota
	ToolchainCygwin
	ToolchainMingw
)

// ErrInvalidFamily is returned by ParseFamily for names outside the closed set.
var ErrInvalidFamily = errors.New("invalid platform family")

type (
	// Family is the canonical identity of a target operating system.
	Family int

	// WordWidth is the pointer width of a Windows target.
	WordWidth int

	// WindowsToolchain identifies the toolchain flavor of a Windows target.
	WindowsToolchain int

	// InvalidFamilyError is returned when a family name is not recognized.
	// It wraps ErrInvalidFamily for errors.Is() compatibility.
	InvalidFamilyError struct {
		Value string
	}
)

var familyNames = [...]string{
	FamilyUnknown:           "unknown",
	FamilyLinux:             "linux",
	FamilyAndroid:           "android",
	FamilyCygwinPosix:       "cygwin",
	FamilyWindows:           "windows",
	FamilyAppleMac:          "macos",
	FamilyAppleIOSDevice:    "ios",
	FamilyAppleIOSSimulator: "ios-simulator",
	FamilyEmscripten:        "emscripten",
	FamilyFreeBSD:           "freebsd",
	FamilyDragonFlyBSD:      "dragonfly",
	FamilyNetBSD:            "netbsd",
	FamilyOpenBSD:           "openbsd",
	FamilyGenericBSD:        "bsd",
	FamilyAIX:               "aix",
	FamilyHPUX:              "hpux",
	FamilySolaris:           "solaris",
}

// Families returns every family in declaration order, FamilyUnknown first.
func Families() []Family {
	out := make([]Family, len(familyNames))
	for i := range familyNames {
		out[i] = Family(i)
	}
	return out
}

// String returns the lowercase name of the family.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily returns the family with the given name, as printed by String.
func ParseFamily(name string) (Family, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range familyNames {
		if n == name {
			return Family(i), nil
		}
	}
	return FamilyUnknown, &InvalidFamilyError{Value: name}
}

// IsApple reports whether the family is one of the Apple targets.
func (f Family) IsApple() bool {
	switch f {
	case FamilyAppleMac, FamilyAppleIOSDevice, FamilyAppleIOSSimulator:
		return true
	default:
		return false
	}
}

// IsBSD reports whether the family is a non-Apple BSD.
func (f Family) IsBSD() bool {
	switch f {
	case FamilyFreeBSD, FamilyDragonFlyBSD, FamilyNetBSD, FamilyOpenBSD, FamilyGenericBSD:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Error implements the error interface for InvalidFamilyError.
func (e *InvalidFamilyError) Error() string {
	return fmt.Sprintf("invalid platform family %q", e.Value)
}

// Unwrap returns ErrInvalidFamily for errors.Is() compatibility.
func (e *InvalidFamilyError) Unwrap() error { return ErrInvalidFamily }

// String returns "32", "64" or "unspecified".
func (w WordWidth) String() string {
	switch w {
	case WordWidth32:
		return "32"
	case WordWidth64:
		return "64"
	default:
		return "unspecified"
	}
}

// String returns the lowercase name of the toolchain.
func (t WindowsToolchain) String() string {
	switch t {
	case ToolchainNone:
		return "none"
	case ToolchainCygwin:
		return "cygwin"
	case ToolchainMingw:
		return "mingw"
	default:
		return fmt.Sprintf("WindowsToolchain(%d)", int(t))
	}
}
