// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Identity signals, named after the macros C toolchains predefine for them.
const (
	SignalLinux   Signal = "__linux__"
	SignalAndroid Signal = "__ANDROID__"
	SignalCygwin  Signal = "__CYGWIN__"

	SignalWin32 Signal = "_WIN32"
	SignalWin64 Signal = "_WIN64"
	SignalMinGW Signal = "__MINGW32__"
	// SignalWindowsPhone is not a compiler macro: the toolchain probe
	// evaluates WINAPI_FAMILY_PARTITION(WINAPI_PARTITION_PHONE_APP) and
	// defines it when the target is the Windows phone partition.
	SignalWindowsPhone Signal = "TARGETPROBE_WINAPI_PHONE_APP"

	SignalApple           Signal = "__APPLE__"
	SignalMach            Signal = "__MACH__"
	SignalIPhoneSimulator Signal = "TARGET_IPHONE_SIMULATOR"
	SignalIPhone          Signal = "TARGET_OS_IPHONE"
	SignalMac             Signal = "TARGET_OS_MAC"

	SignalEmscripten Signal = "__EMSCRIPTEN__"

	SignalBSD       Signal = "BSD"
	SignalFreeBSD   Signal = "__FreeBSD__"
	SignalDragonFly Signal = "__DragonFly__"
	SignalNetBSD    Signal = "__NetBSD__"
	SignalOpenBSD   Signal = "__OpenBSD__"

	SignalAIX   Signal = "_AIX"
	SignalHPUX  Signal = "__hpux"
	SignalSun   Signal = "__sun"
	SignalSVR4  Signal = "__SVR4"
	SignalUnix  Signal = "__unix__"
	SignalUnix2 Signal = "__unix"

	SignalPosixVersion Signal = "_POSIX_VERSION"
)

type (
	// Signal names one fact asserted by the build environment, usually a
	// predefined preprocessor macro.
	Signal string

	// SignalSet is an immutable snapshot of the signals a build environment
	// asserts. Each defined signal carries the value it was defined to, which
	// is "1" for plain boolean facts and a discriminant (a version number,
	// 0 or 1 for TargetConditionals) otherwise.
	//
	// The zero value is an empty set.
	SignalSet struct {
		values map[Signal]string
	}
)

// NewSignalSet builds a SignalSet from a name to value mapping. The map is
// copied; later changes to it do not affect the set.
func NewSignalSet(values map[Signal]string) SignalSet {
	if len(values) == 0 {
		return SignalSet{}
	}
	return SignalSet{values: maps.Clone(values)}
}

// SignalSetOf builds a SignalSet where every given signal is defined to "1".
func SignalSetOf(signals ...Signal) SignalSet {
	values := make(map[Signal]string, len(signals))
	for _, s := range signals {
		values[s] = "1"
	}
	return SignalSet{values: values}
}

// Defined reports whether the signal is asserted, whatever its value.
func (s SignalSet) Defined(sig Signal) bool {
	_, ok := s.values[sig]
	return ok
}

// Value returns the value the signal was defined to.
func (s SignalSet) Value(sig Signal) (string, bool) {
	v, ok := s.values[sig]
	return v, ok
}

// Enabled reports whether the signal is defined to a non-zero value, which is
// how `#if NAME` evaluates it. Values that are not integer literals count as
// enabled when non-empty.
func (s SignalSet) Enabled(sig Signal) bool {
	v, ok := s.values[sig]
	if !ok {
		return false
	}
	v = strings.TrimSpace(v)
	for strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	if v == "" {
		return false
	}
	if n, err := strconv.ParseInt(strings.TrimRight(v, "uUlL"), 0, 64); err == nil {
		return n != 0
	}
	return true
}

// Len returns the number of defined signals.
func (s SignalSet) Len() int {
	return len(s.values)
}

// Names returns the defined signals in lexical order.
func (s SignalSet) Names() []Signal {
	return slices.Sorted(maps.Keys(s.values))
}

// Values returns a copy of the underlying name to value mapping.
func (s SignalSet) Values() map[Signal]string {
	return maps.Clone(s.values)
}

// Equal reports whether both sets define the same signals to the same values.
func (s SignalSet) Equal(other SignalSet) bool {
	return maps.Equal(s.values, other.values)
}

// With returns a copy of the set with sig defined to value.
func (s SignalSet) With(sig Signal, value string) SignalSet {
	values := make(map[Signal]string, len(s.values)+1)
	maps.Copy(values, s.values)
	values[sig] = value
	return SignalSet{values: values}
}

// Without returns a copy of the set with sig removed.
func (s SignalSet) Without(sig Signal) SignalSet {
	if !s.Defined(sig) {
		return s
	}
	values := maps.Clone(s.values)
	delete(values, sig)
	return SignalSet{values: values}
}

// Merge returns a set holding the signals of both sets. Values from other win
// on conflicts.
func (s SignalSet) Merge(other SignalSet) SignalSet {
	values := make(map[Signal]string, len(s.values)+len(other.values))
	maps.Copy(values, s.values)
	maps.Copy(values, other.values)
	return SignalSet{values: values}
}

// String renders the set as space-separated NAME=VALUE pairs in lexical order.
func (s SignalSet) String() string {
	var sb strings.Builder
	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(name))
		sb.WriteByte('=')
		sb.WriteString(s.values[name])
	}
	return sb.String()
}

// ParseSignal parses a NAME or NAME=VALUE assignment, the syntax of a -D
// compiler flag. A bare NAME is defined to "1".
func ParseSignal(def string) (Signal, string, error) {
	name, value, hasValue := strings.Cut(strings.TrimSpace(def), "=")
	name = strings.TrimSpace(name)
	if !validSignalName(name) {
		return "", "", &InvalidSignalError{Definition: def}
	}
	if !hasValue {
		value = "1"
	}
	return Signal(name), value, nil
}

// validSignalName reports whether name is a C identifier.
func validSignalName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
