// SPDX-License-Identifier: MPL-2.0

package platform

// unknownRuleName names the implicit terminal rule that matches everything.
const unknownRuleName = "unknown"

type (
	// rule is one step of the classification cascade. Match returns the
	// resolved identity and true when the rule applies, or an error when the
	// rule applies but the signals are ambiguous.
	rule struct {
		// Name is a short, unique identifier for this rule (e.g. "apple").
		Name string

		Match func(s SignalSet) (resolution, bool, error)
	}

	// resolution is the part of a Profile decided by the cascade. The
	// standards flags are derived afterwards from the raw signals.
	resolution struct {
		family       Family
		wordWidth    WordWidth
		toolchain    WindowsToolchain
		phoneSandbox bool
	}
)

// cascade is evaluated top to bottom and the first match wins. Toolchains
// emit overlapping identity macros (Apple headers also define BSD, Cygwin
// can target native Windows), so the order is part of the contract.
var cascade = []rule{
	{Name: "linux", Match: matchLinux},
	{Name: "cygwin", Match: matchCygwin},
	{Name: "windows", Match: matchWindows},
	{Name: "apple", Match: matchApple},
	{Name: "emscripten", Match: matchSingle(SignalEmscripten, FamilyEmscripten)},
	{Name: "bsd", Match: matchBSD},
	{Name: "aix", Match: matchSingle(SignalAIX, FamilyAIX)},
	{Name: "hpux", Match: matchSingle(SignalHPUX, FamilyHPUX)},
	{Name: "solaris", Match: matchSolaris},
}

// matchLinux treats Android as a refinement of Linux: it always carries the
// Linux kernel facts.
func matchLinux(s SignalSet) (resolution, bool, error) {
	if !s.Defined(SignalLinux) {
		return resolution{}, false, nil
	}
	if s.Defined(SignalAndroid) {
		return resolution{family: FamilyAndroid}, true, nil
	}
	return resolution{family: FamilyLinux}, true, nil
}

// matchCygwin selects the standalone POSIX layer. Cygwin targeting native
// Windows is left to matchWindows.
func matchCygwin(s SignalSet) (resolution, bool, error) {
	if s.Defined(SignalCygwin) && !s.Defined(SignalWin32) {
		return resolution{family: FamilyCygwinPosix}, true, nil
	}
	return resolution{}, false, nil
}

func matchWindows(s SignalSet) (resolution, bool, error) {
	if !s.Defined(SignalWin32) {
		return resolution{}, false, nil
	}
	r := resolution{
		family:       FamilyWindows,
		wordWidth:    WordWidth32,
		toolchain:    ToolchainNone,
		phoneSandbox: s.Enabled(SignalWindowsPhone),
	}
	if s.Defined(SignalWin64) {
		r.wordWidth = WordWidth64
	}
	switch {
	case s.Defined(SignalCygwin):
		r.toolchain = ToolchainCygwin
	case s.Defined(SignalMinGW):
		r.toolchain = ToolchainMingw
	}
	return r, true, nil
}

// matchApple never guesses: an Apple target outside the three known device
// classes would corrupt downstream packaging, so it is an error.
func matchApple(s SignalSet) (resolution, bool, error) {
	if !isAppleMach(s) {
		return resolution{}, false, nil
	}
	switch {
	case s.Enabled(SignalIPhoneSimulator):
		return resolution{family: FamilyAppleIOSSimulator}, true, nil
	case s.Enabled(SignalIPhone):
		return resolution{family: FamilyAppleIOSDevice}, true, nil
	case s.Enabled(SignalMac):
		return resolution{family: FamilyAppleMac}, true, nil
	default:
		return resolution{}, true, &UnresolvedApplePlatformError{Signals: s}
	}
}

// matchBSD refines the generic BSD signal. Apple headers define BSD too but
// never __unix__, and they were consumed by matchApple already; a unix BSD
// that is none of the known variants is an error rather than GenericBSD.
func matchBSD(s SignalSet) (resolution, bool, error) {
	if !s.Defined(SignalBSD) {
		return resolution{}, false, nil
	}
	switch {
	case s.Defined(SignalFreeBSD):
		return resolution{family: FamilyFreeBSD}, true, nil
	case s.Defined(SignalDragonFly):
		return resolution{family: FamilyDragonFlyBSD}, true, nil
	case s.Defined(SignalNetBSD):
		return resolution{family: FamilyNetBSD}, true, nil
	case s.Defined(SignalOpenBSD):
		return resolution{family: FamilyOpenBSD}, true, nil
	case hasUnixSignal(s):
		return resolution{}, true, &UnresolvedBSDVariantError{Signals: s}
	default:
		return resolution{family: FamilyGenericBSD}, true, nil
	}
}

// matchSolaris requires both signals: __sun alone also covers SunOS 4.
func matchSolaris(s SignalSet) (resolution, bool, error) {
	if s.Defined(SignalSun) && s.Defined(SignalSVR4) {
		return resolution{family: FamilySolaris}, true, nil
	}
	return resolution{}, false, nil
}

func matchSingle(sig Signal, family Family) func(SignalSet) (resolution, bool, error) {
	return func(s SignalSet) (resolution, bool, error) {
		if s.Defined(sig) {
			return resolution{family: family}, true, nil
		}
		return resolution{}, false, nil
	}
}

func isAppleMach(s SignalSet) bool {
	return s.Defined(SignalApple) && s.Defined(SignalMach)
}

func hasUnixSignal(s SignalSet) bool {
	return s.Defined(SignalUnix) || s.Defined(SignalUnix2)
}
