// SPDX-License-Identifier: MPL-2.0

package platform

type (
	// ClassifyOption configures Classify.
	ClassifyOption func(*classifyOptions)

	classifyOptions struct {
		tolerateUnknown bool
	}

	// Explanation records how a SignalSet was classified.
	Explanation struct {
		// Rule is the name of the rule that matched, "unknown" when none did.
		Rule string

		// Profile is the classification; the zero Profile when Err is set.
		Profile Profile

		// Err is the classification error, if any.
		Err error
	}
)

// WithTolerateUnknown makes Classify return a FamilyUnknown profile instead of
// an UnresolvedPlatformError when no rule matches. Best-effort builds use it;
// the Apple and BSD ambiguity errors are still returned.
func WithTolerateUnknown() ClassifyOption {
	return func(o *classifyOptions) {
		o.tolerateUnknown = true
	}
}

// Classify resolves signals into a Profile.
//
// The family is decided by an ordered cascade, first match wins: Linux
// (refined to Android), standalone Cygwin, Windows, Apple, Emscripten, BSD,
// AIX, HP-UX, Solaris. The Unix, POSIX and Mach flags are derived from the
// signals independently of the cascade.
//
// Classify fails with *UnresolvedApplePlatformError, *UnresolvedBSDVariantError
// or, unless WithTolerateUnknown is given, *UnresolvedPlatformError. On error
// the zero Profile is returned; a partial classification never is.
func Classify(signals SignalSet, opts ...ClassifyOption) (Profile, error) {
	e := Explain(signals, opts...)
	return e.Profile, e.Err
}

// Explain classifies signals like Classify and also reports which rule of the
// cascade decided the outcome.
func Explain(signals SignalSet, opts ...ClassifyOption) Explanation {
	var o classifyOptions
	for _, opt := range opts {
		opt(&o)
	}

	for _, r := range cascade {
		res, ok, err := r.Match(signals)
		if !ok {
			continue
		}
		if err != nil {
			return Explanation{Rule: r.Name, Err: err}
		}
		return Explanation{Rule: r.Name, Profile: newProfile(res, signals)}
	}

	if !o.tolerateUnknown {
		return Explanation{Rule: unknownRuleName, Err: &UnresolvedPlatformError{Signals: signals}}
	}
	return Explanation{Rule: unknownRuleName, Profile: newProfile(resolution{family: FamilyUnknown}, signals)}
}

// Rules returns the names of the cascade rules in evaluation order, ending
// with the implicit "unknown" rule.
func Rules() []string {
	names := make([]string, 0, len(cascade)+1)
	for _, r := range cascade {
		names = append(names, r.Name)
	}
	return append(names, unknownRuleName)
}

// newProfile combines a cascade resolution with the standards flags.
func newProfile(res resolution, s SignalSet) Profile {
	p := Profile{family: res.family}
	if res.family == FamilyWindows {
		p.wordWidth = res.wordWidth
		p.toolchain = res.toolchain
	}
	p.phoneSandbox = res.phoneSandbox

	p.unixLike = !s.Defined(SignalWin32) && (hasUnixSignal(s) || isAppleMach(s))
	p.posix = p.unixLike && s.Defined(SignalPosixVersion)
	p.machBased = s.Defined(SignalMach)
	return p
}
