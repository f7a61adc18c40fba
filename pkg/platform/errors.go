// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Classify. All of them are final: classifying
// the same SignalSet again yields the same error.
var (
	// ErrUnresolvedPlatform indicates no rule of the cascade matched.
	ErrUnresolvedPlatform = errors.New("platform: unresolved platform")

	// ErrUnresolvedApplePlatform indicates an Apple target that is neither the
	// iOS simulator, an iOS device nor macOS.
	ErrUnresolvedApplePlatform = errors.New("platform: unresolved Apple platform")

	// ErrUnresolvedBSDVariant indicates a Unix BSD host that matches none of
	// the known BSD variants.
	ErrUnresolvedBSDVariant = errors.New("platform: unresolved BSD variant")

	// ErrInvalidSignal indicates a malformed signal definition.
	ErrInvalidSignal = errors.New("platform: invalid signal definition")

	// ErrUnsupportedArtifact indicates an artifact kind the target cannot produce.
	ErrUnsupportedArtifact = errors.New("platform: artifact not supported on target")

	// ErrReservedFileName indicates a file name the target reserves.
	ErrReservedFileName = errors.New("platform: reserved file name")
)

type (
	// UnresolvedPlatformError is returned when no rule matched the signals.
	// It wraps ErrUnresolvedPlatform so that errors.Is(err, ErrUnresolvedPlatform) still works.
	UnresolvedPlatformError struct {
		// Signals is the set that failed to classify.
		Signals SignalSet
	}

	// UnresolvedApplePlatformError is returned when an Apple target asserts
	// none of the simulator, device or desktop signals.
	// It wraps ErrUnresolvedApplePlatform.
	UnresolvedApplePlatformError struct {
		// Signals is the set that failed to classify.
		Signals SignalSet
	}

	// UnresolvedBSDVariantError is returned when a BSD host asserting a unix
	// signal matches none of FreeBSD, DragonFly BSD, NetBSD or OpenBSD.
	// It wraps ErrUnresolvedBSDVariant.
	UnresolvedBSDVariantError struct {
		// Signals is the set that failed to classify.
		Signals SignalSet
	}

	// InvalidSignalError is returned by ParseSignal for definitions whose name
	// is not a C identifier. It wraps ErrInvalidSignal.
	InvalidSignalError struct {
		// Definition is the rejected NAME[=VALUE] text.
		Definition string
	}

	// UnsupportedArtifactError is returned for artifact kinds that only exist
	// on some families. It wraps ErrUnsupportedArtifact.
	UnsupportedArtifactError struct {
		Kind   ArtifactKind
		Family Family
	}

	// ReservedFileNameError is returned when an artifact would get a name the
	// target reserves. It wraps ErrReservedFileName.
	ReservedFileNameError struct {
		Name   string
		Family Family
	}
)

func (e *UnresolvedPlatformError) Error() string {
	return fmt.Sprintf("%s: no rule matched signals [%s]", ErrUnresolvedPlatform.Error(), e.Signals)
}

func (e *UnresolvedPlatformError) Unwrap() error {
	return ErrUnresolvedPlatform
}

func (e *UnresolvedApplePlatformError) Error() string {
	return fmt.Sprintf("%s: none of %s, %s or %s is set",
		ErrUnresolvedApplePlatform.Error(), SignalIPhoneSimulator, SignalIPhone, SignalMac)
}

func (e *UnresolvedApplePlatformError) Unwrap() error {
	return ErrUnresolvedApplePlatform
}

func (e *UnresolvedBSDVariantError) Error() string {
	return fmt.Sprintf("%s: %s is defined but none of %s, %s, %s or %s",
		ErrUnresolvedBSDVariant.Error(), SignalBSD, SignalFreeBSD, SignalDragonFly, SignalNetBSD, SignalOpenBSD)
}

func (e *UnresolvedBSDVariantError) Unwrap() error {
	return ErrUnresolvedBSDVariant
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidSignal.Error(), e.Definition)
}

func (e *InvalidSignalError) Unwrap() error {
	return ErrInvalidSignal
}

func (e *UnsupportedArtifactError) Error() string {
	return fmt.Sprintf("%s: %s on %s", ErrUnsupportedArtifact.Error(), e.Kind, e.Family)
}

func (e *UnsupportedArtifactError) Unwrap() error {
	return ErrUnsupportedArtifact
}

func (e *ReservedFileNameError) Error() string {
	return fmt.Sprintf("%s: %q on %s", ErrReservedFileName.Error(), e.Name, e.Family)
}

func (e *ReservedFileNameError) Unwrap() error {
	return ErrReservedFileName
}
