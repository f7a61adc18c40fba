// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"context"

	"github.com/targetprobe/targetprobe/pkg/platform"
)

type (
	// Reader produces the signal set of one build environment.
	//
	// Reading is repeatable: in an unchanged environment every call returns an
	// equal set. A non-nil error means the environment could not be inspected
	// at all (compiler missing, descriptor unreadable). An empty or
	// contradictory set is a valid result; judging it is the classifier's job.
	Reader interface {
		Read(ctx context.Context) (platform.SignalSet, error)
	}

	// ReaderFunc adapts a function to the Reader interface.
	ReaderFunc func(ctx context.Context) (platform.SignalSet, error)

	staticReader struct {
		set platform.SignalSet
	}
)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context) (platform.SignalSet, error) {
	return f(ctx)
}

// Static returns a Reader that always yields set.
func Static(set platform.SignalSet) Reader {
	return staticReader{set: set}
}

func (r staticReader) Read(context.Context) (platform.SignalSet, error) {
	return r.set, nil
}

// Overlay returns a Reader that merges extra over the output of base. It is
// how -D flags on the command line refine a probed or described target.
func Overlay(base Reader, extra platform.SignalSet) Reader {
	return ReaderFunc(func(ctx context.Context) (platform.SignalSet, error) {
		set, err := base.Read(ctx)
		if err != nil {
			return platform.SignalSet{}, err
		}
		return set.Merge(extra), nil
	})
}
