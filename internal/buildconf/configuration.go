// SPDX-License-Identifier: MPL-2.0

package buildconf

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/targetprobe/targetprobe/internal/signals"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

type (
	// Option configures a Configuration or every configuration of a Session.
	Option func(*options)

	options struct {
		classify []platform.ClassifyOption
		logger   *log.Logger
	}

	// Configuration is one build configuration: a signal reader and the
	// classification of what it read. It is safe for concurrent use.
	Configuration struct {
		name   string
		reader signals.Reader
		opts   options

		// state is read lock-free by State; writes happen under mu.
		state atomic.Int32

		mu       sync.Mutex
		resolved Resolution
		err      error
	}

	// Resolution is the cached outcome of resolving a Configuration.
	Resolution struct {
		// Name is the configuration name.
		Name string
		// Signals is what the reader produced.
		Signals platform.SignalSet
		// Rule is the cascade rule that decided the outcome.
		Rule string
		// Profile is the classification, the zero Profile on failure.
		Profile platform.Profile
	}
)

// WithClassifyOptions passes opts to platform.Explain.
func WithClassifyOptions(opts ...platform.ClassifyOption) Option {
	return func(o *options) {
		o.classify = append(o.classify, opts...)
	}
}

// WithLogger sets the logger that receives debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a pending configuration. Nothing is read until Resolve.
func New(name string, r signals.Reader, opts ...Option) *Configuration {
	c := &Configuration{name: name, reader: r}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.state.Store(int32(StatePending))
	return c
}

// Name returns the configuration name.
func (c *Configuration) Name() string { return c.name }

// State returns the current lifecycle state (atomic, lock-free read).
func (c *Configuration) State() State { return State(c.state.Load()) }

// Resolve reads and classifies the signals on first use and returns the
// cached result afterwards.
//
// A reader error leaves the configuration pending, so the next call reads
// again. A classification error is final: it is cached and returned by every
// later call, along with the signals and rule that produced it. Errors are
// wrapped in *ConfigurationError.
func (c *Configuration) Resolve(ctx context.Context) (Resolution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.State() {
	case StateClosed:
		return Resolution{Name: c.name}, &ConfigurationError{Name: c.name, Err: ErrClosed}
	case StateConfigured, StateFailed:
		return c.resolved, c.err
	}

	set, err := c.reader.Read(ctx)
	if err != nil {
		c.logDebug("signal read failed", "error", err)
		return Resolution{Name: c.name}, &ConfigurationError{Name: c.name, Err: err}
	}

	e := platform.Explain(set, c.opts.classify...)
	c.resolved = Resolution{Name: c.name, Signals: set, Rule: e.Rule, Profile: e.Profile}
	if e.Err != nil {
		c.err = &ConfigurationError{Name: c.name, Err: e.Err}
		c.state.Store(int32(StateFailed))
		c.logDebug("classification failed", "rule", e.Rule, "error", e.Err)
		return c.resolved, c.err
	}

	c.state.Store(int32(StateConfigured))
	c.logDebug("classified", "rule", e.Rule, "profile", e.Profile.String(), "signals", set.Len())
	return c.resolved, nil
}

// Profile returns the classification of the configuration. See Resolve.
func (c *Configuration) Profile(ctx context.Context) (platform.Profile, error) {
	r, err := c.Resolve(ctx)
	return r.Profile, err
}

// Close tears the configuration down and drops its cached profile. Later
// calls to Resolve fail with ErrClosed. Close is idempotent.
func (c *Configuration) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolved = Resolution{}
	c.err = nil
	c.state.Store(int32(StateClosed))
}

func (c *Configuration) logDebug(msg string, keyvals ...any) {
	if c.opts.logger == nil {
		return
	}
	c.opts.logger.Debug(msg, append([]any{"configuration", c.name}, keyvals...)...)
}
