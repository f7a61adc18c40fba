// SPDX-License-Identifier: MPL-2.0

package buildconf

import (
	"context"
	"maps"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/targetprobe/targetprobe/internal/signals"
)

type (
	// Session holds the named build configurations of one process. It is
	// safe for concurrent use. Configurations share no classifier state.
	Session struct {
		opts []Option

		mu      sync.RWMutex
		configs map[string]*Configuration
	}

	// Outcome is the result of resolving one configuration in ClassifyAll.
	Outcome struct {
		Resolution
		Err error
	}
)

// NewSession creates an empty session. opts apply to every configuration it
// creates.
func NewSession(opts ...Option) *Session {
	return &Session{opts: opts, configs: make(map[string]*Configuration)}
}

// Configure adds a configuration named name reading from r.
func (s *Session) Configure(name string, r signals.Reader) (*Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[name]; ok {
		return nil, &ConfigurationError{Name: name, Err: ErrDuplicateConfiguration}
	}
	c := New(name, r, s.opts...)
	s.configs[name] = c
	return c, nil
}

// Reconfigure replaces the configuration named name with a fresh one reading
// from r. The old configuration, if any, is closed together with its cached
// profile; holders of it get ErrClosed from then on.
func (s *Session) Reconfigure(name string, r signals.Reader) *Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.configs[name]; ok {
		old.Close()
	}
	c := New(name, r, s.opts...)
	s.configs[name] = c
	return c
}

// Remove closes and forgets the configuration named name.
func (s *Session) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.configs[name]
	if !ok {
		return &ConfigurationError{Name: name, Err: ErrUnknownConfiguration}
	}
	c.Close()
	delete(s.configs, name)
	return nil
}

// Get returns the configuration named name.
func (s *Session) Get(name string) (*Configuration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.configs[name]
	return c, ok
}

// Names returns the configuration names in lexical order.
func (s *Session) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.configs))
}

// ClassifyAll resolves every configuration concurrently and returns one
// Outcome per configuration, ordered by name. A failing configuration does
// not stop the others; its error is reported in its Outcome. The returned
// error is only set when ctx is cancelled.
func (s *Session) ClassifyAll(ctx context.Context) ([]Outcome, error) {
	s.mu.RLock()
	names := slices.Sorted(maps.Keys(s.configs))
	configs := make([]*Configuration, len(names))
	for i, name := range names {
		configs[i] = s.configs[name]
	}
	s.mu.RUnlock()

	outcomes := make([]Outcome, len(configs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range configs {
		g.Go(func() error {
			res, err := c.Resolve(ctx)
			outcomes[i] = Outcome{Resolution: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

// Close closes every configuration and empties the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.configs {
		c.Close()
	}
	clear(s.configs)
}
