// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/targetprobe/targetprobe/internal/config"
	"github.com/targetprobe/targetprobe/internal/signals"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

type (
	testDeps struct {
		cfg         *config.Config
		cfgErr      error
		host        platform.SignalSet
		toolchain   signals.Reader
		descriptors map[string]signals.Reader
	}

	testApp struct {
		*App
		out     *bytes.Buffer
		errOut  *bytes.Buffer
		readers *fakeReaders
	}

	fakeConfigProvider struct {
		cfg *config.Config
		err error
	}

	fakeReaders struct {
		host        platform.SignalSet
		toolchain   signals.Reader
		descriptors map[string]signals.Reader

		gotToolchain signals.ToolchainConfig
	}
)

func (p fakeConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return p.cfg, nil
}

func (f *fakeReaders) Host() signals.Reader { return signals.Static(f.host) }

func (f *fakeReaders) Toolchain(cfg signals.ToolchainConfig) signals.Reader {
	f.gotToolchain = cfg
	if f.toolchain == nil {
		return signals.Static(platform.SignalSetOf(platform.SignalLinux, platform.SignalUnix))
	}
	return f.toolchain
}

func (f *fakeReaders) Descriptor(path string) signals.Reader {
	if r, ok := f.descriptors[path]; ok {
		return r
	}
	return signals.ReaderFunc(func(context.Context) (platform.SignalSet, error) {
		return platform.SignalSet{}, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	})
}

func newTestApp(t *testing.T, d testDeps) *testApp {
	t.Helper()

	readers := &fakeReaders{host: d.host, toolchain: d.toolchain, descriptors: d.descriptors}
	var out, errOut bytes.Buffer
	app, err := NewApp(Dependencies{
		Config:     fakeConfigProvider{cfg: d.cfg, err: d.cfgErr},
		Readers:    readers,
		Stdout:     &out,
		Stderr:     &errOut,
		IssueStyle: "notty",
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return &testApp{App: app, out: &out, errOut: &errOut, readers: readers}
}

// run executes the command line against a fresh command tree.
func (a *testApp) run(args ...string) error {
	root := NewRootCommand(a.App)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
