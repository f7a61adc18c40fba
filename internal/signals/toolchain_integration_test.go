// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"

	"github.com/targetprobe/targetprobe/internal/testutil"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

const gccImage = "gcc:14"

// checkTestcontainersAvailable safely checks if testcontainers can be used.
// The provider lookup panics on some hosts without a container engine.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// containerRunner runs the probe inside ctr. Exec has no stdin, so the probe
// source is copied into the container and redirected from there.
func containerRunner(ctr testcontainers.Container) runFunc {
	return func(ctx context.Context, argv []string, stdin io.Reader) ([]byte, error) {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		if err := ctr.CopyToContainer(ctx, src, "/tmp/probe.c", 0o644); err != nil {
			return nil, err
		}

		cmd := append([]string{"sh", "-c", `exec "$0" "$@" < /tmp/probe.c`}, argv...)
		code, out, err := ctr.Exec(ctx, cmd, tcexec.Multiplexed())
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(out)
		if err != nil {
			return nil, err
		}
		if code != 0 {
			return nil, fmt.Errorf("exit status %d: %s", code, data)
		}
		return data, nil
	}
}

func TestToolchain_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping toolchain integration tests: testcontainers provider not available")
	}

	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: gccImage,
			Cmd:   []string{"sleep", "infinity"},
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("failed to start %s: %v", gccImage, err)
	}

	t.Run("NativeGCC", func(t *testing.T) {
		r := &toolchainReader{
			cfg:     ToolchainConfig{CC: "gcc"},
			run:     containerRunner(ctr),
			sandbox: func() SandboxType { return SandboxNone },
			getenv:  func(string) string { return "" },
		}

		set, err := r.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		for _, sig := range []platform.Signal{platform.SignalLinux, platform.SignalUnix, platform.SignalPosixVersion} {
			if !set.Defined(sig) {
				t.Errorf("gcc output should define %s", sig)
			}
		}

		p, err := platform.Classify(set)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if p.Family() != platform.FamilyLinux {
			t.Errorf("Family() = %s, want linux", p.Family())
		}
		if !p.IsPosixCompliant() {
			t.Error("glibc target should be POSIX compliant")
		}
	})

	t.Run("MissingCompiler", func(t *testing.T) {
		r := &toolchainReader{
			cfg:     ToolchainConfig{CC: "no-such-cc"},
			run:     containerRunner(ctr),
			sandbox: func() SandboxType { return SandboxNone },
			getenv:  func(string) string { return "" },
		}

		if _, err := r.Read(ctx); err == nil {
			t.Fatal("expected an error for a missing compiler")
		}
	})
}
