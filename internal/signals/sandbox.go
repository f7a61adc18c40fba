// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"os"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic. sync.OnceValue re-panics on
// every call after a panic, which would break every toolchain probe.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the application sandbox targetprobe runs in, if any.
// A sandboxed process cannot see the host's compilers, so toolchain probes are
// spawned on the host instead.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. The result is
// cached after the first call.
//
// Detection methods:
//   - Flatpak: /.flatpak-info exists
//   - Snap: SNAP_NAME is set
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostCommand prefixes argv so that it runs on the host when st is a sandbox.
// Outside a sandbox argv is returned unchanged.
//
//	HostCommand(SandboxFlatpak, []string{"cc", "-dM"}) // flatpak-spawn --host cc -dM
func HostCommand(st SandboxType, argv []string) []string {
	prefix := spawnPrefix(st)
	if len(prefix) == 0 {
		return argv
	}
	out := make([]string, 0, len(prefix)+len(argv))
	out = append(out, prefix...)
	return append(out, argv...)
}

func spawnPrefix(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	case SandboxSnap:
		return []string{"snap", "run", "--shell"}
	default:
		return nil
	}
}

// detectSandboxFrom performs sandbox detection using the given lookups so
// tests can run it without touching process state.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// Flatpak takes precedence.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
