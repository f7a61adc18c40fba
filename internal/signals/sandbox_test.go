// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"errors"
	"os"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	exists := func(string) error { return nil }
	missing := func(string) error { return os.ErrNotExist }
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	tests := []struct {
		name     string
		env      map[string]string
		stat     func(string) error
		expected SandboxType
	}{
		{"no sandbox", nil, missing, SandboxNone},
		{"flatpak", nil, exists, SandboxFlatpak},
		{"snap", map[string]string{"SNAP_NAME": "targetprobe"}, missing, SandboxSnap},
		{"flatpak takes precedence", map[string]string{"SNAP_NAME": "targetprobe"}, exists, SandboxFlatpak},
		{"stat failure other than not-exist", nil, func(string) error { return errors.New("permission denied") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := detectSandboxFrom(env(tt.env), tt.stat); got != tt.expected {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHostCommand(t *testing.T) {
	t.Parallel()

	argv := []string{"cc", "-dM", "-E"}
	tests := []struct {
		name     string
		sandbox  SandboxType
		expected []string
	}{
		{"no sandbox", SandboxNone, []string{"cc", "-dM", "-E"}},
		{"flatpak", SandboxFlatpak, []string{"flatpak-spawn", "--host", "cc", "-dM", "-E"}},
		{"snap", SandboxSnap, []string{"snap", "run", "--shell", "cc", "-dM", "-E"}},
		{"unknown sandbox", SandboxType("docker"), []string{"cc", "-dM", "-E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HostCommand(tt.sandbox, argv); !slices.Equal(got, tt.expected) {
				t.Errorf("HostCommand() = %v, want %v", got, tt.expected)
			}
		})
	}

	if !slices.Equal(argv, []string{"cc", "-dM", "-E"}) {
		t.Errorf("HostCommand must not modify its input, got %v", argv)
	}
}

func TestDetectSandboxCaching(t *testing.T) {
	t.Setenv("SNAP_NAME", "")

	first := DetectSandbox()
	t.Setenv("SNAP_NAME", "test-snap")

	if second := DetectSandbox(); first != second {
		t.Errorf("DetectSandbox should return cached result: first=%q, second=%q", first, second)
	}
}
