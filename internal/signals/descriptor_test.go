// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/targetprobe/targetprobe/pkg/cueutil"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadDescriptor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  string
		wantName string
		want     platform.Family
	}{
		{
			name: "cue ios simulator",
			file: "sim.cue",
			content: `name: "iphonesimulator"
description: "iOS simulator SDK"
defines: ["__APPLE__", "__MACH__", "TARGET_OS_IPHONE=1"]
signals: TARGET_IPHONE_SIMULATOR: "1"
`,
			wantName: "iphonesimulator",
			want:     platform.FamilyAppleIOSSimulator,
		},
		{
			name: "toml mingw",
			file: "mingw64.toml",
			content: `defines = ["_WIN32", "_WIN64"]

[signals]
__MINGW32__ = "1"
`,
			wantName: "mingw64",
			want:     platform.FamilyWindows,
		},
		{
			name:     "signals map wins over defines",
			file:     "override.cue",
			content:  "defines: [\"__APPLE__\", \"__MACH__\", \"TARGET_OS_MAC=0\"]\nsignals: TARGET_OS_MAC: \"1\"\n",
			wantName: "override",
			want:     platform.FamilyAppleMac,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, dir, tt.file, tt.content)
			d, err := LoadDescriptor(path)
			if err != nil {
				t.Fatalf("LoadDescriptor() error = %v", err)
			}
			if d.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", d.Name, tt.wantName)
			}
			p, err := platform.Classify(d.Signals)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if p.Family() != tt.want {
				t.Errorf("Family() = %s, want %s", p.Family(), tt.want)
			}
		})
	}
}

func TestLoadDescriptorErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "target.yaml", "defines: []\n")
		if _, err := LoadDescriptor(path); !errors.Is(err, ErrUnsupportedDescriptor) {
			t.Errorf("error = %v, want ErrUnsupportedDescriptor", err)
		}
	})

	t.Run("cue schema violation", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "bad.cue", `defines: ["1BAD"]`)
		_, err := LoadDescriptor(path)
		var vErr *cueutil.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("error = %v, want *cueutil.ValidationError", err)
		}
	})

	t.Run("cue unknown field", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "unknown.cue", `arch: "arm64"`)
		if _, err := LoadDescriptor(path); err == nil {
			t.Error("expected an error for a field outside the schema")
		}
	})

	t.Run("toml invalid define", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "bad.toml", `defines = ["WITH-DASH"]`)
		_, err := LoadDescriptor(path)
		if !errors.Is(err, ErrInvalidDescriptor) || !errors.Is(err, platform.ErrInvalidSignal) {
			t.Errorf("error = %v, want ErrInvalidDescriptor wrapping ErrInvalidSignal", err)
		}
	})

	t.Run("toml invalid signal name", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "badsig.toml", "[signals]\n\"A=B\" = \"1\"\n")
		if _, err := LoadDescriptor(path); !errors.Is(err, ErrInvalidDescriptor) {
			t.Errorf("error = %v, want ErrInvalidDescriptor", err)
		}
	})

	t.Run("toml unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, dir, "unknown.toml", `arch = "arm64"`)
		if _, err := LoadDescriptor(path); err == nil {
			t.Error("expected an error for an unknown key")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Descriptor(filepath.Join(dir, "missing.toml")).Read(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestEncodeDescriptorTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	set := platform.NewSignalSet(map[platform.Signal]string{
		platform.SignalLinux:        "1",
		platform.SignalPosixVersion: "200809L",
		"__VERSION__":               `"13.2.0"`,
	})

	data, err := EncodeDescriptorTOML("snapshot", set)
	if err != nil {
		t.Fatalf("EncodeDescriptorTOML() error = %v", err)
	}

	path := writeFile(t, t.TempDir(), "snapshot.toml", string(data))
	d, err := LoadDescriptor(path)
	if err != nil {
		t.Fatalf("LoadDescriptor() error = %v\n%s", err, data)
	}
	if !d.Signals.Equal(set) {
		t.Errorf("round trip = %v, want %v", d.Signals, set)
	}
}
