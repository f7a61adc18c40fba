// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/targetprobe/targetprobe/internal/buildconf"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

func resolutionOf(t *testing.T, set platform.SignalSet) buildconf.Resolution {
	t.Helper()

	e := platform.Explain(set)
	if e.Err != nil {
		t.Fatalf("Explain(%v) error = %v", set, e.Err)
	}
	return buildconf.Resolution{Signals: set, Rule: e.Rule, Profile: e.Profile}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    outputFormat
		wantErr bool
	}{
		{"text", formatText, false},
		{"json", formatJSON, false},
		{"TOML", formatTOML, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("parseFormat(%q) error = %v, want ErrInvalidFormat", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestNewProfileReport(t *testing.T) {
	t.Parallel()

	mingw := platform.SignalSetOf(platform.SignalWin32, platform.SignalWin64, platform.SignalMinGW)
	r := newProfileReport("mingw64", resolutionOf(t, mingw), nil)

	if r.Family != platform.FamilyWindows || r.Rule != "windows" {
		t.Errorf("Family, Rule = %s, %s, want windows, windows", r.Family, r.Rule)
	}
	if r.WordWidth != 64 || r.WindowsToolchain == "" {
		t.Errorf("WordWidth, WindowsToolchain = %d, %q", r.WordWidth, r.WindowsToolchain)
	}
	if r.DynamicLibraryExt != ".dll" || r.ExecutableExt != ".exe" || r.PathSeparator != `\` {
		t.Errorf("naming = %q, %q, %q", r.DynamicLibraryExt, r.ExecutableExt, r.PathSeparator)
	}

	linux := newProfileReport("", resolutionOf(t, platform.SignalSetOf(platform.SignalLinux)), nil)
	if linux.WordWidth != 0 || linux.WindowsToolchain != "" {
		t.Error("Windows-only traits must stay unset for other families")
	}
	if !linux.UnixLike || linux.DynamicLibraryExt != ".so" {
		t.Errorf("linux report = %+v", linux)
	}

	failed := newProfileReport("mac", buildconf.Resolution{Rule: "apple"}, errors.New("unresolved Apple platform"))
	if failed.Error == "" || failed.Rule != "apple" || failed.Family != platform.FamilyUnknown {
		t.Errorf("failed report = %+v", failed)
	}
}

func TestWriteReportsJSON(t *testing.T) {
	t.Parallel()

	linux := newProfileReport("linux", resolutionOf(t, platform.SignalSetOf(platform.SignalLinux)), nil)
	android := newProfileReport("android", resolutionOf(t, platform.SignalSetOf(platform.SignalLinux, platform.SignalAndroid)), nil)

	var single bytes.Buffer
	if err := writeReports(&single, formatJSON, []profileReport{linux}); err != nil {
		t.Fatalf("writeReports() error = %v", err)
	}
	var gotSingle profileReport
	if err := json.Unmarshal(single.Bytes(), &gotSingle); err != nil {
		t.Fatalf("invalid JSON %q: %v", single.String(), err)
	}
	if gotSingle != linux {
		t.Errorf("decoded = %+v, want %+v", gotSingle, linux)
	}

	var many bytes.Buffer
	if err := writeReports(&many, formatJSON, []profileReport{android, linux}); err != nil {
		t.Fatalf("writeReports() error = %v", err)
	}
	var gotMany targetsReport
	if err := json.Unmarshal(many.Bytes(), &gotMany); err != nil {
		t.Fatalf("invalid JSON %q: %v", many.String(), err)
	}
	if len(gotMany.Targets) != 2 || gotMany.Targets[0].Family != platform.FamilyAndroid {
		t.Errorf("decoded = %+v", gotMany)
	}
}

func TestWriteReportsTOML(t *testing.T) {
	t.Parallel()

	report := newProfileReport("ios-sim", resolutionOf(t, platform.NewSignalSet(map[platform.Signal]string{
		platform.SignalApple:           "1",
		platform.SignalMach:            "1",
		platform.SignalIPhone:          "1",
		platform.SignalIPhoneSimulator: "1",
	})), nil)

	var buf bytes.Buffer
	if err := writeReports(&buf, formatTOML, []profileReport{report}); err != nil {
		t.Fatalf("writeReports() error = %v", err)
	}
	var got profileReport
	if err := toml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid TOML %q: %v", buf.String(), err)
	}
	if got.Family != platform.FamilyAppleIOSSimulator || !got.MachKernelDerived {
		t.Errorf("decoded = %+v", got)
	}
}

func TestWriteReportsText(t *testing.T) {
	t.Parallel()

	ok := newProfileReport("linux", resolutionOf(t, platform.SignalSetOf(platform.SignalLinux)), nil)
	bad := newProfileReport("bsd", buildconf.Resolution{Rule: "bsd"}, errors.New("unresolved BSD variant"))

	var buf bytes.Buffer
	if err := writeReports(&buf, formatText, []profileReport{bad, ok}); err != nil {
		t.Fatalf("writeReports() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per target, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "unresolved BSD variant") || !strings.Contains(lines[1], "linux") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriteSignalsJSON(t *testing.T) {
	t.Parallel()

	set := platform.NewSignalSet(map[platform.Signal]string{
		platform.SignalLinux:        "1",
		platform.SignalPosixVersion: "200809L",
	})

	var buf bytes.Buffer
	if err := writeSignals(&buf, formatJSON, "linux", set); err != nil {
		t.Fatalf("writeSignals() error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(got) != 2 || got["_POSIX_VERSION"] != "200809L" {
		t.Errorf("decoded = %v", got)
	}
}
