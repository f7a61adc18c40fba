// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/targetprobe/targetprobe/internal/buildconf"
	"github.com/targetprobe/targetprobe/internal/signals"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatTOML outputFormat = "toml"
)

// ErrInvalidFormat is returned for an unknown --format value.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	outputFormat string

	// profileReport is the serialized form of a classification.
	profileReport struct {
		Target              string          `json:"target,omitempty" toml:"target,omitempty"`
		Family              platform.Family `json:"family" toml:"family"`
		Rule                string          `json:"rule" toml:"rule"`
		WordWidth           int             `json:"word_width,omitempty" toml:"word_width,omitempty"`
		WindowsToolchain    string          `json:"windows_toolchain,omitempty" toml:"windows_toolchain,omitempty"`
		WindowsPhoneSandbox bool            `json:"windows_phone_sandbox,omitempty" toml:"windows_phone_sandbox,omitempty"`
		UnixLike            bool            `json:"unix_like" toml:"unix_like"`
		PosixCompliant      bool            `json:"posix_compliant" toml:"posix_compliant"`
		MachKernelDerived   bool            `json:"mach_kernel_derived" toml:"mach_kernel_derived"`
		DynamicLibraryExt   string          `json:"dynamic_library_extension" toml:"dynamic_library_extension"`
		ExecutableExt       string          `json:"executable_extension" toml:"executable_extension"`
		PathSeparator       string          `json:"path_separator" toml:"path_separator"`
		Error               string          `json:"error,omitempty" toml:"error,omitempty"`
	}

	targetsReport struct {
		Targets []profileReport `json:"targets" toml:"targets"`
	}
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatText, formatJSON, formatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (valid: text, json, toml)", ErrInvalidFormat, s)
	}
}

func newProfileReport(target string, res buildconf.Resolution, err error) profileReport {
	r := profileReport{Target: target, Rule: res.Rule}
	if err != nil {
		r.Error = err.Error()
		return r
	}

	p := res.Profile
	r.Family = p.Family()
	if w, ok := p.WordWidth(); ok {
		r.WordWidth = int(w)
	}
	if tc, ok := p.WindowsToolchain(); ok {
		r.WindowsToolchain = tc.String()
		r.WindowsPhoneSandbox = p.IsWindowsPhoneSandbox()
	}
	r.UnixLike = p.IsUnixLike()
	r.PosixCompliant = p.IsPosixCompliant()
	r.MachKernelDerived = p.IsMachKernelDerived()
	r.DynamicLibraryExt = p.DynamicLibraryExtension()
	r.ExecutableExt = p.ExecutableExtension()
	r.PathSeparator = p.PathSeparator()
	return r
}

// writeReports prints one report as a document and several as a list.
func writeReports(w io.Writer, format outputFormat, reports []profileReport) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(targetsReport{Targets: reports})
	case formatTOML:
		enc := toml.NewEncoder(w)
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(targetsReport{Targets: reports})
	default:
		if len(reports) == 1 {
			writeProfileText(w, reports[0])
			return nil
		}
		writeTargetsText(w, reports)
		return nil
	}
}

func writeProfileText(w io.Writer, r profileReport) {
	if r.Target != "" {
		fmt.Fprintln(w, TitleStyle.Render(r.Target))
	}
	if r.Error != "" {
		writeField(w, "Rule", r.Rule)
		fmt.Fprintf(w, "%s%s\n", keyColumnStyle.Render("Error"), ErrorStyle.Render(r.Error))
		return
	}

	writeField(w, "Family", SuccessStyle.Render(r.Family.String()))
	writeField(w, "Rule", r.Rule)
	if r.WindowsToolchain != "" {
		writeField(w, "Word width", fmt.Sprintf("%d-bit", r.WordWidth))
		writeField(w, "Windows toolchain", r.WindowsToolchain)
		writeField(w, "Phone sandbox", yesNo(r.WindowsPhoneSandbox))
	}
	writeField(w, "Unix-like", yesNo(r.UnixLike))
	writeField(w, "POSIX", yesNo(r.PosixCompliant))
	writeField(w, "Mach kernel", yesNo(r.MachKernelDerived))
	writeField(w, "Shared library", orNone(r.DynamicLibraryExt))
	writeField(w, "Executable", orNone(r.ExecutableExt))
	writeField(w, "Path separator", r.PathSeparator)
}

func writeTargetsText(w io.Writer, reports []profileReport) {
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(w, "%s%s %s\n", keyColumnStyle.Render(r.Target), ErrorStyle.Render("✗"), r.Error)
			continue
		}
		fmt.Fprintf(w, "%s%s %s %s\n", keyColumnStyle.Render(r.Target), SuccessStyle.Render("✓"),
			r.Family, SubtitleStyle.Render("(rule: "+r.Rule+")"))
	}
}

func writeField(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s%s\n", keyColumnStyle.Render(key), value)
}

func yesNo(b bool) string {
	if b {
		return SuccessStyle.Render("yes")
	}
	return SubtitleStyle.Render("no")
}

func orNone(ext string) string {
	if ext == "" {
		return SubtitleStyle.Render("(none)")
	}
	return ext
}

// writeSignals prints a raw signal set. The TOML form is a target descriptor.
func writeSignals(w io.Writer, format outputFormat, name string, set platform.SignalSet) error {
	switch format {
	case formatJSON:
		values := make(map[string]string, set.Len())
		for sig, v := range set.Values() {
			values[string(sig)] = v
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	case formatTOML:
		data, err := signals.EncodeDescriptorTOML(name, set)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		for _, sig := range set.Names() {
			v, _ := set.Value(sig)
			if v == "" {
				fmt.Fprintln(w, KeyStyle.Render(string(sig)))
				continue
			}
			fmt.Fprintf(w, "%s=%s\n", KeyStyle.Render(string(sig)), VerboseStyle.Render(v))
		}
		return nil
	}
}
