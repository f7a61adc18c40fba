// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"bufio"
	"io"
	"strings"

	"github.com/targetprobe/targetprobe/pkg/platform"
)

// maxMacroLine bounds a single line of preprocessor output. Some headers
// define very long object-like macros.
const maxMacroLine = 1 << 20

// ParseMacros reads `cc -dM -E` output and returns every object-like macro
// as a signal. Function-like macros and lines that are not #define
// directives are skipped.
func ParseMacros(r io.Reader) (platform.SignalSet, error) {
	values := make(map[platform.Signal]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxMacroLine)
	for sc.Scan() {
		name, value, ok := parseDefine(sc.Text())
		if ok {
			values[name] = value
		}
	}
	if err := sc.Err(); err != nil {
		return platform.SignalSet{}, err
	}
	return platform.NewSignalSet(values), nil
}

// parseDefine splits "#define NAME VALUE". A directive without a value
// defines NAME to the empty string, as the preprocessor does.
func parseDefine(line string) (platform.Signal, string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "#")
	if !ok {
		return "", "", false
	}
	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), "define")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", "", false
	}
	rest = strings.TrimLeft(rest, " \t")

	end := strings.IndexAny(rest, " \t(")
	if end == -1 {
		end = len(rest)
	}
	if end < len(rest) && rest[end] == '(' {
		return "", "", false
	}

	name, _, err := platform.ParseSignal(rest[:end])
	if err != nil {
		return "", "", false
	}
	return name, strings.TrimSpace(rest[end:]), true
}
