// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home directory variable at dir for the
// rest of the test: USERPROFILE on Windows, HOME elsewhere. XDG_CONFIG_HOME is
// cleared so the config directory is derived from dir.
//
// The test must not be parallel (t.Setenv).
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
		t.Setenv("APPDATA", "")
	default:
		t.Setenv("HOME", dir)
	}
	t.Setenv("XDG_CONFIG_HOME", "")
}
