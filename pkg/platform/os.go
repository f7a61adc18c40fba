// SPDX-License-Identifier: MPL-2.0

package platform

// GOOS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows   = "windows"
	Darwin    = "darwin"
	IOS       = "ios"
	Linux     = "linux"
	Android   = "android"
	FreeBSD   = "freebsd"
	DragonFly = "dragonfly"
	NetBSD    = "netbsd"
	OpenBSD   = "openbsd"
	AIX       = "aix"
	Solaris   = "solaris"
	Illumos   = "illumos"
)
