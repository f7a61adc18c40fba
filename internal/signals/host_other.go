// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || aix)

package signals

func hostSysname() string { return "" }
