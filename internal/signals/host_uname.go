// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || aix

package signals

import "golang.org/x/sys/unix"

// hostSysname returns the kernel name from uname(2), or "" if the call fails.
func hostSysname() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Sysname[:])
}
