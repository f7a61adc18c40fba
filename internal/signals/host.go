// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"context"
	"runtime"
	"sync"

	"github.com/targetprobe/targetprobe/pkg/platform"
)

// SignalHostSysname records the kernel name reported by uname(2) on Unix
// hosts. No classification rule reads it.
const SignalHostSysname platform.Signal = "TARGETPROBE_HOST_SYSNAME"

// POSIX versions advertised by the host table.
const (
	posix2008 = "200809L"
	posix2001 = "200112L"
)

// hostOnce caches the host signals for the lifetime of the process.
//
// INVARIANT: hostSysname MUST NOT panic (see detectOnce).
var hostOnce = sync.OnceValue(func() platform.SignalSet {
	return hostSignals(runtime.GOOS, runtime.GOARCH, hostSysname())
})

// Host returns a Reader yielding the macros a native C toolchain on the
// running host would predefine. It never runs a compiler, so it works on
// machines without one, at the price of asserting presence only: version
// macros such as __FreeBSD__ are defined to "1".
func Host() Reader {
	return ReaderFunc(func(context.Context) (platform.SignalSet, error) {
		return hostOnce(), nil
	})
}

// hostSignals maps a Go platform to C toolchain macros. sysname is the uname
// kernel name, empty where unavailable.
func hostSignals(goos, goarch, sysname string) platform.SignalSet {
	v := make(map[platform.Signal]string)
	unix := func(posix string) {
		v[platform.SignalUnix] = "1"
		v[platform.SignalUnix2] = "1"
		v[platform.SignalPosixVersion] = posix
	}
	apple := func(iphone, simulator bool) {
		v[platform.SignalApple] = "1"
		v[platform.SignalMach] = "1"
		v[platform.SignalBSD] = "199506"
		v[platform.SignalMac] = "1"
		v[platform.SignalIPhone] = boolMacro(iphone)
		v[platform.SignalIPhoneSimulator] = boolMacro(simulator)
		v[platform.SignalPosixVersion] = posix2001
	}
	bsd := func(variant platform.Signal) {
		v[platform.SignalBSD] = "199506"
		v[variant] = "1"
		unix(posix2008)
	}

	switch goos {
	case platform.Linux:
		v[platform.SignalLinux] = "1"
		unix(posix2008)
	case platform.Android:
		v[platform.SignalLinux] = "1"
		v[platform.SignalAndroid] = "1"
		unix(posix2008)
	case platform.Windows:
		v[platform.SignalWin32] = "1"
		if is64Bit(goarch) {
			v[platform.SignalWin64] = "1"
		}
	case platform.Darwin:
		apple(false, false)
	case platform.IOS:
		// ios/amd64 only exists as the simulator.
		apple(true, goarch == "amd64")
	case platform.FreeBSD:
		bsd(platform.SignalFreeBSD)
	case platform.DragonFly:
		bsd(platform.SignalDragonFly)
	case platform.NetBSD:
		bsd(platform.SignalNetBSD)
	case platform.OpenBSD:
		bsd(platform.SignalOpenBSD)
	case platform.AIX:
		v[platform.SignalAIX] = "1"
		v[platform.SignalUnix2] = "1"
		v[platform.SignalPosixVersion] = posix2008
	case platform.Solaris, platform.Illumos:
		v[platform.SignalSun] = "1"
		v[platform.SignalSVR4] = "1"
		unix(posix2008)
	}

	if sysname != "" {
		v[SignalHostSysname] = sysname
		// A Linux kernel behind another GOOS label (a Linux binary
		// compatibility layer) still hosts a Linux toolchain.
		if sysname == "Linux" && v[platform.SignalLinux] == "" {
			v[platform.SignalLinux] = "1"
			unix(posix2008)
		}
	}

	return platform.NewSignalSet(v)
}

func is64Bit(goarch string) bool {
	switch goarch {
	case "amd64", "arm64", "loong64", "mips64", "mips64le", "ppc64", "ppc64le", "riscv64", "s390x", "sparc64", "wasm":
		return true
	default:
		return false
	}
}

func boolMacro(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
