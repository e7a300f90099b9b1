package gxhash

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HasHardwareAES reports whether the CPU exposes AES round instructions
// (AES-NI on amd64, the crypto extension on arm64).
func HasHardwareAES() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}
