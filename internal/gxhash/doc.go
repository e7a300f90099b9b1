// Package gxhash implements the GxHash family of non-cryptographic hash functions.
//
// GxHash compresses its input in 16-byte lanes with AES rounds, runs an
// eight-lane unrolled loop for long inputs and finishes with three rounds
// over a fixed key schedule. The seed is broadcast into both 64-bit halves of
// the state before finalization.
//
// # Portability
//
// AES rounds are evaluated in software from lookup tables, so results are
// bit-for-bit identical on every GOARCH and do not depend on AES-NI or the
// ARMv8 crypto extension being present. HasHardwareAES only reports what the
// CPU offers.
//
// # Usage
//
//	h := gxhash.Hash64([]byte("hello"), 42) // 10922345113571621535
//
// All functions are pure and total: they accept empty input and never retain
// the input slice.
package gxhash
