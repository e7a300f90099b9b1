// Package gxhash provides seeded, non-cryptographic GxHash functions in
// 32, 64 and 128-bit widths.
//
// GxHash is fast and well distributed but it is not a cryptographic hash.
// Never use it for signatures, MACs, password storage or anything that has
// to resist an adversary.
//
// # Quick Start
//
// One-shot:
//
//	sum := gxhash.Sum64([]byte("hello"), 42) // 10922345113571621535
//
// Hasher objects carry a seed and can offload large inputs to a shared
// worker runtime:
//
//	h, err := gxhash.New64(42)
//	if err != nil { ... }
//
//	v := h.Hash(data)                        // always inline
//	v, err = h.HashAsync(ctx, data).Wait(ctx) // offloaded when len(data) >= 4 MiB
//
// Both paths return the same value for the same input.
//
// # Offloading
//
// HashAsync runs inputs smaller than the offload threshold inline and
// returns an already-resolved task. Larger inputs are copied into a buffer
// owned by the job, so the caller may reuse data as soon as HashAsync
// returns. Copies are charged against the runtime's memory budget; a
// rejected reservation surfaces as an *AsyncHashError.
//
// The runtime is created lazily on first use and shared by every hasher in
// the process (see package executor). Inject a private runtime with
// WithRuntime.
//
// # Incremental Hashing
//
// Package hashlib exposes the same functions through digest objects that
// implement hash.Hash, hash.Hash32 and hash.Hash64.
//
// # Stability
//
// Values are identical on every platform and do not depend on hardware AES
// support.
package gxhash
