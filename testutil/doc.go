// Package testutil provides testing utilities for gxhash.
//
// This package is intended for use in tests and benchmarks only.
//
// # Deterministic Payloads
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(1 << 20)
//	batch := rng.Payloads(100, 0, 4096)
//
// # Lane Boundaries
//
// BoundarySizes lists input lengths on both sides of every 16-byte lane
// and of the unrolled 128-byte block, which is where hash implementations
// usually go wrong.
package testutil
