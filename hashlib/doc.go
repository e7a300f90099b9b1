// Package hashlib exposes GxHash through incremental digest objects.
//
// Every digest implements hash.Hash. The 32 and 64-bit digests also
// implement hash.Hash32 and hash.Hash64, so they drop into code written
// against the standard library interfaces:
//
//	h := hashlib.New64(nil, hashlib.WithSeed(42))
//	io.Copy(h, r)
//	fmt.Println(h.HexDigest())
//
// Digests are selected by name through New:
//
//	h, err := hashlib.New("gxhash128", data)
//
// # Update Semantics
//
// GxHash is not a streaming hash. A digest keeps every byte passed to
// Update and rehashes the whole buffer on each Digest call, so the result
// always equals the one-shot hash of the concatenated input. Memory grows
// with the input and Digest is O(n).
//
// # Security
//
// GxHash is not cryptographic. WithUsedForSecurity is accepted for
// interface compatibility and changes nothing.
package hashlib
