package gxhash

import (
	"encoding/binary"
	"math/big"

	"github.com/hupe1980/gxhash/internal/gxhash"
)

// Uint128 is a 128-bit hash value. Its byte form is little-endian, Lo first.
type Uint128 struct {
	Lo, Hi uint64
}

// Bytes returns the little-endian encoding.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], u.Lo)
	binary.LittleEndian.PutUint64(b[8:], u.Hi)
	return b
}

// BigInt returns u as an unsigned big integer.
func (u Uint128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

// String returns u in decimal.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return big.NewInt(0).SetUint64(u.Lo).String()
	}
	return u.BigInt().String()
}

// Digest is the set of hash value types.
type Digest interface {
	uint32 | uint64 | Uint128
}

// Width describes one hash width: its name, digest size and hash function.
// The zero Width has no hash function and cannot build a hasher.
type Width[T Digest] struct {
	Name      string
	Size      int
	Sum       func(b []byte, seed int64) T
	PutDigest func(dst []byte, v T)
}

// Bits returns the digest size in bits.
func (w Width[T]) Bits() int { return w.Size * 8 }

// Abstract reports whether w lacks a hash function.
func (w Width[T]) Abstract() bool { return w.Sum == nil || w.PutDigest == nil }

// AppendDigest appends the little-endian bytes of v to dst.
func (w Width[T]) AppendDigest(dst []byte, v T) []byte {
	n := len(dst)
	dst = append(dst, make([]byte, w.Size)...)
	w.PutDigest(dst[n:], v)
	return dst
}

// The three widths.
var (
	W32 = Width[uint32]{
		Name:      "gxhash32",
		Size:      4,
		Sum:       gxhash.Hash32,
		PutDigest: binary.LittleEndian.PutUint32,
	}
	W64 = Width[uint64]{
		Name:      "gxhash64",
		Size:      8,
		Sum:       gxhash.Hash64,
		PutDigest: binary.LittleEndian.PutUint64,
	}
	W128 = Width[Uint128]{
		Name: "gxhash128",
		Size: 16,
		Sum: func(b []byte, seed int64) Uint128 {
			lo, hi := gxhash.Hash128(b, seed)
			return Uint128{Lo: lo, Hi: hi}
		},
		PutDigest: func(dst []byte, v Uint128) {
			binary.LittleEndian.PutUint64(dst[:8], v.Lo)
			binary.LittleEndian.PutUint64(dst[8:16], v.Hi)
		},
	}
)

// Sum32 returns the 32-bit hash of b.
func Sum32(b []byte, seed int64) uint32 { return gxhash.Hash32(b, seed) }

// Sum64 returns the 64-bit hash of b.
func Sum64(b []byte, seed int64) uint64 { return gxhash.Hash64(b, seed) }

// Sum128 returns the 128-bit hash of b.
func Sum128(b []byte, seed int64) Uint128 { return W128.Sum(b, seed) }
