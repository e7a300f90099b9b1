package hashlib

import (
	"encoding/binary"
	"hash"

	"github.com/hupe1980/gxhash"
	"github.com/hupe1980/gxhash/internal/buffer"
	"github.com/hupe1980/gxhash/internal/hex"
)

// Hash is an incremental GxHash digest.
type Hash interface {
	hash.Hash

	// Name returns the algorithm name, e.g. "gxhash64".
	Name() string
	// DigestSize returns the digest length in bytes.
	DigestSize() int
	// Digest returns the little-endian hash of everything written so far.
	Digest() []byte
	// HexDigest returns Digest as lowercase hex.
	HexDigest() string
	// Update appends p to the pending input.
	Update(p []byte)
	// Copy returns an independent clone.
	Copy() Hash
	// Seed returns the hash seed.
	Seed() int64

	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Hash32 is a 32-bit digest.
type Hash32 interface {
	Hash
	Sum32() uint32
}

// Hash64 is a 64-bit digest.
type Hash64 interface {
	Hash
	Sum64() uint64
}

// Hash128 is a 128-bit digest.
type Hash128 interface {
	Hash
	Sum128() gxhash.Uint128
}

var (
	_ hash.Hash32 = (*digest32)(nil)
	_ hash.Hash64 = (*digest64)(nil)
	_ Hash32      = (*digest32)(nil)
	_ Hash64      = (*digest64)(nil)
	_ Hash128     = (*digest128)(nil)
)

// New32 returns a 32-bit digest primed with data.
func New32(data []byte, optFns ...Option) Hash32 {
	return &digest32{newDigest(gxhash.W32, data, applyOptions(optFns))}
}

// New64 returns a 64-bit digest primed with data.
func New64(data []byte, optFns ...Option) Hash64 {
	return &digest64{newDigest(gxhash.W64, data, applyOptions(optFns))}
}

// New128 returns a 128-bit digest primed with data.
func New128(data []byte, optFns ...Option) Hash128 {
	return &digest128{newDigest(gxhash.W128, data, applyOptions(optFns))}
}

const (
	magic         = "gxh"
	marshaledSize = len(magic) + 1 + 8
)

type digest[T gxhash.Digest] struct {
	width gxhash.Width[T]
	seed  int64
	buf   []byte
}

func newDigest[T gxhash.Digest](w gxhash.Width[T], data []byte, o options) digest[T] {
	d := digest[T]{width: w, seed: o.seed}
	d.Update(data)
	return d
}

func (d *digest[T]) Name() string    { return d.width.Name }
func (d *digest[T]) DigestSize() int { return d.width.Size }
func (d *digest[T]) Size() int       { return d.width.Size }
func (d *digest[T]) BlockSize() int  { return 1 }
func (d *digest[T]) Seed() int64     { return d.seed }
func (d *digest[T]) Reset()          { d.buf = d.buf[:0] }
func (d *digest[T]) Update(p []byte) { d.buf = append(d.buf, p...) }
func (d *digest[T]) value() T        { return d.width.Sum(buffer.Borrow(d.buf).Bytes(), d.seed) }
func (d *digest[T]) Sum(b []byte) []byte {
	return d.width.AppendDigest(b, d.value())
}

func (d *digest[T]) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

func (d *digest[T]) Digest() []byte {
	return d.width.AppendDigest(make([]byte, 0, d.width.Size), d.value())
}

func (d *digest[T]) HexDigest() string {
	var raw [16]byte
	var out [32]byte
	sum := d.width.AppendDigest(raw[:0], d.value())
	return string(hex.AppendEncode(out[:0], sum))
}

func (d *digest[T]) clone() digest[T] {
	c := *d
	c.buf = append([]byte(nil), d.buf...)
	return c
}

func (d *digest[T]) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize+len(d.buf))
	b = append(b, magic...)
	b = append(b, byte(d.width.Size))
	b = binary.BigEndian.AppendUint64(b, uint64(d.seed))
	return append(b, d.buf...), nil
}

func (d *digest[T]) UnmarshalBinary(b []byte) error {
	if len(b) < marshaledSize || string(b[:len(magic)]) != magic {
		return ErrInvalidState
	}
	if int(b[len(magic)]) != d.width.Size {
		return ErrInvalidState
	}
	d.seed = int64(binary.BigEndian.Uint64(b[len(magic)+1:]))
	d.buf = append(d.buf[:0], b[marshaledSize:]...)
	return nil
}

type digest32 struct{ digest[uint32] }

func (d *digest32) Sum32() uint32 { return d.value() }
func (d *digest32) Copy() Hash    { return &digest32{d.clone()} }

type digest64 struct{ digest[uint64] }

func (d *digest64) Sum64() uint64 { return d.value() }
func (d *digest64) Copy() Hash    { return &digest64{d.clone()} }

type digest128 struct{ digest[gxhash.Uint128] }

func (d *digest128) Sum128() gxhash.Uint128 { return d.value() }
func (d *digest128) Copy() Hash             { return &digest128{d.clone()} }
