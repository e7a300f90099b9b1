package hashlib

import (
	"slices"
	"strconv"

	"github.com/hupe1980/gxhash"
)

// Algorithm identifies a registered digest.
type Algorithm uint8

const (
	// GxHash32 is the 32-bit digest.
	GxHash32 Algorithm = iota + 1
	// GxHash64 is the 64-bit digest.
	GxHash64
	// GxHash128 is the 128-bit digest.
	GxHash128
)

type algorithmInfo struct {
	name string
	size int
	new  func(data []byte, optFns ...Option) Hash
}

var registry = [...]algorithmInfo{
	GxHash32:  {gxhash.W32.Name, gxhash.W32.Size, func(data []byte, optFns ...Option) Hash { return New32(data, optFns...) }},
	GxHash64:  {gxhash.W64.Name, gxhash.W64.Size, func(data []byte, optFns ...Option) Hash { return New64(data, optFns...) }},
	GxHash128: {gxhash.W128.Name, gxhash.W128.Size, func(data []byte, optFns ...Option) Hash { return New128(data, optFns...) }},
}

// ParseAlgorithm returns the algorithm registered under name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a := GxHash32; a <= GxHash128; a++ {
		if registry[a].name == name {
			return a, nil
		}
	}
	return 0, &UnknownAlgorithmError{Name: name}
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if !a.Available() {
		return "unknown"
	}
	return registry[a].name
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	if !a.Available() {
		return 0
	}
	return registry[a].size
}

// Available reports whether a is registered.
func (a Algorithm) Available() bool {
	return a >= GxHash32 && a <= GxHash128
}

// New returns a digest for a primed with data. It panics for an
// unregistered algorithm, like crypto.Hash.New.
func (a Algorithm) New(data []byte, optFns ...Option) Hash {
	if !a.Available() {
		panic("hashlib: requested hash function #" + strconv.Itoa(int(a)) + " is unavailable")
	}
	return registry[a].new(data, optFns...)
}

// New returns a digest for the named algorithm primed with data.
func New(name string, data []byte, optFns ...Option) (Hash, error) {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return a.New(data, optFns...), nil
}

// Algorithms returns the registered names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry)-1)
	for a := GxHash32; a <= GxHash128; a++ {
		names = append(names, registry[a].name)
	}
	slices.Sort(names)
	return names
}

// AlgorithmsGuaranteed returns the names supported on every platform.
func AlgorithmsGuaranteed() []string { return Algorithms() }

// AlgorithmsAvailable returns the names supported in this process. All
// digests are implemented in Go, so this equals AlgorithmsGuaranteed.
func AlgorithmsAvailable() []string { return Algorithms() }
