package gxhash

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
)

var benchSizes = []int{16, 256, 4096, 1 << 20}

func BenchmarkHash64(b *testing.B) {
	for _, size := range benchSizes {
		data := seq(size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for b.Loop() {
				_ = Hash64(data, 42)
			}
		})
	}
}

func BenchmarkHash128(b *testing.B) {
	for _, size := range benchSizes {
		data := seq(size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for b.Loop() {
				_, _ = Hash128(data, 42)
			}
		})
	}
}

// BenchmarkXXHash64 is the baseline: xxhash is the usual non-cryptographic
// 64-bit choice in Go.
func BenchmarkXXHash64(b *testing.B) {
	for _, size := range benchSizes {
		data := seq(size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for b.Loop() {
				_ = xxhash.Sum64(data)
			}
		})
	}
}
