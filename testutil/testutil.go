package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Int64 returns a pseudo-random int64 over the full range, for use as a
// hash seed.
func (r *RNG) Int64() int64 {
	return int64(r.Uint64())
}

// Fill fills dst with pseudo-random bytes.
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Fill(b)
	return b
}

// Payloads returns count random payloads with lengths in [minLen, maxLen].
func (r *RNG) Payloads(count, minLen, maxLen int) [][]byte {
	out := make([][]byte, count)
	for i := range out {
		n := minLen
		if maxLen > minLen {
			n += r.Intn(maxLen - minLen + 1)
		}
		out[i] = r.Bytes(n)
	}
	return out
}

// BoundarySizes returns input lengths around the 16-byte lane and 128-byte
// block boundaries.
func BoundarySizes() []int {
	sizes := make([]int, 0, 48)
	for n := 0; n <= 17; n++ {
		sizes = append(sizes, n)
	}
	for _, edge := range []int{32, 48, 64, 80, 128, 144, 256, 4096} {
		sizes = append(sizes, edge-1, edge, edge+1)
	}
	return append(sizes, 1000, 4242)
}

// WriteFile writes data to a file named name in a per-test temp directory
// and returns its path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}
