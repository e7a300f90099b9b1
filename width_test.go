package gxhash

import (
	"encoding/hex"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum_KnownValues(t *testing.T) {
	assert.Equal(t, uint64(10922345113571621535), Sum64([]byte("hello"), 42))
	assert.Equal(t, uint32(0xffc77094), Sum32([]byte("hello"), 0))

	assert.Equal(t, uint32(2044993267), Sum32([]byte("hello world"), 0))
	assert.Equal(t, uint64(2810473600927407859), Sum64([]byte("hello world"), 0))
	assert.Equal(t, Uint128{Lo: 2810473600927407859, Hi: 2679802196732223326}, Sum128([]byte("hello world"), 0))

	assert.Equal(t, Uint128{Lo: 10922345113571621535, Hi: 18431880177349569080}, Sum128([]byte("hello"), 42))
}

func TestWidth_Descriptors(t *testing.T) {
	assert.Equal(t, "gxhash32", W32.Name)
	assert.Equal(t, 4, W32.Size)
	assert.Equal(t, 32, W32.Bits())
	assert.Equal(t, "gxhash64", W64.Name)
	assert.Equal(t, 8, W64.Size)
	assert.Equal(t, "gxhash128", W128.Name)
	assert.Equal(t, 16, W128.Size)
	assert.Equal(t, 128, W128.Bits())

	assert.False(t, W32.Abstract())
	assert.True(t, Width[uint64]{}.Abstract())
}

func TestWidth_AppendDigest(t *testing.T) {
	data := []byte("hello world")

	assert.Equal(t, "f31ee479", hex.EncodeToString(W32.AppendDigest(nil, W32.Sum(data, 0))))
	assert.Equal(t, "f31ee479d9ce0027", hex.EncodeToString(W64.AppendDigest(nil, W64.Sum(data, 0))))
	assert.Equal(t, "f31ee479d9ce00275e1f8954e6913025", hex.EncodeToString(W128.AppendDigest(nil, W128.Sum(data, 0))))

	prefix := []byte{0xaa}
	out := W32.AppendDigest(prefix, 0x01020304)
	assert.Equal(t, []byte{0xaa, 0x04, 0x03, 0x02, 0x01}, out)
}

func TestWidth_PrefixProperty(t *testing.T) {
	for _, seed := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		data := []byte("prefix property")
		full := W128.Sum(data, seed)
		assert.Equal(t, full.Lo, W64.Sum(data, seed))
		assert.Equal(t, uint32(full.Lo), W32.Sum(data, seed))
	}
}

func TestUint128(t *testing.T) {
	u := Uint128{Lo: 2810473600927407859, Hi: 2679802196732223326}

	b := u.Bytes()
	assert.Equal(t, "f31ee479d9ce00275e1f8954e6913025", hex.EncodeToString(b[:]))
	assert.Equal(t, "49433625291283978589065019379163602675", u.String())

	want, _ := new(big.Int).SetString("49433625291283978589065019379163602675", 10)
	assert.Equal(t, 0, want.Cmp(u.BigInt()))

	assert.Equal(t, "0", Uint128{}.String())
	assert.Equal(t, "18446744073709551615", Uint128{Lo: math.MaxUint64}.String())
	assert.Equal(t, "18446744073709551616", Uint128{Hi: 1}.String())
}
