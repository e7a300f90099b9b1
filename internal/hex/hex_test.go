package hex

import (
	stdhex "encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeToString(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte{0x00}, "00"},
		{[]byte{0x94, 0x70, 0xc7, 0xff}, "9470c7ff"},
		{[]byte{0x0a, 0xb0}, "0ab0"},
		{[]byte("gxhash"), "677868617368"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeToString(tt.in))
	}
}

func TestAllBytesMatchStdlib(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}

	assert.Equal(t, stdhex.EncodeToString(src), EncodeToString(src))
	assert.Equal(t, "prefix:"+stdhex.EncodeToString(src), string(AppendEncode([]byte("prefix:"), src)))

	dst := make([]byte, EncodedLen(len(src)))
	n := Encode(dst, src)
	assert.Equal(t, 512, n)
	assert.Equal(t, stdhex.EncodeToString(src), string(dst))
}

func TestEncodePanicsOnShortDst(t *testing.T) {
	assert.Panics(t, func() {
		Encode(make([]byte, 3), []byte{1, 2})
	})
}
