package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	assert.Equal(t, uint32(0x9a71bb4c), CRC32C([]byte("hello")))
	assert.Equal(t, uint32(0), CRC32C(nil))

	h := NewCRC32C()
	_, _ = h.Write([]byte("he"))
	_, _ = h.Write([]byte("llo"))
	assert.Equal(t, CRC32C([]byte("hello")), h.Sum32())
}

func TestCRC32CBase64(t *testing.T) {
	assert.Equal(t, "mnG7TA==", CRC32CBase64([]byte("hello")))
	assert.Equal(t, "AAAAAA==", EncodeCRC32C(0))
}
