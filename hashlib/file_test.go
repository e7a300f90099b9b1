package hashlib

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gxhash/resource"
	"github.com/hupe1980/gxhash/testutil"
)

// readerOnly hides every method but Read.
type readerOnly struct {
	io.Reader
}

type countingReader struct {
	io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.Reader.Read(p)
}

func TestFileDigest_FromCurrentPosition(t *testing.T) {
	r := strings.NewReader("hello world")
	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	h, err := FileDigest(t.Context(), r, "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64([]byte(" world")).Digest(), h.Digest())
	assert.Equal(t, 0, r.Len())
}

func TestFileDigest_File(t *testing.T) {
	data := testutil.NewRNG(4711).Bytes(3*DefaultChunkSize + 17)
	path := testutil.WriteFile(t, "payload.bin", data)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	h, err := FileDigest(t.Context(), f, "gxhash128", WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, New128(data, WithSeed(99)).Digest(), h.Digest())
}

func TestFileDigest_Chunking(t *testing.T) {
	data := testutil.NewRNG(1).Bytes(1000)
	cr := &countingReader{Reader: bytes.NewReader(data)}

	h, err := FileDigest(t.Context(), cr, "gxhash32", WithChunkSize(100))
	require.NoError(t, err)
	assert.Equal(t, New32(data).Digest(), h.Digest())
	// 10 full chunks plus the read that reports EOF.
	assert.Equal(t, 11, cr.reads)
}

func TestFileDigest_ShortReads(t *testing.T) {
	data := testutil.NewRNG(2).Bytes(777)

	h, err := FileDigest(t.Context(), iotest.OneByteReader(bytes.NewReader(data)), "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64(data).Digest(), h.Digest())

	h, err = FileDigest(t.Context(), iotest.DataErrReader(bytes.NewReader(data)), "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64(data).Digest(), h.Digest())
}

func TestFileDigest_BytesFastPath(t *testing.T) {
	buf := bytes.NewBufferString("prefix-hello world")
	buf.Next(len("prefix-"))

	h, err := FileDigest(t.Context(), buf, "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64([]byte("hello world")).Digest(), h.Digest())
	assert.Equal(t, 0, buf.Len())
}

func TestFileDigest_Empty(t *testing.T) {
	h, err := FileDigest(t.Context(), readerOnly{strings.NewReader("")}, "gxhash32")
	require.NoError(t, err)
	assert.Equal(t, New32(nil).Digest(), h.Digest())
}

func TestFileDigest_UnknownAlgorithm(t *testing.T) {
	_, err := FileDigest(t.Context(), strings.NewReader("x"), "sha1")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestFileDigest_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := FileDigest(t.Context(), iotest.ErrReader(boom), "gxhash64")
	require.ErrorIs(t, err, boom)
}

func TestFileDigest_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := FileDigest(ctx, readerOnly{strings.NewReader("data")}, "gxhash64")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileDigest_RateLimited(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	data := testutil.NewRNG(3).Bytes(4096)

	h, err := FileDigest(t.Context(), readerOnly{bytes.NewReader(data)}, "gxhash64", WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, New64(data).Digest(), h.Digest())

	h, err = FileDigest(t.Context(), bytes.NewBuffer(data), "gxhash64", WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, New64(data).Digest(), h.Digest())
}

func TestFileDigestFunc(t *testing.T) {
	h, err := FileDigestFunc(t.Context(), strings.NewReader("hello"), func() Hash {
		return New64(nil, WithSeed(42))
	})
	require.NoError(t, err)
	assert.Equal(t, "9ffaa80003f79397", h.HexDigest())

	_, err = FileDigestFunc(t.Context(), strings.NewReader("hello"), nil)
	require.ErrorIs(t, err, ErrNilConstructor)

	_, err = FileDigestFunc(t.Context(), strings.NewReader("hello"), func() Hash { return nil })
	require.ErrorIs(t, err, ErrNilConstructor)
}

// bytesReader has a Bytes method that does not report the unread remainder.
type bytesReader struct {
	*strings.Reader
	all []byte
}

func (r bytesReader) Bytes() []byte { return r.all }

func TestFileDigest_BufferFastPath(t *testing.T) {
	buf := bytes.NewBufferString("xxhello")
	buf.Next(2)

	h, err := FileDigest(t.Context(), buf, "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64([]byte("hello")).Digest(), h.Digest())
	assert.Zero(t, buf.Len())

	// Other Bytes methods are ignored and the reader is consumed normally.
	r := bytesReader{Reader: strings.NewReader("hello"), all: []byte("something else")}
	h, err = FileDigest(t.Context(), r, "gxhash64")
	require.NoError(t, err)
	assert.Equal(t, New64([]byte("hello")).Digest(), h.Digest())
}
