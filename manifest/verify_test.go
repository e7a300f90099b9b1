package manifest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gxhash/blobstore"
)

func TestVerify(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := t.Context()
	require.NoError(t, store.Put(ctx, "hello.txt", []byte("hello")))
	require.NoError(t, store.Put(ctx, "world.txt", []byte("hello world!")))
	require.NoError(t, store.Put(ctx, "wide.txt", []byte("hello world")))

	m := sample()
	results, err := Verify(ctx, m, BlobOpener(store), WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, "9ffaa80003f79397", results[0].Actual)
	assert.Equal(t, StatusMismatch, results[1].Status)
	assert.Equal(t, StatusMissing, results[2].Status)
	assert.ErrorIs(t, results[2].Err, blobstore.ErrNotFound)
	assert.Equal(t, StatusOK, results[3].Status)

	ok, failed := Summarize(results)
	assert.Equal(t, 2, ok)
	assert.Equal(t, 2, failed)
}

func TestVerify_ReadError(t *testing.T) {
	m := New()
	m.Add(Entry{Name: "x", Algorithm: "gxhash64", Digest: "0000000000000000"})
	m.Add(Entry{Name: "y", Algorithm: "sha1", Digest: "00"})

	boom := errors.New("boom")
	open := func(_ context.Context, name string) (io.ReadCloser, error) {
		if name == "x" {
			return io.NopCloser(io.MultiReader(strings.NewReader("abc"), errReader{boom})), nil
		}
		return io.NopCloser(strings.NewReader("")), nil
	}

	results, err := Verify(t.Context(), m, open)
	require.NoError(t, err)
	assert.Equal(t, StatusError, results[0].Status)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.Equal(t, StatusError, results[1].Status)
}

func TestVerify_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Verify(ctx, sample(), BlobOpener(blobstore.NewMemoryStore()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.String())
	assert.Equal(t, "FAILED", StatusMismatch.String())
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
