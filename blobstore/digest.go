package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/hupe1980/gxhash/hashlib"
)

// DefaultRangeSize is the size of each ReadRange request made by NewReader.
const DefaultRangeSize = 8 << 20

// Digest hashes the whole blob with the named algorithm.
//
// Mappable blobs are hashed from their mapping without intermediate reads.
// Other blobs are read front to back in DefaultRangeSize ranges. optFns
// configure the digest as for hashlib.FileDigest, including IO throttling
// through hashlib.WithResourceController.
func Digest(ctx context.Context, blob Blob, alg string, optFns ...hashlib.Option) (hashlib.Hash, error) {
	a, err := hashlib.ParseAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	newHash := func() hashlib.Hash { return a.New(nil, optFns...) }

	if m, ok := blob.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return hashlib.FileDigestFunc(ctx, bytes.NewBuffer(data), newHash, optFns...)
	}

	r := NewReader(ctx, blob, DefaultRangeSize)
	defer func() { _ = r.Close() }()
	return hashlib.FileDigestFunc(ctx, r, newHash, optFns...)
}

// NewReader returns a reader over the whole blob that issues sequential
// ReadRange calls of rangeSize bytes. Values <= 0 select DefaultRangeSize.
func NewReader(ctx context.Context, blob Blob, rangeSize int64) io.ReadCloser {
	if rangeSize <= 0 {
		rangeSize = DefaultRangeSize
	}
	return &rangeReader{ctx: ctx, blob: blob, size: blob.Size(), rangeSize: rangeSize}
}

type rangeReader struct {
	ctx       context.Context
	blob      Blob
	size      int64
	rangeSize int64

	off int64
	cur io.ReadCloser
	got int64
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if r.cur == nil {
			if r.off >= r.size {
				return 0, io.EOF
			}
			rc, err := r.blob.ReadRange(r.ctx, r.off, r.rangeSize)
			if errors.Is(err, io.EOF) {
				return 0, io.ErrUnexpectedEOF
			}
			if err != nil {
				return 0, err
			}
			r.cur, r.got = rc, 0
		}

		n, err := r.cur.Read(p)
		r.off += int64(n)
		r.got += int64(n)
		if errors.Is(err, io.EOF) {
			_ = r.cur.Close()
			r.cur = nil
			if r.got == 0 {
				// The blob shrank underneath us.
				return n, io.ErrUnexpectedEOF
			}
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (r *rangeReader) Close() error {
	if r.cur == nil {
		return nil
	}
	err := r.cur.Close()
	r.cur = nil
	return err
}
