package hashlib

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/hupe1980/gxhash/internal/buffer"
	"github.com/hupe1980/gxhash/resource"
)

// FileDigest hashes r from its current position to EOF with the named
// algorithm.
func FileDigest(ctx context.Context, r io.Reader, name string, optFns ...Option) (Hash, error) {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return FileDigestFunc(ctx, r, func() Hash { return a.New(nil, optFns...) }, optFns...)
}

// FileDigestFunc hashes r from its current position to EOF into the digest
// returned by newHash.
//
// r is read sequentially in fixed-size chunks and never seeked. A
// *bytes.Buffer is hashed from its unread bytes in one step and then
// drained, so r ends at EOF either way. ctx is checked between chunks.
func FileDigestFunc(ctx context.Context, r io.Reader, newHash func() Hash, optFns ...Option) (Hash, error) {
	if newHash == nil {
		return nil, ErrNilConstructor
	}
	o := applyOptions(optFns)
	h := newHash()
	if h == nil {
		return nil, ErrNilConstructor
	}

	if b, ok := r.(*bytes.Buffer); ok {
		view := buffer.Borrow(b.Bytes())
		if err := o.rc.AcquireIO(ctx, view.Len()); err != nil {
			return nil, err
		}
		h.Update(view.Bytes())
		b.Next(view.Len())
		return h, nil
	}

	if o.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.rc)
	}

	chunk := make([]byte, o.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		if n > 0 {
			h.Update(chunk[:n])
		}
		if errors.Is(err, io.EOF) {
			return h, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
