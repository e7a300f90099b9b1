package manifest

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gxhash/blobstore"
	"github.com/hupe1980/gxhash/hashlib"
)

// Status is the outcome of verifying one entry.
type Status uint8

const (
	// StatusOK means the digest matched.
	StatusOK Status = iota
	// StatusMismatch means the input was read but its digest differs.
	StatusMismatch
	// StatusMissing means the input does not exist.
	StatusMissing
	// StatusError means the input could not be read or hashed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMismatch:
		return "FAILED"
	case StatusMissing:
		return "FAILED open or read"
	default:
		return "FAILED error"
	}
}

// Result is the outcome for one entry. Results are returned in entry order.
type Result struct {
	Entry  Entry
	Actual string
	Status Status
	Err    error
}

// OK reports whether the entry verified.
func (r Result) OK() bool { return r.Status == StatusOK }

// Opener opens the named input for verification.
type Opener func(ctx context.Context, name string) (io.ReadCloser, error)

type verifyOptions struct {
	concurrency int
	hashOpts    []hashlib.Option
}

// VerifyOption configures Verify.
type VerifyOption func(*verifyOptions)

// WithConcurrency bounds the number of entries verified at once. Values
// <= 0 select GOMAXPROCS.
func WithConcurrency(n int) VerifyOption {
	return func(o *verifyOptions) { o.concurrency = n }
}

// WithHashOptions passes options such as hashlib.WithResourceController to
// every digest. The seed always comes from the entry.
func WithHashOptions(optFns ...hashlib.Option) VerifyOption {
	return func(o *verifyOptions) { o.hashOpts = append(o.hashOpts, optFns...) }
}

// Verify recomputes every entry's digest from open and compares it with the
// recorded one. Per-entry failures are reported in the results; the error
// is non-nil only when ctx is done.
func Verify(ctx context.Context, m *Manifest, open Opener, optFns ...VerifyOption) ([]Result, error) {
	o := verifyOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(m.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, e := range m.Entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = verifyEntry(gctx, e, open, o.hashOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func verifyEntry(ctx context.Context, e Entry, open Opener, hashOpts []hashlib.Option) Result {
	res := Result{Entry: e}

	rc, err := open(ctx, e.Name)
	if err != nil {
		res.Err = err
		res.Status = StatusError
		if errors.Is(err, blobstore.ErrNotFound) {
			res.Status = StatusMissing
		}
		return res
	}
	defer func() { _ = rc.Close() }()

	opts := append(hashOpts[:len(hashOpts):len(hashOpts)], hashlib.WithSeed(e.Seed))
	h, err := hashlib.FileDigest(ctx, rc, e.Algorithm, opts...)
	if err != nil {
		res.Err = err
		res.Status = StatusError
		return res
	}

	res.Actual = h.HexDigest()
	if !strings.EqualFold(res.Actual, e.Digest) {
		res.Status = StatusMismatch
	}
	return res
}

// Summarize counts the results that verified and those that did not.
func Summarize(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// BlobOpener returns an Opener that reads names from store sequentially.
func BlobOpener(store blobstore.BlobStore) Opener {
	return func(ctx context.Context, name string) (io.ReadCloser, error) {
		blob, err := store.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		return &blobReadCloser{ReadCloser: blobstore.NewReader(ctx, blob, 0), blob: blob}, nil
	}
}

type blobReadCloser struct {
	io.ReadCloser
	blob blobstore.Blob
}

func (r *blobReadCloser) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.blob.Close())
}
