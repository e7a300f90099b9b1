package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hupe1980/gxhash/blobstore"
	"github.com/hupe1980/gxhash/blobstore/bolt"
	"github.com/hupe1980/gxhash/blobstore/minio"
	"github.com/hupe1980/gxhash/blobstore/s3"
	"github.com/hupe1980/gxhash/internal/stream"
)

const stdinName = "-"

// boltSuffix ends the database path in a bolt:// location.
const boltSuffix = ".db/"

// storeFactory opens the store for one bucket.
type storeFactory func(ctx context.Context, bucket string) (blobstore.BlobStore, error)

// resolver maps input names to blob stores. Remote stores are created once
// per bucket.
type resolver struct {
	mu        sync.Mutex
	stores    map[string]blobstore.BlobStore
	factories map[string]storeFactory
}

func newResolver() *resolver {
	return &resolver{
		stores: make(map[string]blobstore.BlobStore),
		factories: map[string]storeFactory{
			"s3": func(ctx context.Context, bucket string) (blobstore.BlobStore, error) {
				return s3.New(ctx, bucket)
			},
			"minio": func(_ context.Context, bucket string) (blobstore.BlobStore, error) {
				return minio.New(minio.ConfigFromEnv(), bucket, "")
			},
			"bolt": func(_ context.Context, path string) (blobstore.BlobStore, error) {
				return bolt.Open(path)
			},
		},
	}
}

// split separates a location into bucket and key. For bolt the bucket is
// the database file, so bolt:///var/sums.db/release/SUMS names the key
// release/SUMS in /var/sums.db.
func split(scheme, rest string) (string, string) {
	if scheme == "bolt" {
		if i := strings.Index(rest, boltSuffix); i >= 0 {
			return rest[:i+len(boltSuffix)-1], rest[i+len(boltSuffix):]
		}
		return "", ""
	}
	bucket, key, _ := strings.Cut(rest, "/")
	return bucket, key
}

// close releases stores that hold open handles, such as bolt databases.
func (r *resolver) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for id, st := range r.stores {
		if c, ok := st.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
		delete(r.stores, id)
	}
	return errors.Join(errs...)
}

// resolve returns the store holding name and the key within it.
func (r *resolver) resolve(ctx context.Context, name string) (blobstore.BlobStore, string, error) {
	scheme, rest, ok := strings.Cut(name, "://")
	if !ok {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, "", err
		}
		return blobstore.NewLocalStore(filepath.Dir(abs)), filepath.Base(abs), nil
	}

	bucket, key := split(scheme, rest)
	if bucket == "" || key == "" {
		want := scheme + "://bucket/key"
		if scheme == "bolt" {
			want = "bolt://path.db/key"
		}
		return nil, "", fmt.Errorf("invalid location %q: want %s", name, want)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := scheme + "://" + bucket
	if st, ok := r.stores[id]; ok {
		return st, key, nil
	}
	factory, ok := r.factories[scheme]
	if !ok {
		return nil, "", fmt.Errorf("unsupported scheme %q", scheme)
	}
	st, err := factory(ctx, bucket)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", id, err)
	}
	r.stores[id] = st
	return st, key, nil
}

// open returns a reader over the content of name. Mapped local files are
// returned as *mappedReader so callers can hash them without copying.
func (a *app) open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == stdinName {
		return a.maybeDecompress(name, io.NopCloser(a.stdin))
	}

	st, key, err := a.sources.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	blob, err := st.Open(ctx, key)
	if err != nil {
		return nil, err
	}

	if m, ok := blob.(blobstore.Mappable); ok && !a.decompresses(name) {
		data, err := m.Bytes()
		if err != nil {
			_ = blob.Close()
			return nil, err
		}
		return &mappedReader{Buffer: bytes.NewBuffer(data), blob: blob}, nil
	}

	br := blobstore.NewReader(ctx, blob, 0)
	return a.maybeDecompress(name, &closers{Reader: br, cs: []io.Closer{br, blob}})
}

func (a *app) decompresses(name string) bool {
	return a.opts.decompress && stream.Detect(name) != stream.None
}

func (a *app) maybeDecompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	if !a.decompresses(name) {
		return rc, nil
	}
	dr, err := stream.NewReader(rc, stream.Detect(name))
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return &closers{Reader: dr, cs: []io.Closer{dr, rc}}, nil
}

// mappedReader exposes a mapped blob through Bytes so digest can hand the
// whole slice to the dual-mode hasher.
type mappedReader struct {
	*bytes.Buffer
	blob blobstore.Blob
}

func (m *mappedReader) Close() error { return m.blob.Close() }

type closers struct {
	io.Reader
	cs []io.Closer
}

func (c *closers) Close() error {
	var errs []error
	for _, cl := range c.cs {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}
