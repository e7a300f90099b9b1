// Package bolt implements blobstore.BlobStore on a single bbolt database
// file. It suits manifest catalogs and other small objects that should live
// in one file; values are read fully into memory on Open.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"go.etcd.io/bbolt"

	"github.com/hupe1980/gxhash/blobstore"
)

// DefaultBucket is the bbolt bucket used when none is configured.
const DefaultBucket = "blobs"

// Store keeps blobs as values of one bbolt bucket.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

type options struct {
	bucket  string
	timeout time.Duration
}

// Option configures Open.
type Option func(*options)

// WithBucket selects the bbolt bucket holding the blobs.
func WithBucket(name string) Option {
	return func(o *options) { o.bucket = name }
}

// WithTimeout bounds how long Open waits for the file lock held by another
// process. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Open opens or creates the database at path.
func Open(path string, optFns ...Option) (*Store, error) {
	o := options{bucket: DefaultBucket, timeout: time.Second}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.bucket == "" {
		return nil, errors.New("bolt: empty bucket name")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: o.timeout})
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, bucket: []byte(o.bucket)}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Open returns a snapshot of the named value.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, blobstore.ErrInvalidName
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(name))
		if v == nil {
			return blobstore.ErrNotFound
		}
		// v is only valid for the life of the transaction.
		data = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blobstore.NewBytesBlob(data), nil
}

// Create buffers writes and stores them on Close.
func (s *Store) Create(_ context.Context, name string) (blobstore.WritableBlob, error) {
	if name == "" {
		return nil, blobstore.ErrInvalidName
	}
	return &writableBlob{store: s, name: name}, nil
}

// Put stores data under name in one transaction.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return blobstore.ErrInvalidName
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(name), bytes.Clone(data))
	})
}

// PutIfNotExists stores data only when name is absent and returns
// blobstore.ErrExists otherwise.
func (s *Store) PutIfNotExists(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return blobstore.ErrInvalidName
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(name)) != nil {
			return blobstore.ErrExists
		}
		return b.Put([]byte(name), bytes.Clone(data))
	})
}

// Delete removes name. Missing names are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// List returns the names starting with prefix in key order.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	p := []byte(prefix)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

type writableBlob struct {
	store  *Store
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *writableBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *writableBlob) Sync() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	return nil
}

func (w *writableBlob) Close() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.closed = true
	return w.store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(w.store.bucket).Put([]byte(w.name), w.buf.Bytes())
	})
}

var _ blobstore.BlobStore = (*Store)(nil)
