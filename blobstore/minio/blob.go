package minio

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/gxhash/blobstore"
)

type blob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *blob) Size() int64  { return b.size }
func (b *blob) Close() error { return nil }

// get opens [off, off+n) clamped to the object size. The caller has
// checked 0 <= off < size and n > 0.
func (b *blob) get(ctx context.Context, off, n int64) (*minio.Object, int64, error) {
	end := min(off+n, b.size)
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end-1); err != nil {
		return nil, 0, err
	}
	obj, err := b.client.GetObject(ctx, b.bucket, b.key, opts)
	if err != nil {
		return nil, 0, translate(err)
	}
	return obj, end - off, nil
}

func (b *blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	switch {
	case off < 0:
		return 0, blobstore.ErrInvalidOffset
	case len(p) == 0:
		return 0, nil
	case off >= b.size:
		return 0, io.EOF
	}
	obj, n, err := b.get(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer func() { _ = obj.Close() }()

	read, err := io.ReadFull(obj, p[:n])
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if err == nil && read < len(p) {
		err = io.EOF
	}
	return read, err
}

func (b *blob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	switch {
	case off < 0 || length < 0:
		return nil, blobstore.ErrInvalidOffset
	case off >= b.size:
		return nil, io.EOF
	case length == 0:
		return io.NopCloser(eofReader{}), nil
	}
	obj, _, err := b.get(ctx, off, length)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

var errAborted = errors.New("minio: upload aborted")

// upload pipes writes into PutObject running on its own goroutine.
type upload struct {
	pw     *io.PipeWriter
	closed atomic.Bool
	once   sync.Once
	done   chan struct{}
	err    error
}

func startUpload(ctx context.Context, client *minio.Client, bucket, key string) *upload {
	pr, pw := io.Pipe()
	u := &upload{pw: pw, done: make(chan struct{})}
	go func() {
		defer close(u.done)
		_, u.err = client.PutObject(ctx, bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(u.err)
	}()
	return u
}

func (u *upload) Write(p []byte) (int, error) {
	if u.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return u.pw.Write(p)
}

func (u *upload) Sync() error { return nil }

// Close finishes the upload. Later calls return the same result.
func (u *upload) Close() error {
	u.finish(nil)
	<-u.done
	return u.err
}

// Abort cancels the upload; the object is not created.
func (u *upload) Abort() error {
	u.finish(errAborted)
	<-u.done
	return nil
}

func (u *upload) finish(err error) {
	u.once.Do(func() {
		u.closed.Store(true)
		_ = u.pw.CloseWithError(err)
	})
}
