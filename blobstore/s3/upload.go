package s3

import (
	"bytes"
	"context"
	"errors"
	"hash"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	crc "github.com/hupe1980/gxhash/internal/hash"
)

var (
	// ErrChecksumMismatch is returned when S3 reports a different CRC32C
	// than the one computed over the written bytes.
	ErrChecksumMismatch = errors.New("s3: checksum mismatch")

	// ErrAborted is returned to the uploader of an aborted streaming upload.
	ErrAborted = errors.New("s3: upload aborted")
)

// UploadConfig tunes the streaming uploads started by Create.
type UploadConfig struct {
	// PartSize is the multipart part size. Zero uses the SDK default.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel.
	Concurrency int
	// Checksum requests CRC32C checksums and verifies single-part uploads
	// against the bytes written.
	Checksum bool
	// KeepPartsOnError leaves the parts of a failed multipart upload in
	// place; call Abort on the blob to remove them.
	KeepPartsOnError bool
}

// DefaultUploadConfig returns 8 MiB parts, five in flight, with checksums.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 << 20,
		Concurrency: 5,
		Checksum:    true,
	}
}

func (c UploadConfig) uploader(client Client) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if c.PartSize > 0 {
			u.PartSize = c.PartSize
		}
		if c.Concurrency > 0 {
			u.Concurrency = c.Concurrency
		}
		u.LeavePartsOnError = c.KeepPartsOnError
	})
}

// upload is a WritableBlob whose bytes are piped into a manager upload
// running on its own goroutine. The object exists only after Close
// returns nil.
type upload struct {
	client Client
	bucket string
	key    string

	pw     *io.PipeWriter
	crc    hash.Hash32
	closed atomic.Bool
	once   sync.Once

	// Written by the upload goroutine before done is closed.
	done     chan struct{}
	err      error
	uploadID string
}

func startUpload(ctx context.Context, client Client, up *manager.Uploader, bucket, key string, checksum bool) *upload {
	pr, pw := io.Pipe()
	u := &upload{
		client: client,
		bucket: bucket,
		key:    key,
		pw:     pw,
		crc:    crc.NewCRC32C(),
		done:   make(chan struct{}),
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   pr,
	}
	if checksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	go func() {
		defer close(u.done)
		out, err := up.Upload(ctx, input)
		if err == nil && checksum {
			err = u.verify(out.ChecksumCRC32C)
		}
		var failure manager.MultiUploadFailure
		if errors.As(err, &failure) {
			u.uploadID = failure.UploadID()
		}
		u.err = err
		_ = pr.CloseWithError(err)
	}()
	return u
}

// verify compares a full-object checksum. Multipart uploads report a
// checksum of part checksums ("<b64>-<parts>"), which is skipped.
func (u *upload) verify(got *string) error {
	if got == nil || strings.Contains(*got, "-") {
		return nil
	}
	if want := crc.EncodeCRC32C(u.crc.Sum32()); *got != want {
		return ErrChecksumMismatch
	}
	return nil
}

func (u *upload) Write(p []byte) (int, error) {
	if u.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	n, err := u.pw.Write(p)
	_, _ = u.crc.Write(p[:n])
	return n, err
}

// Sync is a no-op; nothing is visible before Close.
func (u *upload) Sync() error { return nil }

// Close finishes the upload and returns its result. Later calls return the
// same result.
func (u *upload) Close() error {
	u.once.Do(func() {
		u.closed.Store(true)
		_ = u.pw.Close()
	})
	<-u.done
	return u.err
}

// Abort cancels the upload. With KeepPartsOnError the parts uploaded so far
// are deleted as well.
func (u *upload) Abort(ctx context.Context) error {
	u.once.Do(func() {
		u.closed.Store(true)
		_ = u.pw.CloseWithError(ErrAborted)
	})
	<-u.done
	if u.uploadID == "" {
		return nil
	}
	_, err := u.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(u.bucket),
		Key:      aws.String(u.key),
		UploadId: aws.String(u.uploadID),
	})
	return err
}

// putObject writes data in one request with a CRC32C checksum. A non-nil
// ifNoneMatch makes the write conditional.
func putObject(ctx context.Context, client Client, bucket, key string, data []byte, ifNoneMatch *string) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(crc.CRC32CBase64(data)),
		IfNoneMatch:    ifNoneMatch,
	})
	return err
}
