// Package blobstore provides the blob sources gxsum and the manifest
// package read from and write to.
//
// BlobStore is the interface for reading and writing data blobs (input
// files, checksum manifests). Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-process map, mainly for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//   - bolt.Store: a single bbolt database file
//
// # Digesting
//
// Digest hashes a blob with a registered hashlib algorithm. Blobs that
// implement Mappable are hashed straight from their mapping; all others are
// streamed through ReadRange in chunks:
//
//	blob, err := store.Open(ctx, "data.bin")
//	if err != nil {
//	    return err
//	}
//	defer blob.Close()
//
//	h, err := blobstore.Digest(ctx, blob, "gxhash64", hashlib.WithSeed(42))
package blobstore
