// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("checksums/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	blob, err := store.Open(ctx, "data/part-0001.bin")
//	h, err := blobstore.Digest(ctx, blob, "gxhash128")
//
// # Features
//
//   - Range reads for sequential digesting without downloading first
//   - Multipart uploads with CRC32C checksums
//   - Conditional writes (PutIfNotExists)
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
