// Package minio implements blobstore.BlobStore with the MinIO client, for
// MinIO and other S3-compatible servers (Ceph, Garage, SeaweedFS).
//
//	store, err := minio.New(minio.ConfigFromEnv(), "checksums", "")
//
// Blobs are read with ranged GETs, so digesting a large object never holds
// it in memory. Put sends a Content-MD5 header; Create streams an upload of
// unknown length.
package minio
