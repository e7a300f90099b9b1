// Command gxsum computes and checks GxHash checksums.
//
// Usage:
//
//	gxsum [flags] [file ...]
//	gxsum -c MANIFEST [flags]
//	gxsum version
//
// Files may be local paths, s3://bucket/key or minio://bucket/key. The MinIO
// endpoint and credentials come from MINIO_ENDPOINT, MINIO_ACCESS_KEY and
// MINIO_SECRET_KEY. With no files, or when a file is "-", standard input is
// read.
//
// Exit status is 0 on success, 1 if any input failed or did not match, and
// 2 on usage errors.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
