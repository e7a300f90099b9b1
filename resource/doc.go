// Package resource governs the resources consumed by offloaded hashing.
//
// A Controller tracks three budgets:
//
//   - Memory: bytes held by owned copies of caller buffers while they wait
//     for or run on a background worker (non-blocking, fail-fast)
//   - Concurrency: background worker slots (blocking acquire)
//   - IO: a token bucket applied to stream draining in FileDigest and blob
//     digests
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     1 << 30,
//	    MaxBackgroundWorkers: 8,
//	    IOLimitBytesPerSec:   64 << 20,
//	})
//
//	release, err := rc.Reserve(int64(len(buf)))
//	if err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer release()
//
// # Nil Safety
//
// All methods handle a nil Controller: it imposes no limits and tracks
// nothing.
package resource
