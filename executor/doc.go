// Package executor runs offloaded hash jobs on a fixed pool of worker
// goroutines.
//
// A Runtime owns a bounded job queue and a set of workers. Callers never
// hold a Runtime directly on the hot path; they hold a Handle, a cheap
// non-owning reference that can be copied into every hasher.
//
// The process-wide runtime is created lazily by Default and lives for the
// rest of the process. Its configuration can be overridden with environment
// variables:
//
//	GXHASH_WORKERS       number of workers (default GOMAXPROCS)
//	GXHASH_QUEUE_SIZE    queued jobs before Spawn blocks (default 4 per worker)
//	GXHASH_MEMORY_LIMIT  byte budget for owned buffer copies (default unlimited)
//
// Spawn is the only suspension point. It returns a Task, an awaitable
// future whose result slot is buffered: abandoning a Task never blocks or
// leaks the worker that completes it.
package executor
