package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/gxhash/internal/gxhash"
	"github.com/hupe1980/gxhash/resource"
)

type job func()

// Runtime is a fixed pool of workers draining a bounded job queue.
type Runtime struct {
	cfg    Config
	jobs   chan job
	rc     *resource.Controller
	logger *slog.Logger
	shared bool

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	submitted atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
}

// Stats is a point-in-time view of a Runtime.
type Stats struct {
	Workers     int
	QueueSize   int
	Queued      int
	Running     int64
	Submitted   int64
	Completed   int64
	Panicked    int64
	MemoryUsed  int64
	MemoryLimit int64
	HardwareAES bool
}

// New validates cfg and starts the workers.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	rt := &Runtime{
		cfg:  cfg,
		jobs: make(chan job, cfg.QueueSize),
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:     cfg.MemoryLimitBytes,
			MaxBackgroundWorkers: int64(cfg.Workers),
			IOLimitBytesPerSec:   cfg.IOLimitBytesPerSec,
		}),
		logger: cfg.Logger,
	}

	rt.wg.Add(cfg.Workers)
	for i := range cfg.Workers {
		go rt.worker(i)
	}

	rt.logger.Debug("runtime started", "workers", cfg.Workers, "queue_size", cfg.QueueSize)
	return rt, nil
}

var defaultRuntime = sync.OnceValues(func() (*Runtime, error) {
	cfg, err := ConfigFromEnv(Config{})
	if err != nil {
		return nil, err
	}
	rt, err := New(cfg)
	if err != nil {
		return nil, err
	}
	rt.shared = true
	return rt, nil
})

// Default returns the process-wide runtime, creating it on first use.
// An initialisation error is returned on every call.
func Default() (*Runtime, error) {
	return defaultRuntime()
}

// Handle returns a non-owning reference to rt.
func (rt *Runtime) Handle() Handle {
	return Handle{rt: rt}
}

// Controller returns the resource controller that accounts owned copies.
func (rt *Runtime) Controller() *resource.Controller {
	return rt.rc
}

// Config returns the effective configuration.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// Close stops accepting jobs, runs everything already queued and waits for
// the workers to exit.
func (rt *Runtime) Close() error {
	if rt.shared {
		return ErrSharedRuntime
	}

	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return ErrClosed
	}
	rt.closed = true
	close(rt.jobs)
	rt.mu.Unlock()

	rt.wg.Wait()
	rt.logger.Debug("runtime closed", "completed", rt.completed.Load(), "panicked", rt.panicked.Load())
	return nil
}

// Stats returns runtime counters.
func (rt *Runtime) Stats() Stats {
	rs := rt.rc.Stats()
	return Stats{
		Workers:     rt.cfg.Workers,
		QueueSize:   rt.cfg.QueueSize,
		Queued:      len(rt.jobs),
		Running:     rt.running.Load(),
		Submitted:   rt.submitted.Load(),
		Completed:   rt.completed.Load(),
		Panicked:    rt.panicked.Load(),
		MemoryUsed:  rs.MemoryUsed,
		MemoryLimit: rs.MemoryLimit,
		HardwareAES: gxhash.HasHardwareAES(),
	}
}

func (rt *Runtime) submit(ctx context.Context, j job) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if rt.closed {
		return ErrClosed
	}

	select {
	case rt.jobs <- j:
		rt.submitted.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (rt *Runtime) worker(id int) {
	defer rt.wg.Done()

	for j := range rt.jobs {
		rt.run(j)
	}
	rt.logger.Debug("worker stopped", "worker", id)
}

func (rt *Runtime) run(j job) {
	// Slots equal workers and the context never ends, so this cannot fail.
	_ = rt.rc.AcquireBackground(context.Background())
	rt.running.Add(1)
	defer func() {
		rt.running.Add(-1)
		rt.rc.ReleaseBackground()
		rt.completed.Add(1)
	}()
	j()
}

func (rt *Runtime) recovered(r any, stack []byte) *JoinError {
	rt.panicked.Add(1)
	rt.logger.Error("task panicked", "panic", fmt.Sprint(r), "stack", string(stack))
	return &JoinError{Panic: r, Stack: stack, Err: ErrPanicked}
}

// Handle is a cheap, copyable, non-owning reference to a Runtime.
type Handle struct {
	rt *Runtime
}

// Valid reports whether h refers to a runtime.
func (h Handle) Valid() bool { return h.rt != nil }

// Controller returns the runtime's resource controller, or nil.
func (h Handle) Controller() *resource.Controller {
	if h.rt == nil {
		return nil
	}
	return h.rt.rc
}

// Spawn submits fn to the runtime behind h. Submission waits for queue
// space or ctx. Every failure surfaces from the task as a *JoinError.
func Spawn[T any](ctx context.Context, h Handle, fn func() T) *Task[T] {
	if h.rt == nil {
		return Failed[T](&JoinError{Err: ErrNoRuntime})
	}
	if err := ctx.Err(); err != nil {
		return Failed[T](&JoinError{Err: err})
	}

	t := newTask[T]()
	rt := h.rt

	err := rt.submit(ctx, func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				t.r.resolve(zero, rt.recovered(r, debug.Stack()))
			}
		}()
		t.r.resolve(fn(), nil)
	})
	if err != nil {
		return Failed[T](&JoinError{Err: err})
	}
	return t
}
