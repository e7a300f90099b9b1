package gxhash

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/gxhash/executor"
	"github.com/hupe1980/gxhash/internal/buffer"
)

// Hasher computes one hash width with a fixed seed. It is immutable and
// safe for concurrent use.
type Hasher[T Digest] struct {
	seed      int64
	width     Width[T]
	rt        executor.Handle
	threshold int
	logger    *Logger
	metrics   MetricsCollector
	recording bool
}

// New32 returns a 32-bit hasher.
func New32(seed int64, optFns ...Option) (*Hasher[uint32], error) {
	return NewHasher(W32, seed, optFns...)
}

// New64 returns a 64-bit hasher.
func New64(seed int64, optFns ...Option) (*Hasher[uint64], error) {
	return NewHasher(W64, seed, optFns...)
}

// New128 returns a 128-bit hasher.
func New128(seed int64, optFns ...Option) (*Hasher[Uint128], error) {
	return NewHasher(W128, seed, optFns...)
}

// NewHasher returns a hasher for w. The zero Width yields a *TypeError.
//
// Without WithRuntime the process-wide runtime is used; its initialisation
// error, if any, is returned here.
func NewHasher[T Digest](w Width[T], seed int64, optFns ...Option) (*Hasher[T], error) {
	if w.Abstract() {
		return nil, &TypeError{Width: w.Name}
	}

	o := applyOptions(optFns)
	if o.threshold < 0 {
		return nil, fmt.Errorf("%w: offload threshold must not be negative, got %d", ErrInvalidOption, o.threshold)
	}

	rt := o.runtime
	if rt == nil {
		var err error
		if rt, err = executor.Default(); err != nil {
			return nil, err
		}
	}

	_, noop := o.metricsCollector.(NoopMetricsCollector)

	return &Hasher[T]{
		seed:      seed,
		width:     w,
		rt:        rt.Handle(),
		threshold: o.threshold,
		logger:    o.logger.WithWidth(w.Name).WithSeed(seed),
		metrics:   o.metricsCollector,
		recording: !noop,
	}, nil
}

// Seed returns the hasher's seed.
func (h *Hasher[T]) Seed() int64 { return h.seed }

// Width returns the hasher's width descriptor.
func (h *Hasher[T]) Width() Width[T] { return h.width }

// Threshold returns the offload threshold in bytes.
func (h *Hasher[T]) Threshold() int { return h.threshold }

// Hash computes the hash of data on the calling goroutine.
func (h *Hasher[T]) Hash(data []byte) T {
	if !h.recording {
		return h.width.Sum(buffer.Borrow(data).Bytes(), h.seed)
	}

	start := time.Now()
	v := h.width.Sum(buffer.Borrow(data).Bytes(), h.seed)
	h.metrics.RecordHash(h.width.Name, len(data), false, time.Since(start), nil)
	return v
}

// HashAsync computes the hash of data, offloading to the runtime when
// len(data) reaches the threshold. data may be reused once HashAsync
// returns. Failures are reported by the task as *AsyncHashError.
func (h *Hasher[T]) HashAsync(ctx context.Context, data []byte) *executor.Task[T] {
	n := len(data)
	if n < h.threshold {
		h.logger.LogHash(ctx, n)
		return executor.Ready(h.Hash(data))
	}

	wrap := func(err error) error {
		return &AsyncHashError{Width: h.width.Name, Size: n, cause: err}
	}

	owned, release, err := buffer.Borrow(data).Detach(h.rt.Controller())
	if err != nil {
		h.fail(ctx, n, err)
		return executor.Failed[T](wrap(err))
	}

	start := time.Now()
	task := executor.Spawn(ctx, h.rt, func() T {
		defer release()
		v := h.width.Sum(owned.Bytes(), h.seed)
		if h.recording {
			h.metrics.RecordHash(h.width.Name, n, true, time.Since(start), nil)
		}
		return v
	})

	// Submission failures resolve the task immediately and the job never
	// runs, so the reservation is returned here.
	select {
	case <-task.Done():
		if _, err := task.Wait(ctx); err != nil {
			release()
			h.fail(ctx, n, err)
		}
	default:
		h.logger.LogOffload(ctx, n, nil)
	}

	return task.MapErr(wrap)
}

func (h *Hasher[T]) fail(ctx context.Context, n int, err error) {
	h.logger.LogOffload(ctx, n, err)
	if h.recording {
		h.metrics.RecordHash(h.width.Name, n, true, 0, err)
	}
}
