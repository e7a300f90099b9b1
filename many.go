package gxhash

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// HashMany hashes every element of data and returns the values in order.
// Elements at or above the offload threshold run on the runtime; the rest
// are hashed inline on up to GOMAXPROCS goroutines. The first failure
// cancels the remaining work.
func (h *Hasher[T]) HashMany(ctx context.Context, data [][]byte) ([]T, error) {
	out := make([]T, len(data))
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, b := range data {
		total += len(b)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := h.HashAsync(gctx, b).Wait(gctx)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	err := g.Wait()
	h.logger.LogBatch(ctx, len(data), total, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
