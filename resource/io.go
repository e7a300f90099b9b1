package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with the controller's IO limit.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller

	waits int
}

// NewRateLimitedReader creates a new RateLimitedReader. A nil controller
// passes reads through unchanged.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{
		ctx: ctx,
		r:   r,
		rc:  rc,
	}
}

// Waits returns how many reads had to wait for the IO limit.
func (r *RateLimitedReader) Waits() int { return r.waits }

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if burst := r.rc.ioBurst(); burst > 0 && len(p) > burst {
		p = p[:burst]
	}
	if !r.rc.TryAcquireIO(len(p)) {
		r.waits++
		if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
			return 0, err
		}
	}
	return r.r.Read(p)
}
