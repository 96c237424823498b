package archive

import (
	"context"
	"io"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config bounds the resources the publisher may consume. Zero values
// select the defaults documented per field.
type Config struct {
	// MaxConcurrentUploads caps the number of bundles uploaded in
	// parallel. Zero or negative means 1.
	MaxConcurrentUploads int

	// UploadBytesPerSec throttles the aggregate upload bandwidth in bytes
	// per second. Zero or negative means unlimited.
	UploadBytesPerSec int64
}

// Controller enforces upload concurrency and bandwidth limits. A nil
// Controller enforces nothing, so callers never need to guard against it.
type Controller struct {
	uploads *semaphore.Weighted
	limiter *rate.Limiter
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	uploads := cfg.MaxConcurrentUploads
	if uploads <= 0 {
		uploads = 1
	}

	c := &Controller{
		uploads: semaphore.NewWeighted(int64(uploads)),
	}

	if cfg.UploadBytesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.UploadBytesPerSec), int(cfg.UploadBytesPerSec))
	}

	return c
}

// AcquireUpload blocks until an upload slot is available or ctx is done.
func (c *Controller) AcquireUpload(ctx context.Context) error {
	if c == nil || c.uploads == nil {
		return nil
	}

	return c.uploads.Acquire(ctx, 1)
}

// ReleaseUpload returns an upload slot taken with AcquireUpload.
func (c *Controller) ReleaseUpload() {
	if c == nil || c.uploads == nil {
		return
	}

	c.uploads.Release(1)
}

// Throttle blocks until n bytes fit into the bandwidth budget or ctx is
// done. Requests larger than the burst size are split.
func (c *Controller) Throttle(ctx context.Context, n int) error {
	if c == nil || c.limiter == nil {
		return nil
	}

	burst := c.limiter.Burst()

	for n > 0 {
		take := n
		if take > burst {
			take = burst
		}

		if err := c.limiter.WaitN(ctx, take); err != nil {
			return err
		}

		n -= take
	}

	return nil
}

// ThrottleWriter wraps w so that every write first passes Throttle. If no
// bandwidth limit is configured, w is returned unchanged.
func (c *Controller) ThrottleWriter(ctx context.Context, w io.Writer) io.Writer {
	if c == nil || c.limiter == nil {
		return w
	}

	return &throttledWriter{
		ctx:        ctx,
		controller: c,
		w:          w,
	}
}

type throttledWriter struct {
	ctx        context.Context
	controller *Controller
	w          io.Writer
}

func (t *throttledWriter) Write(p []byte) (int, error) {
	if err := t.controller.Throttle(t.ctx, len(p)); err != nil {
		return 0, err
	}

	return t.w.Write(p)
}
