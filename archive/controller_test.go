package archive

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerNil(t *testing.T) {
	var c *Controller

	ctx := context.Background()

	require.NoError(t, c.AcquireUpload(ctx))
	c.ReleaseUpload()
	require.NoError(t, c.Throttle(ctx, 1<<30))

	var buf bytes.Buffer

	assert.Same(t, &buf, c.ThrottleWriter(ctx, &buf))
}

func TestControllerDefaults(t *testing.T) {
	c := NewController(Config{})
	ctx := context.Background()

	// One upload slot by default.
	require.NoError(t, c.AcquireUpload(ctx))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, c.AcquireUpload(canceled))

	c.ReleaseUpload()

	// No bandwidth limit by default.
	require.NoError(t, c.Throttle(ctx, 1<<30))

	var buf bytes.Buffer

	assert.Same(t, &buf, c.ThrottleWriter(ctx, &buf))
}

func TestControllerUploadSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentUploads: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireUpload(ctx))
	require.NoError(t, c.AcquireUpload(ctx))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, c.AcquireUpload(canceled))

	c.ReleaseUpload()
	require.NoError(t, c.AcquireUpload(ctx))
}

func TestControllerThrottle(t *testing.T) {
	c := NewController(Config{UploadBytesPerSec: 1 << 20})

	// Within the burst, Throttle returns without blocking.
	require.NoError(t, c.Throttle(context.Background(), 64))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, c.Throttle(canceled, 64), context.Canceled)
}

func TestControllerThrottleSplitsLargeRequests(t *testing.T) {
	c := NewController(Config{UploadBytesPerSec: 1 << 16})

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	// Larger than the burst: a split request fails with the context
	// error instead of the limiter's burst error.
	require.ErrorIs(t, c.Throttle(canceled, 1<<20), context.Canceled)
}

func TestThrottleWriterWritesThrough(t *testing.T) {
	c := NewController(Config{UploadBytesPerSec: 1 << 20})

	var buf bytes.Buffer

	w := c.ThrottleWriter(context.Background(), &buf)

	n, err := w.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "payload", buf.String())
}
