// Package minio provides an archive sink for MinIO and other S3
// compatible object stores.
package minio

import (
	"context"
	"errors"
	"io"
	"path"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
)

var errUploadAborted = errors.New("upload aborted")

// Sink uploads bundles to a MinIO bucket under a key prefix.
type Sink struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewSink creates a sink writing to the given bucket.
func NewSink(client *minio.Client, bucket, prefix string) *Sink {
	return &Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *Sink) key(name string) string {
	return path.Join(s.prefix, name)
}

// Create implements the archive.Sink interface. Written bytes are
// streamed to the server through a pipe; Close completes the upload and
// returns its result.
func (s *Sink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	b := &bundle{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, s.key(name), pr, -1, minio.PutObjectOptions{})

		_ = pr.CloseWithError(err)
		b.done <- err
	}()

	return b, nil
}

type bundle struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (b *bundle) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

// Close finishes the upload and waits for its result.
func (b *bundle) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = b.pw.Close()

	return <-b.done
}

// Abort cancels the upload and waits for it to stop. The object is not
// created.
func (b *bundle) Abort() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = b.pw.CloseWithError(errUploadAborted)
	<-b.done

	return nil
}
