package s3

import (
	"context"
	"errors"
	"io"
	"path"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var errUploadAborted = errors.New("upload aborted")

// Client is the subset of the Amazon S3 API the sink uses. It is
// satisfied by *s3.Client.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
}

// Sink uploads bundles to an Amazon S3 bucket under a key prefix.
type Sink struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewSink creates a sink writing to the given bucket. Uploader options
// can tune part size and concurrency of the underlying multipart upload.
func NewSink(client Client, bucket, prefix string, optFns ...func(*manager.Uploader)) *Sink {
	return &Sink{
		uploader: manager.NewUploader(client, optFns...),
		bucket:   bucket,
		prefix:   prefix,
	}
}

func (s *Sink) key(name string) string {
	return path.Join(s.prefix, name)
}

// Create implements the archive.Sink interface. Written bytes are
// streamed to S3 through a pipe; Close completes the upload and returns
// its result.
func (s *Sink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	b := &bundle{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(name)),
			Body:   pr,
		})

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
