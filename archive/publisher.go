package archive

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Publisher packs result sets and uploads the bundles to a sink.
type Publisher struct {
	sink       Sink
	codec      Codec
	controller *Controller
}

// NewPublisher creates a publisher writing to the given sink.
func NewPublisher(sink Sink, optFns ...Option) *Publisher {
	opts := applyOptions(optFns)

	return &Publisher{
		sink:       sink,
		codec:      opts.codec,
		controller: opts.controller,
	}
}

// BundleName returns the name the publisher uploads the set's bundle
// under, e.g. "sim.tar.zst".
func (p *Publisher) BundleName(set *Set) string {
	return set.Name + p.codec.Ext()
}

// Publish packs and uploads the given result sets concurrently. The
// configured controller bounds parallelism and bandwidth. The first error
// cancels the remaining uploads and is returned.
func (p *Publisher) Publish(ctx context.Context, sets ...*Set) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, set := range sets {
		g.Go(func() error {
			if err := p.controller.AcquireUpload(ctx); err != nil {
				return err
			}
			defer p.controller.ReleaseUpload()

			return p.publish(ctx, set)
		})
	}

	return g.Wait()
}

func (p *Publisher) publish(ctx context.Context, set *Set) error {
	wc, err := p.sink.Create(ctx, p.BundleName(set))
	if err != nil {
		return err
	}

	if err := Pack(p.controller.ThrottleWriter(ctx, wc), set, WithCodec(p.codec)); err != nil {
		abortBundle(wc)

		return err
	}

	return wc.Close()
}

// abortBundle discards a partially written bundle. Bundles that cannot
// abort are closed instead.
func abortBundle(wc io.WriteCloser) {
	if ab, ok := wc.(interface{ Abort() error }); ok {
		_ = ab.Abort()

		return
	}

	_ = wc.Close()
}
