package archive

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression applied to packed bundles.
type Codec uint8

const (
	// CodecNone stores bundles uncompressed.
	CodecNone Codec = iota

	// CodecLZ4 trades ratio for speed.
	CodecLZ4

	// CodecZstd is the default codec.
	CodecZstd
)

// ParseCodec parses a codec name. It accepts "none", "lz4" and "zstd" in
// any case.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return CodecNone, fmt.Errorf("unknown codec: %q", s)
	}
}

// String implements the fmt.Stringer interface.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Ext returns the bundle file extension for the codec, e.g. ".tar.zst".
func (c Codec) Ext() string {
	switch c {
	case CodecLZ4:
		return ".tar.lz4"
	case CodecZstd:
		return ".tar.zst"
	default:
		return ".tar"
	}
}

// compress wraps w with the codec's stream encoder. The returned writer
// must be closed to flush the stream; closing it does not close w.
func (c Codec) compress(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CodecNone:
		return &nopWriteCloser{w: w}, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecZstd:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		enc.Reset(w)

		return &zstdWriteCloser{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %d", c)
	}
}

// decompress wraps r with the codec's stream decoder. The returned reader
// must be closed; closing it does not close r.
func (c Codec) decompress(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CodecNone:
		return io.NopCloser(r), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CodecZstd:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			zstdDecoderPool.Put(dec)

			return nil, err
		}

		return &zstdReadCloser{dec: dec}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %d", c)
	}
}

// Encoders and decoders are pooled because they allocate large internal
// buffers. Pooled instances are rebound with Reset before each use.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
			return enc
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, _ := zstd.NewReader(nil)
			return dec
		},
	}
)

type zstdWriteCloser struct {
	enc *zstd.Encoder
}

func (z *zstdWriteCloser) Write(p []byte) (int, error) {
	return z.enc.Write(p)
}

// Close flushes the stream and returns the encoder to the pool.
func (z *zstdWriteCloser) Close() error {
	err := z.enc.Close()

	zstdEncoderPool.Put(z.enc)
	z.enc = nil

	return err
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

// Close returns the decoder to the pool. The decoder itself stays alive
// for reuse.
func (z *zstdReadCloser) Close() error {
	zstdDecoderPool.Put(z.dec)
	z.dec = nil

	return nil
}

type nopWriteCloser struct {
	w io.Writer
}

func (n *nopWriteCloser) Write(p []byte) (int, error) {
	return n.w.Write(p)
}

func (n *nopWriteCloser) Close() error {
	return nil
}
