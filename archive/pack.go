package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Option configures packing and publishing.
type Option func(*options)

type options struct {
	codec      Codec
	controller *Controller
}

// WithCodec sets the bundle compression codec. The default is CodecZstd.
func WithCodec(codec Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithController sets the controller limiting publisher concurrency and
// upload bandwidth. Pack and Unpack ignore it.
func WithController(controller *Controller) Option {
	return func(o *options) {
		o.controller = controller
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		codec: CodecZstd,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}

// Pack streams the set's files as a tar bundle into w, compressed with the
// configured codec. File paths inside the bundle are relative to the set's
// directory, so unpacking reproduces a movable result set.
func Pack(w io.Writer, set *Set, optFns ...Option) error {
	opts := applyOptions(optFns)

	cw, err := opts.codec.compress(w)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(cw)

	for _, name := range set.Files {
		if err := packFile(tw, set.Dir, name); err != nil {
			_ = tw.Close()
			_ = cw.Close()

			return err
		}
	}

	if err := tw.Close(); err != nil {
		_ = cw.Close()

		return err
	}

	return cw.Close()
}

func packFile(tw *tar.Writer, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("pack %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("pack %q: %w", name, err)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("pack %q: %w", name, err)
	}

	hdr.Name = filepath.ToSlash(name)

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("pack %q: %w", name, err)
	}

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("pack %q: %w", name, err)
	}

	return nil
}

// Unpack extracts a bundle produced by Pack into dir, creating parent
// directories as needed. The codec must match the one the bundle was
// packed with.
func Unpack(r io.Reader, dir string, optFns ...Option) error {
	opts := applyOptions(optFns)

	cr, err := opts.codec.decompress(r)
	if err != nil {
		return err
	}
	defer func() { _ = cr.Close() }()

	tr := tar.NewReader(cr)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.FromSlash(hdr.Name)

		// Reject absolute paths and entries escaping dir.
		if !filepath.IsLocal(name) {
			return fmt.Errorf("unpack %q: path escapes destination", hdr.Name)
		}

		if err := unpackFile(tr, filepath.Join(dir, name), hdr); err != nil {
			return err
		}
	}
}

func unpackFile(tr *tar.Reader, target string, hdr *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("unpack %q: %w", hdr.Name, err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
	if err != nil {
		return fmt.Errorf("unpack %q: %w", hdr.Name, err)
	}

	if _, err := io.Copy(f, tr); err != nil {
		_ = f.Close()

		return fmt.Errorf("unpack %q: %w", hdr.Name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("unpack %q: %w", hdr.Name, err)
	}

	return nil
}
