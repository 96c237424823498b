package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/xdmfgo/internal/fs"
)

// Sink is a destination for packed bundles.
type Sink interface {
	// Create opens a named bundle for writing. The bundle becomes visible
	// at the destination only after a successful Close. A bundle may
	// additionally implement Abort() error to discard written data.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// LocalSink writes bundles into a local directory. Bundles are staged as
// temporary files and renamed into place on Close, so readers of the
// directory never observe partial bundles.
type LocalSink struct {
	root string
	fsys fs.FileSystem
}

// NewLocalSink creates a sink rooted at the given directory. The
// directory is created on first use.
func NewLocalSink(root string) *LocalSink {
	return &LocalSink{
		root: root,
		fsys: fs.Default,
	}
}

// Create implements the Sink interface.
func (s *LocalSink) Create(_ context.Context, name string) (io.WriteCloser, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid bundle name: %q", name)
	}

	if err := fs.MkdirAllWait(s.fsys, s.root); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, name)
	tmpPath := path + ".tmp"

	f, err := s.fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	return &localBundle{
		f:       f,
		fsys:    s.fsys,
		path:    path,
		tmpPath: tmpPath,
	}, nil
}

type localBundle struct {
	f       fs.File
	fsys    fs.FileSystem
	path    string
	tmpPath string
	done    bool
}

func (b *localBundle) Write(p []byte) (int, error) {
	if b.done {
		return 0, fmt.Errorf("bundle %q: already closed", b.path)
	}

	return b.f.Write(p)
}

// Close commits the bundle by syncing the staged file and renaming it to
// its final name.
func (b *localBundle) Close() error {
	if b.done {
		return nil
	}

	b.done = true

	if err := b.f.Sync(); err != nil {
		_ = b.f.Close()
		_ = b.fsys.Remove(b.tmpPath)

		return err
	}

	if err := b.f.Close(); err != nil {
		_ = b.fsys.Remove(b.tmpPath)

		return err
	}

	return b.fsys.Rename(b.tmpPath, b.path)
}

// Abort discards the staged file without committing the bundle.
func (b *localBundle) Abort() error {
	if b.done {
		return nil
	}

	b.done = true

	_ = b.f.Close()

	return b.fsys.Remove(b.tmpPath)
}
