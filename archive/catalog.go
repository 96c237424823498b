package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hupe1980/xdmfgo/internal/fs"
)

// Version is one committed catalog entry.
type Version struct {
	// Series is the result series the entry belongs to.
	Series string `json:"-"`

	// Number is the version number within the series, starting at 1.
	Number uint64 `json:"number"`

	// Bundle is the bundle name the version points to.
	Bundle string `json:"bundle"`
}

// Catalog records which bundle is the current version of a result series.
type Catalog interface {
	// Latest returns the newest committed version of a series. It
	// returns ErrNotFound when the series has no versions yet.
	Latest(ctx context.Context, series string) (*Version, error)

	// Commit records a new version of the series pointing at the given
	// bundle and returns it.
	Commit(ctx context.Context, series, bundle string) (*Version, error)
}

const (
	catalogFileName      = "catalog.json"
	catalogFormatVersion = 1
)

// LocalCatalog keeps the version ledger in a JSON file, rewritten
// atomically on every commit. It serializes commits within one process;
// coordinating multiple publisher processes needs an external catalog.
type LocalCatalog struct {
	fsys fs.FileSystem
	dir  string
	mu   sync.Mutex
}

var _ Catalog = (*LocalCatalog)(nil)

// NewLocalCatalog creates a catalog stored in the given directory.
func NewLocalCatalog(dir string) *LocalCatalog {
	return &LocalCatalog{
		fsys: fs.Default,
		dir:  dir,
	}
}

type catalogFile struct {
	Version int                  `json:"version"`
	Series  map[string][]Version `json:"series"`
}

func (c *LocalCatalog) path() string {
	return filepath.Join(c.dir, catalogFileName)
}

// Latest implements the Catalog interface.
func (c *LocalCatalog) Latest(_ context.Context, series string) (*Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.load()
	if err != nil {
		return nil, err
	}

	entries := state.Series[series]
	if len(entries) == 0 {
		return nil, fmt.Errorf("series %q: %w", series, ErrNotFound)
	}

	v := entries[len(entries)-1]
	v.Series = series

	return &v, nil
}

// Commit implements the Catalog interface.
func (c *LocalCatalog) Commit(_ context.Context, series, bundle string) (*Version, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.load()
	if err != nil {
		return nil, err
	}

	var latest uint64

	entries := state.Series[series]
	if len(entries) > 0 {
		latest = entries[len(entries)-1].Number
	}

	next := Version{
		Number: latest + 1,
		Bundle: bundle,
	}

	state.Series[series] = append(entries, next)

	if err := c.save(state); err != nil {
		return nil, err
	}

	next.Series = series

	return &next, nil
}

// load reads the ledger, returning an empty one when none exists yet.
func (c *LocalCatalog) load() (*catalogFile, error) {
	f, err := c.fsys.OpenFile(c.path(), os.O_RDONLY, 0)
	if os.IsNotExist(err) {
		return &catalogFile{
			Version: catalogFormatVersion,
			Series:  make(map[string][]Version),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var state catalogFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if state.Series == nil {
		state.Series = make(map[string][]Version)
	}

	return &state, nil
}

func (c *LocalCatalog) save(state *catalogFile) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := fs.MkdirAllWait(c.fsys, c.dir); err != nil {
		return err
	}

	if err := fs.WriteFileAtomic(c.fsys, c.path(), c.path()+".tmp", data); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	return nil
}
