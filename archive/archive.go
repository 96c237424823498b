package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	internalfs "github.com/hupe1980/xdmfgo/internal/fs"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = os.ErrNotExist

// Set is a single result set: the document plus its heavy-data files.
type Set struct {
	// Dir is the directory holding the result set.
	Dir string

	// Name is the document stem, e.g. "sim" for sim.xdmf2. Bundle names
	// are derived from it.
	Name string

	// Files are the paths of the set's files relative to Dir, document
	// first. Heavy-data files inside a sidecar directory keep their
	// directory prefix so that an unpacked bundle reproduces the layout
	// the document references.
	Files []string
}

// ResultSet discovers the result set belonging to the given document path.
//
// The heavy-data sidecar is located by the writer's naming rules: a .txt
// directory for ascii storage, a .h5 file or directory for hdf5 storage.
// Inline documents have no sidecar. The document itself must exist.
func ResultSet(docPath string) (*Set, error) {
	info, err := os.Stat(docPath)
	if err != nil {
		return nil, fmt.Errorf("result set document %q: %w", docPath, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("result set document %q: is a directory", docPath)
	}

	base := filepath.Base(docPath)

	set := &Set{
		Dir:   filepath.Dir(docPath),
		Name:  strings.TrimSuffix(base, filepath.Ext(base)),
		Files: []string{base},
	}

	for _, ext := range []string{"txt", "h5"} {
		files, err := sidecarFiles(internalfs.ReplaceExt(docPath, ext))
		if err != nil {
			return nil, err
		}

		set.Files = append(set.Files, files...)
	}

	return set, nil
}

// sidecarFiles lists the files of one heavy-data sidecar, relative to the
// sidecar's parent directory. A missing sidecar yields no files.
func sidecarFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("result set sidecar %q: %w", path, err)
	}

	base := filepath.Base(path)

	if !info.IsDir() {
		return []string{base}, nil
	}

	var files []string

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}

		files = append(files, filepath.Join(base, rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("result set sidecar %q: %w", path, err)
	}

	return files, nil
}
