package fs

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path by way of tmpPath: write, sync, close,
// rename, then sync the containing directory. Readers observe either the
// previous complete file or the new one, never a partial write.
//
// Parent directories of path are created if missing. The temp file is removed
// on any failure after creation.
func WriteFileAtomic(fsys FileSystem, path, tmpPath string, data []byte) error {
	if err := MkdirAllWait(fsys, filepath.Dir(path)); err != nil {
		return err
	}

	f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	return SyncDir(fsys, filepath.Dir(path))
}

// SyncDir syncs a directory to persist renames within it.
func SyncDir(fsys FileSystem, dir string) error {
	f, err := fsys.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
