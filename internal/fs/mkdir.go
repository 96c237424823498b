package fs

import (
	"fmt"
	"time"
)

// dirWait is how long MkdirAllWait waits for a freshly created directory to
// become visible before giving up.
const dirWait = 50 * time.Millisecond

// MkdirAllWait creates a directory and all missing parents, tolerating
// concurrent creators and slow network filesystems where a successful mkdir
// is not immediately visible to a subsequent stat. Battle-tested behavior on
// parallel filesystems: create if missing, and if the directory still does
// not appear, wait once before failing.
func MkdirAllWait(fsys FileSystem, path string) error {
	if _, err := fsys.Stat(path); err == nil {
		return nil
	}

	if err := fsys.MkdirAll(path, 0755); err != nil {
		// Another process may have won the race.
		if _, statErr := fsys.Stat(path); statErr == nil {
			return nil
		}
		return fmt.Errorf("failed to create directory %q: %w", path, err)
	}

	if _, err := fsys.Stat(path); err != nil {
		time.Sleep(dirWait)
		if _, err := fsys.Stat(path); err != nil {
			return fmt.Errorf("directory %q did not appear after creation: %w", path, err)
		}
	}

	return nil
}
