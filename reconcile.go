package s3fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
	"github.com/mwantia/s3fs/log"
)

// cleanOrphanTempFiles removes temp files in root that no live writer owns.
// It must only run before the FileSystem hands out writers.
func cleanOrphanTempFiles(root string, logger *log.Logger) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fserrors.Construction(err, root)
	}

	removed := 0
	for _, entry := range entries {
		// Buckets may legally carry a temp-like name; they are directories.
		if entry.IsDir() || !data.IsTempFileName(entry.Name()) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fserrors.Construction(err, root)
		}

		logger.Debug("Reconcile: removed orphaned temp file '%s'", entry.Name())
		removed++
	}

	return removed, nil
}
