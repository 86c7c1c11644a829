package s3fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
)

// PruneSidecars removes metadata and internal-info sidecars whose object no
// longer exists and returns how many were removed. It should not run
// concurrently with writers, since a sidecar may be saved before its content
// is committed.
func (fsys *FileSystem) PruneSidecars(ctx context.Context) (removed int, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpPruneSidecars, start, int64(removed), err) }()

	if err = fsys.begin(ctx); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(fsys.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fserrors.IO(err, "scan", fsys.root)
	}

	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return removed, err
		}

		if entry.IsDir() {
			continue
		}

		bucket, key, _, ok := data.ParseSidecarName(entry.Name())
		if !ok {
			continue
		}

		orphaned, err := fsys.sidecarOrphaned(bucket, key)
		if err != nil {
			return removed, err
		}
		if !orphaned {
			continue
		}

		if err := removeIfExists(filepath.Join(fsys.root, entry.Name())); err != nil {
			return removed, err
		}

		fsys.log.Debug("Prune: removed sidecar '%s' of missing object '%s/%s'", entry.Name(), bucket, key)
		removed++
	}

	return removed, nil
}

// sidecarOrphaned reports whether (bucket, key) has no content on disk.
// Names that cannot resolve to an object path can never have content.
func (fsys *FileSystem) sidecarOrphaned(bucket, key string) (bool, error) {
	path, err := fsys.objectPath(bucket, key)
	if err != nil {
		return true, nil
	}

	if _, err := os.Stat(path); err != nil {
		// ENOTDIR: a parent segment of the key is itself an object.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return true, nil
		}
		return false, fserrors.IO(err, "stat", path)
	}

	return false, nil
}
