// Package s3fs maps the bucket/key namespace of an S3-compatible protocol
// layer onto a single local directory tree.
//
// Object content lives at <root>/<bucket>/<key>. Per-object metadata,
// internal bookkeeping and multipart upload sessions are kept as JSON
// sidecar files directly below the root. Content is written through a
// FileWriter that only becomes visible under its final name by an atomic
// rename; temp files orphaned by a crashed process are removed by New.
package s3fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/tidwall/btree"

	fserrors "github.com/mwantia/s3fs/data/errors"
	"github.com/mwantia/s3fs/log"
)

// FileSystem is the storage backend for one virtual root. It is safe for
// concurrent use. There is no locking around individual objects: concurrent
// writers to the same key race and the last rename wins.
type FileSystem struct {
	root    string
	options *Options
	log     *log.Logger

	// Monotonic source of temp file names; only unique within this process.
	tmpCounter atomic.Uint64
	orphans    int
	closed     atomic.Bool

	mu      sync.Mutex
	writers *btree.Map[uint64, string]
}

// New opens the virtual root and removes temp files left behind by a
// previous process before returning. All failures wrap ErrConstruction.
func New(root string, opts ...Option) (*FileSystem, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, fserrors.Construction(err, root)
		}
	}

	abs, err := canonicalRoot(root, options)
	if err != nil {
		return nil, err
	}

	logger := options.logger()

	orphans, err := cleanOrphanTempFiles(abs, logger.Named("reconcile"))
	if err != nil {
		return nil, err
	}
	options.Observer.ObserveOrphans(orphans)

	logger.Info("Opened filesystem at '%s' (%d orphaned temp files removed)", abs, orphans)

	return &FileSystem{
		root:    abs,
		options: options,
		log:     logger,
		orphans: orphans,
		writers: btree.NewMap[uint64, string](0),
	}, nil
}

// canonicalRoot makes root absolute and resolves symlinks. A root that does
// not exist (and may not be created) keeps its lexical absolute form.
func canonicalRoot(root string, options *Options) (string, error) {
	if root == "" {
		return "", fserrors.Construction(fmt.Errorf("empty root path"), root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fserrors.Construction(err, root)
	}

	if options.CreateRoot {
		if err := os.MkdirAll(abs, options.DirMode); err != nil {
			return "", fserrors.Construction(err, root)
		}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}
		return "", fserrors.Construction(err, root)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fserrors.Construction(err, root)
	}
	if !info.IsDir() {
		return "", fserrors.Construction(fmt.Errorf("not a directory"), root)
	}

	return resolved, nil
}

// Root returns the canonical virtual root.
func (fsys *FileSystem) Root() string {
	return fsys.root
}

// RemovedOrphans returns the number of temp files removed during New.
func (fsys *FileSystem) RemovedOrphans() int {
	return fsys.orphans
}

// Close abandons every writer that is still open and rejects further
// operations. Open writers fail with ErrClosed on their next call.
func (fsys *FileSystem) Close() error {
	if !fsys.closed.CompareAndSwap(false, true) {
		return fserrors.Closed("filesystem")
	}

	fsys.mu.Lock()
	pending := fsys.writers.Values()
	fsys.writers = btree.NewMap[uint64, string](0)
	fsys.mu.Unlock()

	for _, tmpPath := range pending {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fsys.log.Warn("Unable to remove temp file '%s' on close: %v", tmpPath, err)
		}
	}
	fsys.options.Observer.ObserveInFlight(0)

	if len(pending) > 0 {
		fsys.log.Info("Closed filesystem at '%s' (%d in-flight writes abandoned)", fsys.root, len(pending))
	}

	return nil
}

// begin guards the start of every operation.
func (fsys *FileSystem) begin(ctx context.Context) error {
	if fsys.closed.Load() {
		return fserrors.Closed("filesystem")
	}

	return ctx.Err()
}
