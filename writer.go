package s3fs

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
)

const writeBufferSize = 64 * 1024

// FileWriter is a write-once transaction on one object. Content goes to a
// private temp file below the root and only appears under its final name
// when Commit renames it there. A writer that is closed, or simply dropped,
// without a successful Commit removes its temp file.
//
//	w, err := fsys.PrepareWrite(ctx, bucket, key)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if _, err := io.Copy(w, body); err != nil {
//		return err
//	}
//	_, err = w.Commit(ctx)
type FileWriter struct {
	mu sync.Mutex

	fsys      *FileSystem
	id        uint64
	tmpPath   string
	finalPath string

	file    *os.File
	writer  *bufio.Writer
	written int64

	done      bool
	committed bool
	cleanup   runtime.Cleanup
}

// PrepareWrite opens a writer whose Commit replaces the content of (bucket, key).
func (fsys *FileSystem) PrepareWrite(ctx context.Context, bucket, key string) (w *FileWriter, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpPrepareWrite, start, 0, err) }()

	if err = fsys.begin(ctx); err != nil {
		return nil, err
	}

	finalPath, err := fsys.ObjectPath(bucket, key)
	if err != nil {
		return nil, err
	}

	return fsys.prepareWriteTo(finalPath)
}

func (fsys *FileSystem) prepareWriteTo(finalPath string) (*FileWriter, error) {
	// Add returns the new value; the name uses the value before the increment.
	id := fsys.tmpCounter.Add(1) - 1

	tmpPath, err := data.ResolvePath(fsys.root, data.TempFileName(id))
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fsys.options.FileMode)
	if err != nil {
		return nil, fserrors.IO(err, "create", tmpPath)
	}

	if err := fsys.register(id, tmpPath); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return nil, err
	}

	w := &FileWriter{
		fsys:      fsys,
		id:        id,
		tmpPath:   tmpPath,
		finalPath: finalPath,
		file:      file,
		writer:    bufio.NewWriterSize(file, writeBufferSize),
	}

	// Safety net for writers that are dropped without Close; the os.File
	// finalizer closes the descriptor on its own.
	w.cleanup = runtime.AddCleanup(w, func(o orphan) { o.release() }, orphan{fsys: fsys, id: id, tmpPath: tmpPath})

	fsys.log.Debug("PrepareWrite: opened '%s' for '%s'", tmpPath, finalPath)

	return w, nil
}

// TmpPath returns the path of the temp file backing this writer.
func (w *FileWriter) TmpPath() string {
	return w.tmpPath
}

// FinalPath returns the path the content is committed to.
func (w *FileWriter) FinalPath() string {
	return w.finalPath
}

// Written returns the number of bytes accepted so far.
func (w *FileWriter) Written() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.written
}

// Write buffers p for the temp file. It implements io.Writer.
func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return 0, fserrors.Closed("file writer")
	}
	if w.fsys.closed.Load() {
		return 0, fserrors.Closed("filesystem")
	}

	n, err := w.writer.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, fserrors.IO(err, "write", w.tmpPath)
	}

	return n, nil
}

// Commit makes the written content visible at the final path with a single
// rename, creating missing parent directories first. Any existing object is
// replaced without a window in which it is absent or partial. The writer is
// consumed: on failure the temp file is removed, and a second Commit
// returns ErrClosed.
func (w *FileWriter) Commit(ctx context.Context) (path string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	defer func() { w.fsys.observe(OpCommit, start, w.written, err) }()

	if w.done {
		return "", fserrors.Closed("file writer")
	}
	defer func() {
		if err != nil {
			w.abandon()
		}
	}()

	if err = w.fsys.begin(ctx); err != nil {
		return "", err
	}

	durable := w.fsys.options.Sync

	if err = w.writer.Flush(); err != nil {
		return "", fserrors.IO(err, "flush", w.tmpPath)
	}
	if durable {
		if err = w.file.Sync(); err != nil {
			return "", fserrors.IO(err, "sync", w.tmpPath)
		}
	}

	err = w.file.Close()
	w.file = nil
	if err != nil {
		return "", fserrors.IO(err, "close", w.tmpPath)
	}

	dir := filepath.Dir(w.finalPath)
	if err = os.MkdirAll(dir, w.fsys.options.DirMode); err != nil {
		return "", fserrors.IO(err, "mkdir", dir)
	}

	if err = os.Rename(w.tmpPath, w.finalPath); err != nil {
		return "", fserrors.IO(err, "rename", w.finalPath)
	}

	w.done = true
	w.committed = true
	w.cleanup.Stop()
	w.fsys.unregister(w.id)

	// The object is already visible; a failed directory sync only weakens durability.
	if durable {
		if serr := syncDir(dir); serr != nil {
			w.fsys.log.Warn("Commit: unable to sync directory '%s': %v", dir, serr)
		}
	}

	w.fsys.log.Debug("Commit: renamed '%s' to '%s' (%d bytes)", w.tmpPath, w.finalPath, w.written)

	return w.finalPath, nil
}

// Close abandons the writer unless it was committed. Removal failures are
// logged and swallowed; Close is idempotent and always returns nil.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.abandon()
	return nil
}

func (w *FileWriter) abandon() {
	if w.done {
		return
	}
	w.done = true
	w.cleanup.Stop()

	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	orphan{fsys: w.fsys, id: w.id, tmpPath: w.tmpPath}.release()
}

// orphan holds what is needed to release a temp file without referencing its writer.
type orphan struct {
	fsys    *FileSystem
	id      uint64
	tmpPath string
}

func (o orphan) release() {
	if err := os.Remove(o.tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		o.fsys.log.Warn("Abandon: unable to remove temp file '%s': %v", o.tmpPath, err)
	} else {
		o.fsys.log.Debug("Abandon: removed temp file '%s'", o.tmpPath)
	}

	o.fsys.unregister(o.id)
}
