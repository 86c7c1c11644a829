package s3fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
)

// LoadMetadata reads the metadata sidecar of (bucket, key). A missing
// sidecar reports found=false and no error.
func (fsys *FileSystem) LoadMetadata(ctx context.Context, bucket, key string) (meta data.Metadata, found bool, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpLoadMetadata, start, 0, err) }()

	path, err := fsys.MetadataPath(bucket, key)
	if err != nil {
		return nil, false, err
	}

	found, err = fsys.loadSidecar(ctx, path, &meta)
	if err != nil || !found {
		return nil, false, err
	}

	return meta, true, nil
}

// SaveMetadata replaces the metadata sidecar of (bucket, key).
func (fsys *FileSystem) SaveMetadata(ctx context.Context, bucket, key string, meta data.Metadata) (err error) {
	start := time.Now()
	defer func() { fsys.observe(OpSaveMetadata, start, 0, err) }()

	path, err := fsys.MetadataPath(bucket, key)
	if err != nil {
		return err
	}

	return fsys.saveSidecar(ctx, path, meta)
}

// LoadInternalInfo reads the internal-info sidecar of (bucket, key). A
// missing sidecar reports found=false and no error.
func (fsys *FileSystem) LoadInternalInfo(ctx context.Context, bucket, key string) (info data.InternalInfo, found bool, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpLoadInternalInfo, start, 0, err) }()

	path, err := fsys.InternalInfoPath(bucket, key)
	if err != nil {
		return nil, false, err
	}

	found, err = fsys.loadSidecar(ctx, path, &info)
	if err != nil || !found {
		return nil, false, err
	}

	return info, true, nil
}

// SaveInternalInfo replaces the internal-info sidecar of (bucket, key).
func (fsys *FileSystem) SaveInternalInfo(ctx context.Context, bucket, key string, info data.InternalInfo) (err error) {
	start := time.Now()
	defer func() { fsys.observe(OpSaveInternalInfo, start, 0, err) }()

	path, err := fsys.InternalInfoPath(bucket, key)
	if err != nil {
		return err
	}

	return fsys.saveSidecar(ctx, path, info)
}

// DeleteSidecars removes both sidecars of (bucket, key). It is meant for the
// delete-object path; sidecars that do not exist are not an error.
func (fsys *FileSystem) DeleteSidecars(ctx context.Context, bucket, key string) (err error) {
	start := time.Now()
	defer func() { fsys.observe(OpDeleteSidecars, start, 0, err) }()

	if err = fsys.begin(ctx); err != nil {
		return err
	}

	var errs []error
	for _, kind := range []data.SidecarKind{data.SidecarMetadata, data.SidecarInternal} {
		path, err := fsys.sidecarPath(bucket, key, kind)
		if err != nil {
			return err
		}

		if err := removeIfExists(path); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// loadSidecar decodes the JSON file at path into v.
func (fsys *FileSystem) loadSidecar(ctx context.Context, path string, v any) (bool, error) {
	if err := fsys.begin(ctx); err != nil {
		return false, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fserrors.IO(err, "read", path)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return false, fserrors.Deserialize(err, path)
	}

	return true, nil
}

// saveSidecar encodes v and replaces the file at path through a temp file
// and rename, the same way object content is committed.
func (fsys *FileSystem) saveSidecar(ctx context.Context, path string, v any) error {
	if err := fsys.begin(ctx); err != nil {
		return err
	}

	content, err := json.Marshal(v)
	if err != nil {
		return fserrors.Deserialize(err, path)
	}

	w, err := fsys.prepareWriteTo(path)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := w.Write(content); err != nil {
		return err
	}

	_, err = w.Commit(ctx)
	return err
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fserrors.IO(err, "remove", path)
	}

	return nil
}
