package s3fs

import (
	"github.com/minio/minio-go/v7/pkg/s3utils"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
)

// BucketPath resolves the directory of bucket beneath the root.
func (fsys *FileSystem) BucketPath(bucket string) (string, error) {
	if err := fsys.validateBucket(bucket); err != nil {
		return "", err
	}

	return fsys.bucketPath(bucket)
}

// ObjectPath resolves the content file of (bucket, key). Keys containing
// separators map to nested directories; they can never leave their bucket.
func (fsys *FileSystem) ObjectPath(bucket, key string) (string, error) {
	if err := fsys.validateNames(bucket, key); err != nil {
		return "", err
	}

	return fsys.objectPath(bucket, key)
}

// MetadataPath resolves the metadata sidecar of (bucket, key).
func (fsys *FileSystem) MetadataPath(bucket, key string) (string, error) {
	return fsys.sidecarPath(bucket, key, data.SidecarMetadata)
}

// InternalInfoPath resolves the internal-info sidecar of (bucket, key).
func (fsys *FileSystem) InternalInfoPath(bucket, key string) (string, error) {
	return fsys.sidecarPath(bucket, key, data.SidecarInternal)
}

func (fsys *FileSystem) sidecarPath(bucket, key string, kind data.SidecarKind) (string, error) {
	// Sidecars only exist for names that address an object.
	if _, err := fsys.ObjectPath(bucket, key); err != nil {
		return "", err
	}

	return data.ResolvePath(fsys.root, data.SidecarName(bucket, key, kind))
}

func (fsys *FileSystem) bucketPath(bucket string) (string, error) {
	path, err := data.ResolvePath(fsys.root, bucket)
	if err != nil {
		return "", err
	}

	// Names like "", "." or ".." collapse onto the root itself.
	if path == fsys.root {
		return "", fserrors.InvalidName(nil, "bucket", bucket)
	}

	return path, nil
}

func (fsys *FileSystem) objectPath(bucket, key string) (string, error) {
	bucketPath, err := fsys.bucketPath(bucket)
	if err != nil {
		return "", err
	}

	path, err := data.ResolvePath(bucketPath, key)
	if err != nil {
		return "", err
	}

	if path == bucketPath {
		return "", fserrors.InvalidName(nil, "key", key)
	}

	return path, nil
}

func (fsys *FileSystem) validateBucket(bucket string) error {
	if !fsys.options.StrictNames {
		return nil
	}

	if err := s3utils.CheckValidBucketNameStrict(bucket); err != nil {
		return fserrors.InvalidName(err, "bucket", bucket)
	}

	return nil
}

func (fsys *FileSystem) validateNames(bucket, key string) error {
	if err := fsys.validateBucket(bucket); err != nil {
		return err
	}

	if !fsys.options.StrictNames {
		return nil
	}

	if err := s3utils.CheckValidObjectName(key); err != nil {
		return fserrors.InvalidName(err, "key", key)
	}

	return nil
}
