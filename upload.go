package s3fs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwantia/s3fs/data"
	fserrors "github.com/mwantia/s3fs/data/errors"
)

// ParseUploadID parses an upload id received from a client.
func ParseUploadID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fserrors.InvalidName(err, "upload id", s)
	}

	return id, nil
}

func (fsys *FileSystem) uploadPath(id uuid.UUID) (string, error) {
	return data.ResolvePath(fsys.root, data.UploadSidecarName(id))
}

// CreateUploadID starts a multipart upload session owned by cred (nil for
// anonymous callers) and returns its random id.
func (fsys *FileSystem) CreateUploadID(ctx context.Context, cred *data.Credentials) (id uuid.UUID, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpCreateUpload, start, 0, err) }()

	if err = fsys.begin(ctx); err != nil {
		return uuid.Nil, err
	}

	id, err = uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fserrors.IO(err, "generate", "upload id")
	}

	path, err := fsys.uploadPath(id)
	if err != nil {
		return uuid.Nil, err
	}

	if err = fsys.saveSidecar(ctx, path, data.AccessKey(cred)); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// VerifyUploadID reports whether the session id exists and was created by
// the same identity as cred. It never modifies the session.
func (fsys *FileSystem) VerifyUploadID(ctx context.Context, cred *data.Credentials, id uuid.UUID) (ok bool, err error) {
	start := time.Now()
	defer func() { fsys.observe(OpVerifyUpload, start, 0, err) }()

	path, err := fsys.uploadPath(id)
	if err != nil {
		return false, err
	}

	var owner *string
	found, err := fsys.loadSidecar(ctx, path, &owner)
	if err != nil || !found {
		return false, err
	}

	return data.SameIdentity(owner, data.AccessKey(cred)), nil
}

// DeleteUploadID ends the session id. Deleting an unknown session is a no-op.
func (fsys *FileSystem) DeleteUploadID(ctx context.Context, id uuid.UUID) (err error) {
	start := time.Now()
	defer func() { fsys.observe(OpDeleteUpload, start, 0, err) }()

	if err = fsys.begin(ctx); err != nil {
		return err
	}

	path, err := fsys.uploadPath(id)
	if err != nil {
		return err
	}

	return removeIfExists(path)
}
