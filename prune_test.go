package s3fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/s3fs/data"
)

// TestPruneSidecars verifies that only sidecars of missing objects are removed.
func TestPruneSidecars(t *testing.T) {
	ctx := t.Context()
	fsys := newTestFileSystem(t)

	writeObject(t, fsys, "bucket", "live", []byte("content"))
	writeObject(t, fsys, "bucket", "file", []byte("content"))

	require.NoError(t, fsys.SaveMetadata(ctx, "bucket", "live", data.Metadata{"k": "v"}))
	require.NoError(t, fsys.SaveInternalInfo(ctx, "bucket", "live", data.InternalInfo{"k": "v"}))
	require.NoError(t, fsys.SaveMetadata(ctx, "bucket", "gone", data.Metadata{"k": "v"}))
	require.NoError(t, fsys.SaveInternalInfo(ctx, "bucket", "gone", data.InternalInfo{"k": "v"}))
	// A parent segment of this key is a regular file.
	require.NoError(t, fsys.SaveMetadata(ctx, "bucket", "file/child", data.Metadata{"k": "v"}))

	upload, err := fsys.CreateUploadID(ctx, nil)
	require.NoError(t, err)

	removed, err := fsys.PruneSidecars(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	_, found, err := fsys.LoadMetadata(ctx, "bucket", "live")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = fsys.LoadInternalInfo(ctx, "bucket", "live")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = fsys.LoadMetadata(ctx, "bucket", "gone")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err := fsys.VerifyUploadID(ctx, nil, upload)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err = fsys.PruneSidecars(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
