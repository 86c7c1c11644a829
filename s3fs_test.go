package s3fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/s3fs"
	"github.com/mwantia/s3fs/log"
)

// TestNew_CreatesRoot verifies that a missing root is created and canonicalized.
func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "root")

	fsys, err := s3fs.New(root, s3fs.WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	defer fsys.Close()

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, filepath.IsAbs(fsys.Root()))
	assert.Equal(t, 0, fsys.RemovedOrphans())
}

func TestNew_MissingRootWithoutCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	fsys, err := s3fs.New(root, s3fs.WithLogger(log.NewNopLogger()), s3fs.WithoutCreateRoot())
	require.NoError(t, err)
	defer fsys.Close()

	assert.Equal(t, root, fsys.Root())
	assert.NoDirExists(t, root)
}

func TestNew_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := map[string]struct {
		root string
		opts []s3fs.Option
	}{
		"empty root":     {root: ""},
		"root is a file": {root: file},
		"nil observer":   {root: t.TempDir(), opts: []s3fs.Option{s3fs.WithObserver(nil)}},
		"zero file mode": {root: t.TempDir(), opts: []s3fs.Option{s3fs.WithFileMode(0)}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			opts := append([]s3fs.Option{s3fs.WithLogger(log.NewNopLogger())}, tc.opts...)
			_, err := s3fs.New(tc.root, opts...)
			assert.ErrorIs(t, err, s3fs.ErrConstruction)
		})
	}
}

// TestNew_RemovesOrphanedTempFiles verifies that only top-level regular files
// matching the temp pattern are removed when the filesystem is opened.
func TestNew_RemovesOrphanedTempFiles(t *testing.T) {
	root := t.TempDir()

	orphans := []string{".tmp.0.internal.part", ".tmp.42.internal.part", ".tmp.x.internal.part"}
	for _, name := range orphans {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("partial"), 0o644))
	}

	kept := []string{"keep.txt", ".tmp.1.internal.part.bak", ".bucket-YQ.object-Yg.metadata.json"}
	for _, name := range kept {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, ".tmp.7.internal.part"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bucket"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bucket", ".tmp.3.internal.part"), []byte("object"), 0o644))

	fsys, err := s3fs.New(root, s3fs.WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	defer fsys.Close()

	assert.Equal(t, len(orphans), fsys.RemovedOrphans())
	for _, name := range orphans {
		assert.NoFileExists(t, filepath.Join(root, name))
	}
	for _, name := range kept {
		assert.FileExists(t, filepath.Join(root, name))
	}
	assert.DirExists(t, filepath.Join(root, ".tmp.7.internal.part"))
	assert.FileExists(t, filepath.Join(root, "bucket", ".tmp.3.internal.part"))
}

// TestClose_AbandonsInFlightWriters verifies that Close removes temp files of
// open writers and rejects any further use.
func TestClose_AbandonsInFlightWriters(t *testing.T) {
	ctx := t.Context()
	fsys, err := s3fs.New(t.TempDir(), s3fs.WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	w, err := fsys.PrepareWrite(ctx, "bucket", "key")
	require.NoError(t, err)
	_, err = w.Write([]byte("pending"))
	require.NoError(t, err)
	assert.Len(t, fsys.InFlight(), 1)

	require.NoError(t, fsys.Close())

	assert.NoFileExists(t, w.TmpPath())
	assert.NoFileExists(t, w.FinalPath())
	assert.Empty(t, fsys.InFlight())

	_, err = w.Write([]byte("more"))
	assert.ErrorIs(t, err, s3fs.ErrClosed)
	_, err = w.Commit(ctx)
	assert.ErrorIs(t, err, s3fs.ErrClosed)
	assert.NoError(t, w.Close())

	_, err = fsys.PrepareWrite(ctx, "bucket", "key")
	assert.ErrorIs(t, err, s3fs.ErrClosed)
	_, _, err = fsys.LoadMetadata(ctx, "bucket", "key")
	assert.ErrorIs(t, err, s3fs.ErrClosed)

	assert.ErrorIs(t, fsys.Close(), s3fs.ErrClosed)
}

// TestNew_UnreadableRoot verifies that a root that exists but cannot be
// scanned for orphaned temp files aborts construction.
func TestNew_UnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { os.Chmod(root, 0o755) })

	_, err := s3fs.New(root, s3fs.WithLogger(log.NewNopLogger()))
	assert.ErrorIs(t, err, s3fs.ErrConstruction)
}
