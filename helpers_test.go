package s3fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwantia/s3fs"
	"github.com/mwantia/s3fs/log"
)

func newTestFileSystem(tst *testing.T, opts ...s3fs.Option) *s3fs.FileSystem {
	tst.Helper()

	opts = append([]s3fs.Option{s3fs.WithLogger(log.NewNopLogger())}, opts...)
	fsys, err := s3fs.New(tst.TempDir(), opts...)
	require.NoError(tst, err)

	tst.Cleanup(func() { fsys.Close() })
	return fsys
}

func writeObject(tst *testing.T, fsys *s3fs.FileSystem, bucket, key string, content []byte) string {
	tst.Helper()

	w, err := fsys.PrepareWrite(tst.Context(), bucket, key)
	require.NoError(tst, err)
	defer w.Close()

	_, err = w.Write(content)
	require.NoError(tst, err)

	path, err := w.Commit(tst.Context())
	require.NoError(tst, err)

	return path
}

// tempFiles lists the in-flight write targets currently present in root.
func tempFiles(tst *testing.T, root string) []string {
	tst.Helper()

	entries, err := os.ReadDir(root)
	require.NoError(tst, err)

	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp.") {
			names = append(names, filepath.Join(root, entry.Name()))
		}
	}

	return names
}
