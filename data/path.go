package data

import (
	"path/filepath"
	"strings"

	"github.com/mwantia/s3fs/data/errors"
)

// ResolvePath maps an untrusted path onto an absolute path beneath root.
// root must be absolute and clean. Relative input is normalized as if root
// were the filesystem root, so ".." segments are clamped at root instead of
// climbing out of it. Absolute input is only accepted when it already lies
// within root. The target does not need to exist.
func ResolvePath(root, path string) (string, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return "", errors.InvalidName(nil, "path", path)
	}

	if filepath.IsAbs(path) {
		resolved := filepath.Clean(path)
		if !HasPrefix(resolved, root) {
			return "", errors.PathEscape(path)
		}
		return resolved, nil
	}

	// Rooting the input at the separator first makes Clean drop every leading "..".
	rooted := filepath.Clean(string(filepath.Separator) + filepath.FromSlash(path))
	return filepath.Join(root, rooted), nil
}

// HasPrefix checks if path equals prefix or lies beneath it.
// Both paths should be cleaned before calling.
func HasPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}

	// The filesystem root already ends with a separator
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(path, prefix)
}
