package s3fs

import (
	"errors"
	"os"
	"runtime"
	"syscall"
)

// syncDir best-effort fsyncs a directory so that a rename into it becomes durable.
// Platforms and filesystems without directory fsync are treated as success.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	df, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer df.Close()

	if err := df.Sync(); err != nil {
		// tmpfs and friends report EINVAL for directory sync.
		if errors.Is(err, syscall.EINVAL) {
			return nil
		}
		return err
	}

	return nil
}
