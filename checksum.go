package s3fs

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
	"syscall"
	"time"

	fserrors "github.com/mwantia/s3fs/data/errors"
)

const checksumChunkSize = 64 * 1024

var checksumBuffers = sync.Pool{
	New: func() any {
		buf := make([]byte, checksumChunkSize)
		return &buf
	},
}

// ContentChecksum streams the content of (bucket, key) through MD5 in
// 64 KiB chunks and returns the lowercase hex digest.
func (fsys *FileSystem) ContentChecksum(ctx context.Context, bucket, key string) (sum string, err error) {
	start := time.Now()
	var total int64
	defer func() { fsys.observe(OpChecksum, start, total, err) }()

	if err = fsys.begin(ctx); err != nil {
		return "", err
	}

	path, err := fsys.ObjectPath(bucket, key)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		// ENOTDIR: a parent segment of the key is itself an object.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return "", fserrors.NotFound(err, path)
		}
		return "", fserrors.IO(err, "open", path)
	}
	defer file.Close()

	bufp := checksumBuffers.Get().(*[]byte)
	defer checksumBuffers.Put(bufp)
	buf := *bufp

	hash := md5.New()
	for {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		n, rerr := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
			total += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", fserrors.IO(rerr, "read", path)
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
