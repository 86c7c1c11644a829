package errors

import (
	"errors"
	"fmt"
)

// Classified failures returned by the storage layer. Every error produced by
// this module wraps exactly one of these, so callers branch with errors.Is.
var (
	ErrPathEscape   = errors.New("s3fs: path escapes virtual root")
	ErrInvalidName  = errors.New("s3fs: invalid name")
	ErrNotExist     = errors.New("s3fs: file does not exist")
	ErrIO           = errors.New("s3fs: i/o failure")
	ErrDeserialize  = errors.New("s3fs: invalid sidecar content")
	ErrConstruction = errors.New("s3fs: filesystem construction failed")
	ErrClosed       = errors.New("s3fs: already closed")
)

// classified keeps the sentinel and the underlying cause reachable for errors.Is and errors.As.
type classified struct {
	kind  error
	cause error
	text  string
}

func (c *classified) Error() string {
	if c.cause != nil {
		return fmt.Sprintf("%s: %s: %v", c.kind, c.text, c.cause)
	}
	return fmt.Sprintf("%s: %s", c.kind, c.text)
}

func (c *classified) Unwrap() []error {
	if c.cause != nil {
		return []error{c.kind, c.cause}
	}
	return []error{c.kind}
}

func newError(kind, err error, format string, args ...any) error {
	return &classified{
		kind:  kind,
		cause: err,
		text:  fmt.Sprintf(format, args...),
	}
}

func PathEscape(path string) error {
	return newError(ErrPathEscape, nil, "'%s'", path)
}

func InvalidName(err error, what, name string) error {
	return newError(ErrInvalidName, err, "%s '%s'", what, name)
}

func NotFound(err error, path string) error {
	return newError(ErrNotExist, err, "'%s'", path)
}

// IO classifies an unexpected filesystem failure for op on path.
func IO(err error, op, path string) error {
	return newError(ErrIO, err, "%s '%s'", op, path)
}

func Deserialize(err error, path string) error {
	return newError(ErrDeserialize, err, "'%s'", path)
}

func Construction(err error, root string) error {
	return newError(ErrConstruction, err, "root '%s'", root)
}

func Closed(what string) error {
	return newError(ErrClosed, nil, "%s", what)
}
