package s3fs

import "github.com/mwantia/s3fs/data/errors"

// Classified errors returned by FileSystem operations; compare with errors.Is.
// The protocol layer maps ErrPathEscape, ErrInvalidName and ErrNotExist to
// "no such bucket/key" and everything else to a server error.
var (
	// Path resolution errors
	ErrPathEscape  = errors.ErrPathEscape
	ErrInvalidName = errors.ErrInvalidName

	// File operation errors
	ErrNotExist    = errors.ErrNotExist
	ErrIO          = errors.ErrIO
	ErrDeserialize = errors.ErrDeserialize

	// Lifecycle errors
	ErrConstruction = errors.ErrConstruction
	ErrClosed       = errors.ErrClosed
)
