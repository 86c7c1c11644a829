package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwantia/s3fs/data/errors"
)

func TestClassifiedErrors_MatchSentinelAndCause(t *testing.T) {
	err := errors.IO(fs.ErrPermission, "rename", "/srv/data/a")

	assert.ErrorIs(t, err, errors.ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, errors.ErrNotExist)
	assert.Equal(t, "s3fs: i/o failure: rename '/srv/data/a': permission denied", err.Error())
}

func TestClassifiedErrors_WithoutCause(t *testing.T) {
	err := errors.PathEscape("/etc/passwd")

	assert.ErrorIs(t, err, errors.ErrPathEscape)
	assert.Equal(t, "s3fs: path escapes virtual root: '/etc/passwd'", err.Error())

	var target interface{ Unwrap() []error }
	assert.True(t, stderrors.As(err, &target))
}
