package data_test

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/s3fs/data"
	"github.com/mwantia/s3fs/data/errors"
)

func TestResolvePath_ClampsRelativeInput(t *testing.T) {
	root := t.TempDir()

	tests := map[string]string{
		"":                     root,
		".":                    root,
		"..":                   root,
		"bucket/key":           filepath.Join(root, "bucket", "key"),
		"../../etc/passwd":     filepath.Join(root, "etc", "passwd"),
		"a/../../b":            filepath.Join(root, "b"),
		"a//b///c":             filepath.Join(root, "a", "b", "c"),
		"./.hidden/./..a":      filepath.Join(root, ".hidden", "..a"),
		"bucket/../../../../x": filepath.Join(root, "x"),
	}

	for input, want := range tests {
		t.Run(input, func(tst *testing.T) {
			got, err := data.ResolvePath(root, input)
			require.NoError(tst, err)
			assert.Equal(tst, want, got)
		})
	}
}

func TestResolvePath_AbsoluteInput(t *testing.T) {
	root := t.TempDir()

	got, err := data.ResolvePath(root, filepath.Join(root, "a", "..", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b"), got)

	_, err = data.ResolvePath(root, root+string(filepath.Separator)+".."+string(filepath.Separator)+"escape")
	assert.ErrorIs(t, err, errors.ErrPathEscape)

	// A sibling sharing the root as a string prefix is still outside root.
	_, err = data.ResolvePath(root, root+"-sibling")
	assert.ErrorIs(t, err, errors.ErrPathEscape)
}

func TestResolvePath_RejectsNulByte(t *testing.T) {
	_, err := data.ResolvePath(t.TempDir(), "bucket/a\x00b")
	assert.ErrorIs(t, err, errors.ErrInvalidName)
}

// TestResolvePath_NeverEscapes feeds generated hostile paths through the resolver.
func TestResolvePath_NeverEscapes(t *testing.T) {
	root := t.TempDir()
	rng := rand.New(rand.NewPCG(1, 2))
	segments := []string{"..", ".", "", "/", "//", "a", "..a", ".b", "bucket", root, "\\", "..\\.."}

	for range 2000 {
		parts := make([]string, 1+rng.IntN(8))
		for i := range parts {
			parts[i] = segments[rng.IntN(len(segments))]
		}
		input := strings.Join(parts, "/")

		got, err := data.ResolvePath(root, input)
		if err != nil {
			require.ErrorIs(t, err, errors.ErrPathEscape, "input %q", input)
			continue
		}
		require.True(t, data.HasPrefix(got, root), "input %q resolved to %q", input, got)
	}
}
