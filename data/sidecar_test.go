package data_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/s3fs/data"
)

func TestSidecarName_Layout(t *testing.T) {
	assert.Equal(t, ".bucket-YnVja2V0.object-a2V5.metadata.json",
		data.SidecarName("bucket", "key", data.SidecarMetadata))
	assert.Equal(t, ".bucket-YnVja2V0.object-a2V5.internal.json",
		data.SidecarName("bucket", "key", data.SidecarInternal))
}

func TestSidecarName_Injective(t *testing.T) {
	pairs := [][2]string{
		{"a", "b.c"},
		{"a.b", "c"},
		{"a", ".object-b"},
		{"a.object-", "b"},
		{"", "ab"},
		{"ab", ""},
		{"a/b", "c"},
		{"a", "b/c"},
		{"../x", "y"},
		{"x", "../y"},
		{"\xff\x00", "\x01"},
	}

	seen := make(map[string][2]string)
	for _, pair := range pairs {
		for _, kind := range []data.SidecarKind{data.SidecarMetadata, data.SidecarInternal} {
			name := data.SidecarName(pair[0], pair[1], kind)
			require.NotContains(t, name, "/")

			if prev, exists := seen[name]; exists {
				t.Fatalf("sidecar name %q shared by %q and %q", name, prev, pair)
			}
			seen[name] = pair
		}
	}
}

func TestParseSidecarName_RoundTrip(t *testing.T) {
	for _, pair := range [][2]string{{"photos", "2024/01/a.jpg"}, {"b", ""}, {"x.y", "\xff..\x00"}} {
		name := data.SidecarName(pair[0], pair[1], data.SidecarInternal)

		bucket, key, kind, ok := data.ParseSidecarName(name)
		require.True(t, ok, name)
		assert.Equal(t, pair[0], bucket)
		assert.Equal(t, pair[1], key)
		assert.Equal(t, data.SidecarInternal, kind)
	}
}

func TestParseSidecarName_RejectsForeignNames(t *testing.T) {
	for _, name := range []string{
		"object.txt",
		".bucket-YQ.object-Yg.other.json",
		".bucket-YQ.object-Yg.metadata",
		".bucket-Y!.object-Yg.metadata.json",
		".upload-" + uuid.NewString() + ".json",
	} {
		_, _, _, ok := data.ParseSidecarName(name)
		assert.False(t, ok, name)
	}
}

func TestTempFileName(t *testing.T) {
	name := data.TempFileName(42)

	assert.Equal(t, ".tmp.42.internal.part", name)
	assert.True(t, data.IsTempFileName(name))
	assert.False(t, data.IsTempFileName(".tmp.42.part"))
	assert.False(t, data.IsTempFileName("tmp.42.internal.part"))
}

func TestUploadSidecarName(t *testing.T) {
	id := uuid.New()
	name := data.UploadSidecarName(id)

	assert.True(t, strings.HasPrefix(name, ".upload-"))
	assert.Equal(t, ".upload-"+id.String()+".json", name)
}
