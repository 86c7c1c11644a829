package data

// Well-known metadata keys written by the protocol layer. The storage layer
// itself treats the payload as opaque.
const (
	MetadataContentType  = "content-type"
	MetadataCacheControl = "cache-control"
)

// Metadata is the user-visible per-object metadata payload.
type Metadata map[string]string

// InternalInfo is the open-ended bookkeeping payload kept next to an object.
type InternalInfo map[string]any

// Get safely retrieves metadata with a default value.
func (m Metadata) Get(key string, defaultValue string) string {
	if value, exists := m[key]; exists {
		return value
	}

	return defaultValue
}
