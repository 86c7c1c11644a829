package data

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SidecarKind distinguishes the auxiliary files stored next to an object.
type SidecarKind string

const (
	SidecarMetadata SidecarKind = "metadata"
	SidecarInternal SidecarKind = "internal"
)

const (
	sidecarBucketPrefix = ".bucket-"
	sidecarObjectInfix  = ".object-"
	sidecarSuffix       = ".json"

	uploadPrefix = ".upload-"

	tempPrefix = ".tmp."
	tempSuffix = ".internal.part"
)

// The URL-safe alphabet never produces '.', which delimits every part of a sidecar name.
var sidecarEncoding = base64.RawURLEncoding

// SidecarName returns the deterministic file name of the sidecar of the given
// kind for (bucket, key). Distinct pairs never share a name.
func SidecarName(bucket, key string, kind SidecarKind) string {
	var sb strings.Builder

	sb.WriteString(sidecarBucketPrefix)
	sb.WriteString(sidecarEncoding.EncodeToString([]byte(bucket)))
	sb.WriteString(sidecarObjectInfix)
	sb.WriteString(sidecarEncoding.EncodeToString([]byte(key)))
	sb.WriteByte('.')
	sb.WriteString(string(kind))
	sb.WriteString(sidecarSuffix)

	return sb.String()
}

// ParseSidecarName reverses SidecarName.
func ParseSidecarName(name string) (bucket, key string, kind SidecarKind, ok bool) {
	rest, found := strings.CutPrefix(name, sidecarBucketPrefix)
	if !found {
		return "", "", "", false
	}

	rest, found = strings.CutSuffix(rest, sidecarSuffix)
	if !found {
		return "", "", "", false
	}

	encBucket, rest, found := strings.Cut(rest, sidecarObjectInfix)
	if !found {
		return "", "", "", false
	}

	encKey, suffix, found := strings.Cut(rest, ".")
	if !found {
		return "", "", "", false
	}

	switch SidecarKind(suffix) {
	case SidecarMetadata, SidecarInternal:
		kind = SidecarKind(suffix)
	default:
		return "", "", "", false
	}

	b, err := sidecarEncoding.DecodeString(encBucket)
	if err != nil {
		return "", "", "", false
	}
	k, err := sidecarEncoding.DecodeString(encKey)
	if err != nil {
		return "", "", "", false
	}

	return string(b), string(k), kind, true
}

// UploadSidecarName returns the file name holding a multipart upload session.
func UploadSidecarName(id uuid.UUID) string {
	return uploadPrefix + id.String() + sidecarSuffix
}

// TempFileName returns the name of the n-th in-flight write target.
func TempFileName(n uint64) string {
	return tempPrefix + strconv.FormatUint(n, 10) + tempSuffix
}

// IsTempFileName reports whether name follows the in-flight write naming pattern.
func IsTempFileName(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}
