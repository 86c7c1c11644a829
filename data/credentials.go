package data

// Credentials identify the caller of a request. A nil *Credentials is the
// anonymous caller. Only AccessKey takes part in identity comparisons.
type Credentials struct {
	AccessKey string
}

// AccessKey returns the access key of cred, or nil for anonymous callers.
func AccessKey(cred *Credentials) *string {
	if cred == nil {
		return nil
	}

	ak := cred.AccessKey
	return &ak
}

// SameIdentity reports whether two identities are equal. Two anonymous
// identities are equal; anonymous never equals a named identity.
func SameIdentity(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
