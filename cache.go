package infradocs

import "strings"

// CacheKey identifies one cached remote resource.
type CacheKey struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// NewCacheKey returns the key of a path in a source.
func NewCacheKey(src Source, path string) CacheKey {
	return CacheKey{Owner: src.Owner, Repo: src.Repo, Branch: src.Branch, Path: path}
}

// String returns the composite key "owner/repo@branch:path".
func (k CacheKey) String() string {
	var b strings.Builder
	b.WriteString(k.Owner)
	b.WriteByte('/')
	b.WriteString(k.Repo)
	b.WriteByte('@')
	b.WriteString(k.Branch)
	b.WriteByte(':')
	b.WriteString(k.Path)
	return b.String()
}

// Cache holds fetched payloads for a bounded time.
// Writes replace entries atomically; readers never see partial values.
type Cache[V any] interface {
	// Get returns the value for key if present and not expired.
	Get(key CacheKey) (V, bool)

	// Put stores value under key, replacing any previous entry.
	Put(key CacheKey, value V)
}
