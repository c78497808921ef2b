package trackcache

import "strings"

// Cache maps filename variants to track metadata. Multiple keys may point
// at the same logical track. The zero value is not usable; call New.
type Cache struct {
	tracks map[string]Metadata
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{tracks: make(map[string]Metadata)}
}

// Len returns the number of keys (not logical tracks).
func (c *Cache) Len() int {
	return len(c.tracks)
}

// Empty reports whether the cache holds no entries.
func (c *Cache) Empty() bool {
	return len(c.tracks) == 0
}

// Clone returns an independent copy sharing no map state.
func (c *Cache) Clone() *Cache {
	clone := New()
	for key, meta := range c.tracks {
		clone.tracks[key] = meta
	}
	return clone
}

// Merge inserts every entry of other into c, overwriting existing values
// for the same key (last writer wins, no field-level reconciliation).
func (c *Cache) Merge(other *Cache) {
	if other == nil {
		return
	}
	for key, meta := range other.tracks {
		c.tracks[key] = meta
	}
}

// LookupByURL matches the filename portion of audioURL against cached
// keys: exact match on the decoded filename first, then on the raw
// (possibly percent-encoded) filename, then a bidirectional substring
// containment scan over all keys. The containment fallback has no
// tie-break; with several candidates it returns whichever the map yields
// first, which is an accepted imprecision of this cache, not a bug.
func (c *Cache) LookupByURL(audioURL string) (Metadata, bool) {
	filename := FilenameFromURL(audioURL)
	if filename == "" {
		return Metadata{}, false
	}
	decoded := DecodeEscapes(filename)

	if meta, ok := c.tracks[decoded]; ok {
		return meta, true
	}
	if meta, ok := c.tracks[filename]; ok {
		return meta, true
	}

	for key, meta := range c.tracks {
		decodedKey := DecodeEscapes(key)
		if containsEither(decoded, decodedKey) {
			return meta, true
		}
	}
	return Metadata{}, false
}

// LookupByName matches name exactly against each record's canonical track
// name. Used by the media-session fallback, which reports titles rather
// than URLs.
func (c *Cache) LookupByName(name string) (Metadata, bool) {
	for _, meta := range c.tracks {
		if meta.Name == name {
			return meta, true
		}
	}
	return Metadata{}, false
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
