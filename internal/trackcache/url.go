package trackcache

import "strings"

// FilenameFromURL returns the final path segment of url with any query
// string stripped. Returns "" when the URL has no path segment.
func FilenameFromURL(url string) string {
	path := url
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// DecodeEscapes undoes the small fixed set of percent escapes that appear
// in audio URLs. Not a general URL decoder: multi-byte sequences and "+"
// as space are out of scope.
func DecodeEscapes(s string) string {
	return escapeReplacer.Replace(s)
}

var escapeReplacer = strings.NewReplacer(
	"%20", " ",
	"%2F", "/",
	"%3A", ":",
	"%3D", "=",
	"%26", "&",
	"%2B", "+",
)
