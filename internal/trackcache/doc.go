// Package trackcache holds structured track metadata parsed from servings
// API responses and offers fuzzy filename-keyed lookup over it.
//
// The cache maps several derivations of a variation's filename (decoded
// URL, raw URL, CDN filename) to one Metadata value, so a URL seen on the
// wire later can be matched regardless of percent-encoding or CDN prefix.
// Merging caches is last-writer-wins per key with no value-level
// reconciliation; a cache never shrinks within a session.
package trackcache
