// Package localstore scavenges readable text out of the media app's
// LevelDB-backed local storage and derives a baseline playback state from
// it.
//
// The app keeps its storage files locked while running, so no LevelDB
// driver is used; instead runs of printable bytes are extracted straight
// from the .ldb/.log files, the same way the strings(1) tool would. The
// result is best-effort and possibly stale, which is fine: it only ever
// forms the lowest-priority layer of a reconciliation cycle.
package localstore
