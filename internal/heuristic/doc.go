// Package heuristic derives best-effort playback metadata from audio
// filenames. It is the last-resort path when no structured metadata is
// reachable: inherently lossy, but it never fails — it just returns
// progressively less information.
//
// Parsing is a two-phase token classification. The filename is tokenized
// once and each token is classified against an enumerated vocabulary
// (mode, genre, effect tier, technical marker, numeric, version,
// duration). Phase one consumes the leading run of unclassified tokens as
// the track name; phase two scans the remaining tokens and keeps the
// first match per category.
package heuristic
