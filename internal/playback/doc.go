// Package playback defines the unified playback snapshot produced by each
// reconciliation cycle and the layering rules used to combine partial
// snapshots from independent sources.
//
// A State is assembled once per cycle by merging a low-priority base layer
// (persisted local storage, often stale) with zero or more overlays in
// increasing priority order. Optional fields follow overlay-wins-if-present
// semantics; IsPlaying always takes the overlay's value because play/pause
// detection is the overlay's entire purpose.
package playback
