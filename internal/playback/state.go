package playback

import (
	"fmt"
	"strings"
)

// State is an immutable snapshot of what Brain.fm is doing right now.
// String fields use "" for "unknown"; a zero State means "nothing known".
type State struct {
	// Mode is the mental-state or activity label shown to the user
	// (e.g. "Deep Work", "Sleep").
	Mode string `json:"mode,omitempty"`

	IsPlaying bool `json:"is_playing"`

	TrackName string `json:"track_name,omitempty"`

	// NeuralEffect is the display tier (e.g. "High Neural Effect").
	NeuralEffect string `json:"neural_effect,omitempty"`

	// NeuralEffectLevel is the raw 0.0-1.0 value when structured data
	// supplied one.
	NeuralEffectLevel *float64 `json:"neural_effect_level,omitempty"`

	Genre    string `json:"genre,omitempty"`
	Activity string `json:"activity,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	SessionState string `json:"session_state,omitempty"`
	SessionTime  string `json:"session_time,omitempty"`

	InfinitePlay bool `json:"infinite_play"`
	ADHDMode     bool `json:"adhd_mode"`
}

// Active reports whether the app is playing with a known mode.
func (s State) Active() bool {
	return s.IsPlaying && s.Mode != ""
}

// Merge layers overlay on top of base. Optional fields keep the base value
// only when the overlay has none. IsPlaying always takes the overlay's
// value, even an explicit false. Boolean feature flags are OR'd so they
// stay set once any layer reports them.
func Merge(base, overlay State) State {
	level := overlay.NeuralEffectLevel
	if level == nil {
		level = base.NeuralEffectLevel
	}
	return State{
		Mode:              firstNonEmpty(overlay.Mode, base.Mode),
		IsPlaying:         overlay.IsPlaying,
		TrackName:         firstNonEmpty(overlay.TrackName, base.TrackName),
		NeuralEffect:      firstNonEmpty(overlay.NeuralEffect, base.NeuralEffect),
		NeuralEffectLevel: level,
		Genre:             firstNonEmpty(overlay.Genre, base.Genre),
		Activity:          firstNonEmpty(overlay.Activity, base.Activity),
		ImageURL:          firstNonEmpty(overlay.ImageURL, base.ImageURL),
		SessionState:      firstNonEmpty(overlay.SessionState, base.SessionState),
		SessionTime:       firstNonEmpty(overlay.SessionTime, base.SessionTime),
		InfinitePlay:      overlay.InfinitePlay || base.InfinitePlay,
		ADHDMode:          overlay.ADHDMode || base.ADHDMode,
	}
}

// Reduce applies overlays to base left to right in increasing priority.
// It turns the source cascade into data: callers list their probes in
// order instead of nesting conditionals.
func Reduce(base State, overlays ...State) State {
	merged := base
	for _, overlay := range overlays {
		merged = Merge(merged, overlay)
	}
	return merged
}

// PresenceString renders the compact "Mode (STATE) [H:MM:SS]" line used by
// presence surfaces. Falls back to the app name when nothing is known.
func (s State) PresenceString() string {
	parts := make([]string, 0, 3)
	if s.Mode != "" {
		parts = append(parts, s.Mode)
	}
	if s.SessionState != "" {
		parts = append(parts, fmt.Sprintf("(%s)", s.SessionState))
	}
	if s.SessionTime != "" {
		parts = append(parts, fmt.Sprintf("[%s]", s.SessionTime))
	}
	if len(parts) == 0 {
		return "Brain.fm"
	}
	return strings.Join(parts, " ")
}

// DetailsString renders "Track • Genre • Effect", or "" when no detail
// fields are known.
func (s State) DetailsString() string {
	parts := make([]string, 0, 3)
	if s.TrackName != "" {
		parts = append(parts, s.TrackName)
	}
	if s.Genre != "" {
		parts = append(parts, s.Genre)
	}
	if s.NeuralEffect != "" {
		parts = append(parts, s.NeuralEffect)
	}
	return strings.Join(parts, " • ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
