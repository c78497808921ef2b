package trackcache

// Metadata is the structured record derived from a servings API entry.
// Values are immutable once constructed.
type Metadata struct {
	// Name is the canonical human-readable track name.
	Name string

	// Genre is the first non-"Nature" genre tag. "Nature" is excluded so
	// the secondary tag (e.g. "Forest") becomes the displayed genre for
	// nature-sound tracks.
	Genre string

	// NeuralEffect is the display tier derived from NeuralEffectLevel.
	NeuralEffect string

	// NeuralEffectLevel is the raw 0.0-1.0 value, nil when the variation
	// carried none.
	NeuralEffectLevel *float64

	// MentalState is the top-level mode label ("Focus", "Sleep", ...).
	MentalState string

	// Activity is the first activity tag, else the device-reported
	// activity label.
	Activity string

	ImageURL string
	BPM      int

	// Moods and Instruments preserve tag order and are not deduplicated.
	Moods       []string
	Instruments []string
}

// DisplayMode picks the label shown as the current mode: the activity when
// known (it is the more specific of the two), otherwise the mental state.
func (m Metadata) DisplayMode() string {
	if m.Activity != "" {
		return m.Activity
	}
	return m.MentalState
}

// Complete reports whether the record carries everything the fast path
// needs to skip filesystem probing: a real effect tier and an image.
func (m Metadata) Complete() bool {
	return m.NeuralEffect != "" && m.NeuralEffect != EffectPlaceholder && m.ImageURL != ""
}

// EffectPlaceholder is emitted by heuristic parsing when a normalized-audio
// marker was seen without an explicit tier. It counts as "incomplete" for
// refresh decisions.
const EffectPlaceholder = "Neural Effect Level"

// EffectDisplay converts a neural effect level to its display tier. The
// 0.33 and 0.66 boundaries belong to the lower tier, matching the app's
// own renderer.
func EffectDisplay(level float64) string {
	switch {
	case level <= 0.33:
		return "Low Neural Effect"
	case level <= 0.66:
		return "Medium Neural Effect"
	default:
		return "High Neural Effect"
	}
}
