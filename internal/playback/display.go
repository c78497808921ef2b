package playback

import "strings"

// Truncate shortens s to at most max runes, appending "..." when content
// was dropped. Safe on multi-byte text, unlike byte slicing.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	keep := max - 3
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}

// GenreIconURL maps a genre label to its CDN icon, case-insensitively.
// Unknown genres fall back to the electronic icon.
func GenreIconURL(genre string) string {
	switch strings.ToLower(genre) {
	case "lofi":
		return "https://cdn.brain.fm/icons/lofi.png"
	case "piano":
		return "https://cdn.brain.fm/icons/piano.png"
	case "electronic":
		return "https://cdn.brain.fm/icons/electronic.png"
	case "grooves":
		return "https://cdn.brain.fm/icons/grooves.png"
	case "atmospheric":
		return "https://cdn.brain.fm/icons/atmospheric.png"
	case "cinematic":
		return "https://cdn.brain.fm/icons/cinematic.png"
	case "classical":
		return "https://cdn.brain.fm/icons/classical.png"
	case "acoustic":
		return "https://cdn.brain.fm/icons/acoustic.png"
	case "drone":
		return "https://cdn.brain.fm/icons/drone.png"
	case "post rock":
		return "https://cdn.brain.fm/icons/post_rock.png"
	case "rain":
		return "https://cdn.brain.fm/icons/rain.png"
	case "forest":
		return "https://cdn.brain.fm/icons/forest.png"
	case "beach":
		return "https://cdn.brain.fm/icons/beach.png"
	case "night", "nightsounds":
		return "https://cdn.brain.fm/icons/night.png"
	case "thunder":
		return "https://cdn.brain.fm/icons/thunder.png"
	case "wind":
		return "https://cdn.brain.fm/icons/wind.png"
	case "river":
		return "https://cdn.brain.fm/icons/river.png"
	case "rainforest":
		return "https://cdn.brain.fm/icons/rainforest.png"
	case "underwater":
		return "https://cdn.brain.fm/icons/underwater.png"
	case "chimes & bowls", "chimes and bowls":
		return "https://cdn.brain.fm/icons/chimes.png"
	default:
		return "https://cdn.brain.fm/icons/electronic.png"
	}
}
