package localstore

import (
	"fmt"
	"regexp"
	"strings"

	"entrain/internal/heuristic"
	"entrain/internal/playback"
)

var (
	displayValueRE = regexp.MustCompile(`displayValue["\s:\\]+([A-Za-z\s]+)`)
	trackNameRE    = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	trackURLRE     = regexp.MustCompile(`"url"\s*:\s*"([^"]+\.mp3[^"]*)"`)
)

// modePatterns pairs a substring to match with its canonical display
// name, in match-priority order.
var modePatterns = [][2]string{
	{"Deep Work", "Deep Work"},
	{"Light Work", "Light Work"},
	{"Motivation", "Motivation"},
	{"Focus", "Focus"},
	{"Sleep", "Sleep"},
	{"Relax", "Relax"},
	{"Meditate", "Meditate"},
	{"Recharge", "Recharge"},
}

// Baseline reads local storage and derives the low-priority baseline
// state: the last persisted playback event, the persisted mode, and the
// ADHD / infinite-play flags. May be stale; it is merged under every
// other source.
func (s *Store) Baseline(parser *heuristic.Parser) playback.State {
	return parseBaseline(s.ReadStrings(), parser)
}

func parseBaseline(content string, parser *heuristic.Parser) playback.State {
	state := parsePlaybackEvents(content, parser)

	if state.Mode == "" && strings.Contains(content, "persist:activities") {
		if m := displayValueRE.FindStringSubmatch(content); m != nil {
			candidate := strings.TrimSpace(m[1])
			for _, p := range modePatterns {
				if strings.Contains(candidate, p[0]) {
					state.Mode = p[1]
					break
				}
			}
		}
		if state.Mode == "" {
			for _, p := range modePatterns {
				slug := fmt.Sprintf("y-%s", strings.ReplaceAll(strings.ToLower(p[0]), " ", "_"))
				if strings.Contains(content, slug) || strings.Contains(content, fmt.Sprintf("%q", p[0])) {
					state.Mode = p[1]
					break
				}
			}
		}
	}

	if strings.Contains(content, `"isAdhdModeEnabled":"true"`) ||
		strings.Contains(content, `isAdhdModeEnabled":true`) {
		state.ADHDMode = true
	}
	if strings.Contains(content, `"isInfinitePlayEnabled":"true"`) ||
		strings.Contains(content, `isInfinitePlayEnabled":true`) {
		state.InfinitePlay = true
	}

	if state.Mode == "" {
		indicators := [][2]string{
			{"deep_work", "Deep Work"},
			{"light_work", "Light Work"},
			{"Deep Work", "Deep Work"},
			{"Light Work", "Light Work"},
		}
		for _, ind := range indicators {
			if strings.Contains(content, ind[0]) {
				state.Mode = ind[1]
				break
			}
		}
	}

	return state
}

// parsePlaybackEvents finds persisted playback-start events. Events are
// appended over time, so the last name/URL seen wins.
func parsePlaybackEvents(content string, parser *heuristic.Parser) playback.State {
	var state playback.State
	var lastName, lastURL string

	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "core_playback_start_success") &&
			!strings.Contains(line, "core_playback_start_attempt") {
			continue
		}
		if m := trackNameRE.FindStringSubmatch(line); m != nil {
			lastName = m[1]
		}
		if m := trackURLRE.FindStringSubmatch(line); m != nil {
			lastURL = m[1]
		}
	}

	if lastName != "" {
		state.TrackName = lastName
		state.IsPlaying = true
	}
	if lastURL != "" && parser != nil {
		// The event URL fills gaps only; the event's own name field is
		// authoritative for the track.
		parsed := parser.Parse(lastURL)
		if state.Mode == "" {
			state.Mode = parsed.Mode
		}
		if state.Genre == "" {
			state.Genre = parsed.Genre
		}
		if state.NeuralEffect == "" {
			state.NeuralEffect = parsed.NeuralEffect
		}
	}
	return state
}
