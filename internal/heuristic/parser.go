package heuristic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"entrain/internal/playback"
	"entrain/internal/trackcache"
)

// Parser turns audio filenames into partial playback state. Construct
// once and reuse; it is safe for sequential reuse across cycles.
type Parser struct {
	titler cases.Caser
}

// NewParser returns a ready parser.
func NewParser() *Parser {
	return &Parser{titler: cases.Title(language.Und)}
}

// Parse extracts whatever the filename in url reveals. It never fails;
// unknown aspects are simply left empty.
func (p *Parser) Parse(url string) playback.State {
	var state playback.State

	filename := trackcache.FilenameFromURL(url)
	if filename == "" {
		return state
	}
	filename = strings.TrimSuffix(filename, ".mp3")
	filename = trackcache.DecodeEscapes(filename)

	tokens := tokenize(filename)
	if len(tokens) == 0 {
		return state
	}

	classes := make([]tokenClass, len(tokens))
	canonical := make([]string, len(tokens))
	for i, token := range tokens {
		classes[i], canonical[i] = classify(token)
	}

	// Phase one: the leading run of plain words is the track name.
	nameParts := make([]string, 0, len(tokens))
	for i, class := range classes {
		if class != classWord {
			break
		}
		nameParts = append(nameParts, splitCamelCase(tokens[i]))
	}
	if len(nameParts) > 0 {
		state.TrackName = strings.Join(nameParts, " ")
		state.IsPlaying = true
	}

	// Phase two: first match per category among the remaining tokens.
	sawNormalized := false
	for i := 1; i < len(tokens); i++ {
		switch classes[i] {
		case classMode:
			if state.Mode == "" {
				state.Mode = canonical[i]
			}
		case classGenre:
			if state.Genre == "" {
				state.Genre = p.titler.String(strings.ToLower(tokens[i]))
			}
		case classEffect:
			if state.NeuralEffect == "" {
				state.NeuralEffect = canonical[i]
			}
		case classNormalized:
			sawNormalized = true
		}
	}

	if state.NeuralEffect == "" {
		switch {
		case sawNormalized:
			state.NeuralEffect = trackcache.EffectPlaceholder
		case state.Mode != "":
			state.NeuralEffect = "Neural Effect Active"
		}
	}

	return state
}

func tokenize(filename string) []string {
	return strings.FieldsFunc(filename, func(r rune) bool {
		return r == '_' || r == ' '
	})
}

// splitCamelCase inserts a space before an uppercase letter that follows
// a lowercase one, so "NothingRemains" reads "Nothing Remains".
func splitCamelCase(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
