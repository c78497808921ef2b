package heuristic

import "strings"

type tokenClass int

const (
	// classWord is any token outside the vocabulary; a leading run of
	// these forms the track name.
	classWord tokenClass = iota
	classMode
	classStop // vocabulary token that ends the name but carries no category
	classGenre
	classEffect
	classNormalized
	classTechnical
	classNumeric
	classVersion
	classDuration
)

// modeTokens maps lowercased filename tokens to canonical mode labels.
var modeTokens = map[string]string{
	"deepwork":           "Deep Work",
	"lightwork":          "Light Work",
	"motivation":         "Motivation",
	"sleep":              "Sleep",
	"relax":              "Relax",
	"meditate":           "Meditate",
	"meditation":         "Meditate",
	"meditating":         "Meditate",
	"unguided":           "Meditate",
	"unguidedmeditation": "Meditate",
}

// stopTokens end the track name without contributing a category. "focus"
// is the umbrella category preceding the specific mode token, so it maps
// to no mode itself.
var stopTokens = map[string]struct{}{
	"focus":            {},
	"deep":             {},
	"light":            {},
	"recharge":         {},
	"guided":           {},
	"guidedmeditation": {},
}

// genreTokens is the known genre vocabulary, lowercased.
var genreTokens = map[string]struct{}{
	"piano":       {},
	"electronic":  {},
	"lofi":        {},
	"ambient":     {},
	"nature":      {},
	"atmospheric": {},
	"grooves":     {},
	"cinematic":   {},
	"classical":   {},
	"acoustic":    {},
	"drone":       {},
	"postrock":    {},
	"chimes":      {},
	"rain":        {},
	"forest":      {},
	"thunder":     {},
	"beach":       {},
	"night":       {},
	"river":       {},
	"wind":        {},
	"underwater":  {},
}

// technicalTokens are encoder metadata markers with no display value.
var technicalTokens = map[string]struct{}{
	"conor": {},
	"vbr":   {},
	"vbr5":  {},
}

// effectTier returns the display tier named inside a token, if any.
func effectTier(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "highnel"):
		return "High Neural Effect", true
	case strings.Contains(lower, "mednel"):
		return "Medium Neural Effect", true
	case strings.Contains(lower, "lownel"):
		return "Low Neural Effect", true
	}
	return "", false
}

// classify assigns a class to one token. canonical carries the mapped
// display value for mode and effect tokens.
func classify(token string) (class tokenClass, canonical string) {
	lower := strings.ToLower(token)

	if tier, ok := effectTier(lower); ok {
		return classEffect, tier
	}
	if mode, ok := modeTokens[lower]; ok {
		return classMode, mode
	}
	if _, ok := stopTokens[lower]; ok {
		return classStop, ""
	}
	if _, ok := genreTokens[lower]; ok {
		return classGenre, ""
	}
	if strings.HasPrefix(lower, "nrmlzd") {
		return classNormalized, ""
	}
	if _, ok := technicalTokens[lower]; ok {
		return classTechnical, ""
	}
	if isAllDigits(token) {
		return classNumeric, ""
	}
	if len(lower) > 0 && lower[0] >= '0' && lower[0] <= '9' && strings.ContainsRune(lower, '.') {
		return classVersion, ""
	}
	if strings.HasSuffix(lower, "mins") || strings.HasSuffix(lower, "min") || strings.HasSuffix(lower, "bpm") {
		return classDuration, ""
	}
	return classWord, ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
