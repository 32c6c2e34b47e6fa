package config

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a known name.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to name by edit distance, ignoring
// case, or false when nothing is close enough.
func Suggest(name string, candidates []string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// SuggestPreset is Suggest over the preset names.
func SuggestPreset(name string) (string, bool) {
	return Suggest(name, ListPresets())
}
