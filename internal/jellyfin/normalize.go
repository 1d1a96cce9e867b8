package jellyfin

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeName prepares a library name for comparison: lowercased, accents
// stripped, whitespace collapsed. "Películas" and "peliculas" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(removeAccents(s))
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// closestName returns the candidate most similar to name when it is close
// enough to be a plausible typo, or "" when nothing is.
func closestName(name string, candidates []string) string {
	normalized := normalizeName(name)

	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, normalizeName(cand)))
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore >= 0.85 {
		return best
	}
	return ""
}
