package service

import (
	"strings"
	"unicode"
)

// TextSimilarity compares a free-text answer to a reference answer and returns
// a ratio in [0,1]: the Jaccard similarity of the two normalized word sets.
// Two empty answers score 0, not 1 — an empty answer is never rewarded.
func TextSimilarity(a, b string) float64 {
	na := normalizeText(a)
	nb := normalizeText(b)

	if na == nb {
		if na == "" {
			return 0
		}
		return 1.0
	}

	wordsA := wordSet(na)
	wordsB := wordSet(nb)

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// normalizeText lowercases, trims and strips punctuation, keeping word
// characters and whitespace.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
