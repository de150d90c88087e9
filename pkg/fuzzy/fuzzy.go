package fuzzy

import (
	"strings"
)

// LevenshteinDistance is the number of single-rune edits needed to turn s1
// into s2, compared case-insensitively.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(normalizeString(s1))
	r2 := []rune(normalizeString(s2))
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// FuzzyMatch reports whether query is a substring of text, a prefix of one
// of its words, or within threshold edits of one of its words.
func FuzzyMatch(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)
	if query == "" {
		return true
	}
	if strings.Contains(text, query) {
		return true
	}
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) || LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}
	return false
}

// Threshold is the typo tolerance for a query of the given length.
func Threshold(query string) int {
	switch n := len([]rune(query)); {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// MatchAny reports whether query fuzzy-matches any of fields.
func MatchAny(query string, fields ...string) bool {
	threshold := Threshold(query)
	for _, f := range fields {
		if FuzzyMatch(query, f, threshold) {
			return true
		}
	}
	return false
}

// RelevanceScore ranks a profile against query. Name hits weigh more than
// tag hits (specialties, interests); higher is better.
func RelevanceScore(query, name string, tags []string) float64 {
	query = normalizeString(query)
	if query == "" {
		return 0
	}
	score := fieldScore(query, normalizeString(name), 100, 40)
	for _, tag := range tags {
		score += fieldScore(query, normalizeString(tag), 60, 25)
	}
	return score
}

func fieldScore(query, text string, exact, fuzzy float64) float64 {
	if strings.Contains(text, query) {
		if containsWord(text, query) {
			return exact * 1.5
		}
		return exact
	}
	best := 0.0
	for _, word := range strings.Fields(text) {
		s := 0.0
		if strings.HasPrefix(word, query) {
			s = fuzzy
		} else if dist := LevenshteinDistance(query, word); dist <= Threshold(query) {
			s = fuzzy - float64(dist)*10
		}
		best = max(best, s)
	}
	return best
}

func normalizeString(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
