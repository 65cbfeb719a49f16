package service

import (
	"strings"
	"unicode"
)

// Answer matching: submissions are normalized, then compared exactly or
// within a small edit distance so typos don't cost a team points.

const strippedPunctuation = ".,/#!$%^&*;:{}=-_`~()'\"?"

// Matches reports whether a submitted answer counts as the canonical one.
// Both are normalized first; if they differ, a Levenshtein distance of 1
// (canonical length <= 8) or 2 (longer) is still accepted when fuzzy
// matching is allowed and the canonical form is longer than 3 runes.
func Matches(submitted, canonical string, allowFuzzy bool) bool {
	s := Normalize(submitted)
	c := Normalize(canonical)

	if s == c {
		return true
	}
	if !allowFuzzy {
		return false
	}

	cl := len([]rune(c))
	if cl <= 3 {
		return false
	}
	limit := 2
	if cl <= 8 {
		limit = 1
	}
	return levenshtein(s, c) <= limit
}

// Normalize lowercases, trims, strips punctuation, folds accented Latin
// letters to ASCII and collapses internal whitespace runs.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		r = foldAccent(r)
		switch {
		case unicode.IsSpace(r):
			space = true
		case strings.ContainsRune(strippedPunctuation, r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldAccent maps accented Latin-1 letters to their base ASCII letter
func foldAccent(r rune) rune {
	switch r {
	case 'à', 'á', 'â', 'ã', 'ä', 'å':
		return 'a'
	case 'è', 'é', 'ê', 'ë':
		return 'e'
	case 'ì', 'í', 'î', 'ï':
		return 'i'
	case 'ò', 'ó', 'ô', 'õ', 'ö':
		return 'o'
	case 'ù', 'ú', 'û', 'ü':
		return 'u'
	case 'ý', 'ÿ':
		return 'y'
	case 'ç':
		return 'c'
	case 'ñ':
		return 'n'
	}
	return r
}

// levenshtein computes edit distance with unit costs, two-row DP
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
