package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hond", Normalize("  Hond  "))
	assert.Equal(t, "sint maarten", Normalize("Sint-Maarten!"))
	assert.Equal(t, "belgie", Normalize("België"))
	assert.Equal(t, "cafe creme", Normalize("Café  Crème"))
	assert.Equal(t, "dont", Normalize("don't"))
	assert.Equal(t, "", Normalize("  .,!  "))
}

func TestMatches_ExactAfterNormalization(t *testing.T) {
	assert.True(t, Matches("Hond", "hond", true))
	assert.True(t, Matches("  amsterdam ", "Amsterdam", false))
	assert.True(t, Matches("noord-holland", "Noord-Holland", false))
}

func TestMatches_FuzzyWithinLimit(t *testing.T) {
	// canonical length 4, limit 1
	assert.True(t, Matches("hund", "hond", true))
	assert.False(t, Matches("hand", "hond", false), "fuzzy disabled")

	// canonical length 9, limit 2
	assert.True(t, Matches("amsterdm", "amsterdam", true))
	assert.True(t, Matches("amstrdm", "amsterdam", true))
	assert.False(t, Matches("amstrd", "amsterdam", true), "three edits away")
}

func TestMatches_ShortAnswersNeverFuzzy(t *testing.T) {
	// canonical length <= 3 demands an exact match even with fuzzy on
	assert.False(t, Matches("ijq", "ijs", true))
	assert.True(t, Matches("IJS", "ijs", true))
}

func TestMatches_BoundaryAtEightRunes(t *testing.T) {
	// length 8 keeps the tight limit of 1
	assert.True(t, Matches("rainbowz", "rainbows", true))
	assert.False(t, Matches("rainbwzz", "rainbows", true))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("kaas", "kaas"))
	assert.Equal(t, 1, levenshtein("kaas", "klaas"))
	assert.Equal(t, 4, levenshtein("", "kaas"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}
