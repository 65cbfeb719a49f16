package model

import "time"

// GameMode names a difficulty/duration preset
type GameMode string

const (
	ModeTest   GameMode = "test"
	ModeShort  GameMode = "short"
	ModeNormal GameMode = "normal"
	ModeLong   GameMode = "long"
)

// ModePreset holds the build-time tuning of a game mode
type ModePreset struct {
	// QuestionCap limits the shared question list per round type; 0 means
	// no cap.
	QuestionCap int
	// RoundTimeLimit bounds a whole round; elapsing it force-completes
	// the round.
	RoundTimeLimit time.Duration
}

var modePresets = map[GameMode]ModePreset{
	ModeTest:   {QuestionCap: 1, RoundTimeLimit: 60 * time.Second},
	ModeShort:  {QuestionCap: 2, RoundTimeLimit: 3 * time.Minute},
	ModeNormal: {QuestionCap: 3, RoundTimeLimit: 5 * time.Minute},
	ModeLong:   {QuestionCap: 5, RoundTimeLimit: 10 * time.Minute},
}

// Preset returns the tuning for a mode and whether the mode exists
func (m GameMode) Preset() (ModePreset, bool) {
	p, ok := modePresets[m]
	return p, ok
}

// Valid reports whether m names a known preset
func (m GameMode) Valid() bool {
	_, ok := modePresets[m]
	return ok
}
