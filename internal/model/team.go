package model

import "time"

// InitialSeconds is every team's starting score
const InitialSeconds = 60

// MaxPlayers caps the number of named players per team
const MaxPlayers = 4

// Team represents one registered group of players
type Team struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	Name            string      `json:"name" bson:"name"`
	Players         []string    `json:"players" bson:"players"`
	Seconds         int         `json:"seconds" bson:"seconds"`
	CompletedRounds []RoundType `json:"completedRounds" bson:"completedRounds"`
	Ready           bool        `json:"ready" bson:"ready"`
	Timestamp       time.Time   `json:"timestamp" bson:"timestamp"`
}

// NewTeam creates a team with the initial score and no progress
func NewTeam(name string, players []string) *Team {
	return &Team{
		Name:            name,
		Players:         players,
		Seconds:         InitialSeconds,
		CompletedRounds: []RoundType{},
		Timestamp:       time.Now(),
	}
}

// HasCompleted reports whether rt is in the team's completed list
func (t *Team) HasCompleted(rt RoundType) bool {
	for _, r := range t.CompletedRounds {
		if r == rt {
			return true
		}
	}
	return false
}
