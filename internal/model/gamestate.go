package model

// GamePhase is the global lifecycle phase, derived from the game state
// document rather than stored directly.
type GamePhase string

const (
	PhaseUnconfigured GamePhase = "unconfigured"
	PhaseLobby        GamePhase = "lobby"
	PhaseStarted      GamePhase = "started"
)

// GameState is the process-wide singleton configuration document. The
// per-round shared question lists live next to it in the store under
// gameState/roundQuestions/{roundType}.
type GameState struct {
	FamilyName    string   `json:"familyName"`
	Mode          GameMode `json:"mode"`
	PinCode       string   `json:"pinCode"`
	GameStarted   bool     `json:"gameStarted"`
	AdminPassword string   `json:"adminPassword"`
}

// Configured reports whether the admin has completed first-run setup
func (g *GameState) Configured() bool {
	return g.FamilyName != "" && g.Mode != "" && g.PinCode != ""
}

// Phase derives the lifecycle phase from the state document
func (g *GameState) Phase() GamePhase {
	switch {
	case g == nil || !g.Configured():
		return PhaseUnconfigured
	case g.GameStarted:
		return PhaseStarted
	default:
		return PhaseLobby
	}
}
