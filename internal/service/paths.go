package service

import "deslimste/internal/model"

// Store path layout. Teams and game configuration live in the replicated
// store so every connected client observes changes live.
const (
	teamsPath     = "teams"
	gameStatePath = "gameState"
)

func teamPath(id string) string {
	return teamsPath + "/" + id
}

func roundQuestionsPath(rt model.RoundType) string {
	return gameStatePath + "/roundQuestions/" + string(rt)
}
