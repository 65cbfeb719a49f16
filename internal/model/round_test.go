package model_test

import (
	"testing"

	"deslimste/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRoundOrder(t *testing.T) {
	assert.Equal(t, []model.RoundType{
		model.RoundOpenDeur,
		model.RoundPuzzel,
		model.RoundWoordzoeker,
		model.RoundWatWeetU,
		model.RoundCollectiefGeheugen,
	}, model.RoundOrder)
}

func TestRoundIndex(t *testing.T) {
	assert.Equal(t, 0, model.RoundIndex(model.RoundOpenDeur))
	assert.Equal(t, 4, model.RoundIndex(model.RoundCollectiefGeheugen))
	assert.Equal(t, -1, model.RoundIndex(model.RoundType("galerij")))
}

func TestParseRoundType(t *testing.T) {
	rt, ok := model.ParseRoundType("wat-weet-u")
	assert.True(t, ok)
	assert.Equal(t, model.RoundWatWeetU, rt)

	_, ok = model.ParseRoundType("bogus")
	assert.False(t, ok)
}

func TestGameModePresets(t *testing.T) {
	preset, ok := model.ModeTest.Preset()
	assert.True(t, ok)
	assert.Equal(t, 1, preset.QuestionCap)

	preset, ok = model.ModeLong.Preset()
	assert.True(t, ok)
	assert.Equal(t, 5, preset.QuestionCap)

	assert.True(t, model.ModeNormal.Valid())
	assert.False(t, model.GameMode("marathon").Valid())
}

func TestGameStatePhase(t *testing.T) {
	var gs model.GameState
	assert.Equal(t, model.PhaseUnconfigured, gs.Phase())

	gs = model.GameState{FamilyName: "Meijers", Mode: model.ModeNormal, PinCode: "1234"}
	assert.Equal(t, model.PhaseLobby, gs.Phase())

	gs.GameStarted = true
	assert.Equal(t, model.PhaseStarted, gs.Phase())
}

func TestTeamHasCompleted(t *testing.T) {
	team := model.NewTeam("Alpha", []string{"Anna"})
	assert.Equal(t, model.InitialSeconds, team.Seconds)
	assert.False(t, team.HasCompleted(model.RoundOpenDeur))

	team.CompletedRounds = append(team.CompletedRounds, model.RoundOpenDeur)
	assert.True(t, team.HasCompleted(model.RoundOpenDeur))
	assert.False(t, team.HasCompleted(model.RoundPuzzel))
}
