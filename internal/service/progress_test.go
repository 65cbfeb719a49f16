package service

import (
	"context"
	"testing"
	"time"

	"deslimste/internal/model"
	"deslimste/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerTeam pushes a fresh team into the store and returns its wrapped
// progress coordinator.
func registerTeam(t *testing.T, st store.Store, name string) *TeamProgress {
	t.Helper()
	team := model.NewTeam(name, []string{"Speler"})
	id, err := st.Push(context.Background(), teamsPath, team)
	require.NoError(t, err)
	team.ID = id
	return NewTeamProgress(st, team)
}

func TestApplyScoreDelta_ClampsAtZero(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	assert.Equal(t, 55, p.ApplyScoreDelta(ctx, -5))
	assert.Equal(t, 0, p.ApplyScoreDelta(ctx, -100))
	assert.Equal(t, 10, p.ApplyScoreDelta(ctx, 10))
}

func TestApplyScoreDelta_PersistsToStore(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()
	id := p.Team().ID

	p.ApplyScoreDelta(ctx, 15)

	// Persistence is asynchronous; poll the replicated record.
	require.Eventually(t, func() bool {
		var stored model.Team
		ok, err := st.Get(ctx, teamPath(id), &stored)
		return err == nil && ok && stored.Seconds == 75
	}, time.Second, 5*time.Millisecond)
}

func TestRecordCompletion_IsIdempotent(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	require.NoError(t, p.RecordCompletion(ctx, model.RoundOpenDeur))
	require.NoError(t, p.RecordCompletion(ctx, model.RoundOpenDeur))

	team := p.Team()
	assert.Equal(t, []model.RoundType{model.RoundOpenDeur}, team.CompletedRounds)

	var stored model.Team
	ok, err := st.Get(ctx, teamPath(team.ID), &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []model.RoundType{model.RoundOpenDeur}, stored.CompletedRounds)
}

func TestCanEnter_FirstRoundForFreshTeam(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	ok, err := p.CanEnter(ctx, model.RoundOpenDeur)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanEnter(ctx, model.RoundPuzzel)
	require.NoError(t, err)
	assert.False(t, ok, "later rounds stay locked")
}

func TestCanEnter_WaitsForOtherTeams(t *testing.T) {
	st := store.NewMemory()
	alpha := registerTeam(t, st, "Alpha")
	beta := registerTeam(t, st, "Beta")
	ctx := context.Background()

	// Alpha finishes round one; Beta has not.
	require.NoError(t, alpha.RecordCompletion(ctx, model.RoundOpenDeur))

	ok, err := alpha.CanEnter(ctx, model.RoundPuzzel)
	require.NoError(t, err)
	assert.False(t, ok, "puzzel stays locked until every team finished open-deur")

	require.NoError(t, beta.RecordCompletion(ctx, model.RoundOpenDeur))

	ok, err = alpha.CanEnter(ctx, model.RoundPuzzel)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanEnter_SoloTeamIsNeverGated(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	for _, rt := range model.RoundOrder {
		ok, err := p.CanEnter(ctx, rt)
		require.NoError(t, err)
		assert.True(t, ok, "round %s should be enterable", rt)
		require.NoError(t, p.RecordCompletion(ctx, rt))
	}

	ok, err := p.CanEnter(ctx, model.RoundOpenDeur)
	require.NoError(t, err)
	assert.False(t, ok, "completed rounds are not re-enterable")
}

func TestCanEnter_UnknownRound(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")

	_, err := p.CanEnter(context.Background(), model.RoundType("bogus"))
	assert.Error(t, err)
}

func TestEnterableRounds(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	rounds, err := p.EnterableRounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.RoundType{model.RoundOpenDeur}, rounds)

	require.NoError(t, p.RecordCompletion(ctx, model.RoundOpenDeur))

	rounds, err = p.EnterableRounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.RoundType{model.RoundPuzzel}, rounds)
}

func TestReload_PicksUpExternalReset(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()
	id := p.Team().ID

	require.NoError(t, p.RecordCompletion(ctx, model.RoundOpenDeur))

	// Another client resets the team record.
	require.NoError(t, st.Update(ctx, teamPath(id), map[string]interface{}{
		"seconds":         model.InitialSeconds,
		"completedRounds": []model.RoundType{},
	}))

	require.NoError(t, p.Reload(ctx))
	team := p.Team()
	assert.Equal(t, model.InitialSeconds, team.Seconds)
	assert.Empty(t, team.CompletedRounds)
}

func TestReload_MissingTeam(t *testing.T) {
	st := store.NewMemory()
	p := registerTeam(t, st, "Alpha")
	ctx := context.Background()

	require.NoError(t, st.Remove(ctx, teamPath(p.Team().ID)))
	assert.ErrorIs(t, p.Reload(ctx), ErrTeamNotFound)
}

func TestWatch_NotifiesOnTeamChanges(t *testing.T) {
	st := store.NewMemory()
	alpha := registerTeam(t, st, "Alpha")
	beta := registerTeam(t, st, "Beta")
	ctx := context.Background()

	calls := 0
	unsub := alpha.Watch(func() { calls++ })
	defer unsub()
	require.Equal(t, 1, calls, "initial delivery")

	require.NoError(t, beta.RecordCompletion(ctx, model.RoundOpenDeur))
	assert.Equal(t, 2, calls, "another team's progress is visible")
}
