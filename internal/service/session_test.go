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

// fullRepo holds one feature-complete question per round type
func fullRepo() *stubQuestionRepo {
	return &stubQuestionRepo{byType: map[model.RoundType][]model.Question{
		model.RoundOpenDeur: {{
			Type:    model.RoundOpenDeur,
			Hints:   []string{"Dit is een dier", "Het blaft"},
			Answer:  "hond",
			Options: []string{"hond", "kat", "paard", "konijn"},
		}},
		model.RoundPuzzel: {{
			Type:        model.RoundPuzzel,
			Answer1:     "Fiets",
			Answer2:     "Auto",
			Answer3:     "Trein",
			WordOptions: []string{"Fiets", "Auto", "Trein", "Boot", "Paard", "Step", "Bus", "Tram", "Metro"},
		}},
		model.RoundWoordzoeker: {{
			Type:     model.RoundWoordzoeker,
			Question: "De hoofdstad van Nederland",
			Answer:   "AMSTERDAM",
		}},
		model.RoundWatWeetU: {{
			Type:        model.RoundWatWeetU,
			Subject:     "De Zon",
			Facts:       []string{"Is een ster", "Geeft licht"},
			FactOptions: []string{"Is een ster", "Geeft licht", "Is een planeet", "Is koud"},
		}},
		model.RoundCollectiefGeheugen: {{
			Type:        model.RoundCollectiefGeheugen,
			Category:    "Seizoenen",
			Answers:     []string{"lente", "zomer", "herfst", "winter"},
			ItemOptions: []string{"lente", "zomer", "herfst", "winter", "januari", "pasen"},
		}},
	}}
}

type gameFixture struct {
	store     store.Store
	lifecycle *Lifecycle
	sessions  *SessionManager
	pin       string
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	st := store.NewMemory()
	supplier := NewQuestionSupplier(fullRepo(), st)
	lifecycle := NewLifecycle(st, supplier)
	sessions := NewSessionManager(st, supplier, lifecycle, NewScheduler())

	gs, err := lifecycle.Configure(context.Background(), "Meijers", model.ModeTest, "geheim")
	require.NoError(t, err)

	return &gameFixture{store: st, lifecycle: lifecycle, sessions: sessions, pin: gs.PinCode}
}

func (f *gameFixture) join(t *testing.T, name string) string {
	t.Helper()
	team, err := f.lifecycle.JoinTeam(context.Background(), name, nil, f.pin)
	require.NoError(t, err)
	return team.ID
}

func TestStartRound_RequiresStartedGame(t *testing.T) {
	f := newGameFixture(t)
	alpha := f.join(t, "Alpha")

	_, err := f.sessions.StartRound(context.Background(), alpha, model.RoundOpenDeur)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStartRound_UnknownTeam(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.lifecycle.Start(context.Background()))

	_, err := f.sessions.StartRound(context.Background(), "ghost", model.RoundOpenDeur)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestStartRound_EnforcesGating(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	require.NoError(t, f.lifecycle.Start(ctx))

	_, err := f.sessions.StartRound(ctx, alpha, model.RoundPuzzel)
	assert.ErrorIs(t, err, ErrRoundLocked)
}

func TestActiveEngine_NoRoundRunning(t *testing.T) {
	f := newGameFixture(t)
	alpha := f.join(t, "Alpha")

	_, err := f.sessions.ActiveEngine(alpha, model.RoundOpenDeur)
	assert.ErrorIs(t, err, ErrRoundNotActive)
}

func TestLeaveRound_DropsEngine(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	require.NoError(t, f.lifecycle.Start(ctx))

	engine, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)

	f.sessions.LeaveRound(ctx, alpha)
	assert.Equal(t, PhaseIdle, engine.Phase())

	_, err = f.sessions.ActiveEngine(alpha, model.RoundOpenDeur)
	assert.ErrorIs(t, err, ErrRoundNotActive)

	// Leaving forfeits nothing: the round can be restarted.
	_, err = f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)
}

func TestSubmit_WrongRoundType(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	require.NoError(t, f.lifecycle.Start(ctx))

	_, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)

	_, err = f.sessions.Submit(ctx, alpha, model.RoundPuzzel, Submission{Texts: []string{"a", "b", "c"}})
	assert.ErrorIs(t, err, ErrRoundNotActive)
}

func TestTwoTeamGameFlow(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	beta := f.join(t, "Beta")
	require.NoError(t, f.lifecycle.Start(ctx))

	// Alpha plays open-deur and answers correctly.
	_, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)
	res, err := f.sessions.Submit(ctx, alpha, model.RoundOpenDeur, Submission{Text: "Hond"})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.True(t, res.RoundComplete)
	assert.Equal(t, 75, res.Seconds, "60 + 15; the speed bonus lands at completion")

	progress, err := f.sessions.Progress(ctx, alpha)
	require.NoError(t, err)
	assert.Equal(t, 85, progress.Team().Seconds, "speed bonus applied")

	// Puzzel stays locked for Alpha until Beta finishes round one.
	_, err = f.sessions.StartRound(ctx, alpha, model.RoundPuzzel)
	assert.ErrorIs(t, err, ErrRoundLocked)

	// Beta misses the answer; the single test-mode question still ends
	// the round, with the penalty applied and no correctness bonus.
	_, err = f.sessions.StartRound(ctx, beta, model.RoundOpenDeur)
	require.NoError(t, err)
	res, err = f.sessions.Submit(ctx, beta, model.RoundOpenDeur, Submission{Text: "kat"})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.RoundComplete)
	assert.Equal(t, 55, res.Seconds, "60 - 5 penalty; bonus follows at completion")

	// Beta's completion is replicated, so the gate opens for both.
	engine, err := f.sessions.StartRound(ctx, alpha, model.RoundPuzzel)
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingInput, engine.Phase())

	// Completion also landed in the replicated team records.
	require.Eventually(t, func() bool {
		teams, err := f.lifecycle.ListTeams(ctx)
		if err != nil || len(teams) != 2 {
			return false
		}
		for _, team := range teams {
			if !team.HasCompleted(model.RoundOpenDeur) {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func TestClear_DropsAllSessions(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	require.NoError(t, f.lifecycle.Start(ctx))

	engine, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)

	f.sessions.Clear(ctx)
	assert.Equal(t, PhaseIdle, engine.Phase())

	_, err = f.sessions.ActiveEngine(alpha, model.RoundOpenDeur)
	assert.ErrorIs(t, err, ErrRoundNotActive)
}

func TestSoftResetThenRestartReplaysFromScratch(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	alpha := f.join(t, "Alpha")
	require.NoError(t, f.lifecycle.Start(ctx))

	_, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)
	_, err = f.sessions.Submit(ctx, alpha, model.RoundOpenDeur, Submission{Text: "hond"})
	require.NoError(t, err)

	// Wait for the asynchronous score persist to settle so the reset
	// below cannot lose the race against it.
	require.Eventually(t, func() bool {
		team, err := f.lifecycle.GetTeam(ctx, alpha)
		return err == nil && team.Seconds == 85
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.lifecycle.SoftReset(ctx))
	f.sessions.Clear(ctx)
	require.NoError(t, f.lifecycle.Start(ctx))

	// The fresh session reads the reset team record: open-deur is
	// playable again with the initial score.
	engine, err := f.sessions.StartRound(ctx, alpha, model.RoundOpenDeur)
	require.NoError(t, err)
	require.NotNil(t, engine)

	progress, err := f.sessions.Progress(ctx, alpha)
	require.NoError(t, err)
	assert.Equal(t, model.InitialSeconds, progress.Team().Seconds)
}
