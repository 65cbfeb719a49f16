package service

import (
	"context"
	"fmt"
	"sync"

	"deslimste/internal/model"
	"deslimste/internal/store"
)

// SessionManager holds each connected team's session context: its
// progress coordinator and, while a round is being played, the active
// round engine. It replaces the original app's ambient globals with one
// registry created on join and cleared on reset.
type SessionManager struct {
	mu        sync.Mutex
	store     store.Store
	supplier  *QuestionSupplier
	lifecycle *Lifecycle
	sched     *Scheduler
	sessions  map[string]*TeamSession
}

// TeamSession is one team's in-memory session context
type TeamSession struct {
	Progress *TeamProgress
	Engine   RoundEngine
}

// NewSessionManager creates the session registry
func NewSessionManager(st store.Store, supplier *QuestionSupplier, lifecycle *Lifecycle, sched *Scheduler) *SessionManager {
	return &SessionManager{
		store:     st,
		supplier:  supplier,
		lifecycle: lifecycle,
		sched:     sched,
		sessions:  make(map[string]*TeamSession),
	}
}

// session returns the team's session, creating it from the replicated
// team record on first use.
func (m *SessionManager) session(ctx context.Context, teamID string) (*TeamSession, error) {
	m.mu.Lock()
	if s, ok := m.sessions[teamID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	team, err := m.lifecycle.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[teamID]; ok {
		return s, nil
	}
	s := &TeamSession{Progress: NewTeamProgress(m.store, team)}
	m.sessions[teamID] = s
	return s, nil
}

// Progress exposes a team's progress coordinator
func (m *SessionManager) Progress(ctx context.Context, teamID string) (*TeamProgress, error) {
	s, err := m.session(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.Progress, nil
}

// StartRound builds and starts a fresh engine for the team. The gating
// invariant is enforced here: a locked round is rejected before any
// content is supplied.
func (m *SessionManager) StartRound(ctx context.Context, teamID string, rt model.RoundType) (RoundEngine, error) {
	gs, err := m.lifecycle.State(ctx)
	if err != nil {
		return nil, err
	}
	if !gs.GameStarted {
		return nil, ErrNotStarted
	}

	s, err := m.session(ctx, teamID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Progress.CanEnter(ctx, rt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoundLocked
	}

	questions, err := m.supplier.Supply(ctx, rt, gs.Mode)
	if err != nil {
		return nil, err
	}

	preset, _ := gs.Mode.Preset()
	engine := NewRoundEngine(rt, questions, s.Progress, m.sched, DefaultEngineConfig(preset))

	m.mu.Lock()
	if s.Engine != nil {
		s.Engine.Leave(ctx)
	}
	s.Engine = engine
	m.mu.Unlock()

	engine.Start(ctx)
	return engine, nil
}

// ActiveEngine returns the team's current round engine for rt
func (m *SessionManager) ActiveEngine(teamID string, rt model.RoundType) (RoundEngine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[teamID]
	if !ok || s.Engine == nil {
		return nil, ErrRoundNotActive
	}
	if s.Engine.Type() != rt {
		return nil, fmt.Errorf("%w: active round is %s", ErrRoundNotActive, s.Engine.Type())
	}
	return s.Engine, nil
}

// Submit forwards a submission to the team's active engine
func (m *SessionManager) Submit(ctx context.Context, teamID string, rt model.RoundType, sub Submission) (*SubmitResult, error) {
	engine, err := m.ActiveEngine(teamID, rt)
	if err != nil {
		return nil, err
	}
	return engine.Submit(ctx, sub)
}

// LeaveRound cancels the team's active round, if any. Pending reveal and
// timeout timers recognize the dead session and no-op.
func (m *SessionManager) LeaveRound(ctx context.Context, teamID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[teamID]
	if !ok || s.Engine == nil {
		return
	}
	s.Engine.Leave(ctx)
	s.Engine = nil
}

// Clear drops all in-memory sessions (used by resets)
func (m *SessionManager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Engine != nil {
			s.Engine.Leave(ctx)
		}
	}
	m.sessions = make(map[string]*TeamSession)
}
