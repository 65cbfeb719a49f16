package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"deslimste/internal/model"
	"deslimste/internal/store"
)

// Lifecycle models the global game phases and mediates between lobby
// readiness and round unlocking. All state lives in the replicated store;
// this controller is stateless between calls.
type Lifecycle struct {
	store    store.Store
	supplier *QuestionSupplier
}

// NewLifecycle creates the lifecycle controller
func NewLifecycle(st store.Store, supplier *QuestionSupplier) *Lifecycle {
	return &Lifecycle{store: st, supplier: supplier}
}

// State reads the current game state document; absent fields yield the
// zero value, which Phase maps to unconfigured.
func (l *Lifecycle) State(ctx context.Context) (*model.GameState, error) {
	var gs model.GameState
	if _, err := l.store.Get(ctx, gameStatePath, &gs); err != nil {
		return nil, fmt.Errorf("failed to read game state: %w", err)
	}
	return &gs, nil
}

// Configure performs (re-)setup: family name, mode, and on first run the
// admin password. Every configuration reissues the join PIN.
func (l *Lifecycle) Configure(ctx context.Context, familyName string, mode model.GameMode, adminPassword string) (*model.GameState, error) {
	if strings.TrimSpace(familyName) == "" {
		return nil, fmt.Errorf("family name must not be empty")
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	gs, err := l.State(ctx)
	if err != nil {
		return nil, err
	}
	if gs.GameStarted {
		return nil, ErrAlreadyStarted
	}

	gs.FamilyName = strings.TrimSpace(familyName)
	gs.Mode = mode
	if gs.AdminPassword == "" {
		// Set once, first run only; later reconfigurations keep it.
		if adminPassword == "" {
			return nil, fmt.Errorf("admin password required on first configuration")
		}
		gs.AdminPassword = adminPassword
	}
	pin, err := generatePIN()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pin: %w", err)
	}
	gs.PinCode = pin

	if err := l.store.Set(ctx, gameStatePath, gs); err != nil {
		return nil, fmt.Errorf("failed to persist game state: %w", err)
	}
	log.Printf("game configured for %q, mode %s", gs.FamilyName, gs.Mode)
	return gs, nil
}

// Start flips the game into the started phase. Shared question generation
// happens first so every team sees the same lists the moment gameStarted
// lands; generation is idempotent against retried starts.
func (l *Lifecycle) Start(ctx context.Context) error {
	gs, err := l.State(ctx)
	if err != nil {
		return err
	}
	if !gs.Configured() {
		return ErrNotConfigured
	}
	if gs.GameStarted {
		return ErrAlreadyStarted
	}

	if err := l.supplier.GenerateShared(ctx, gs.Mode); err != nil {
		return err
	}
	if err := l.store.Update(ctx, gameStatePath, map[string]interface{}{
		"gameStarted": true,
	}); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	log.Printf("game started")
	return nil
}

// SoftReset ends the game and returns everyone to the lobby: scores back
// to the initial value, progress and readiness cleared, shared questions
// dropped so the next start reshuffles. Team identities survive.
func (l *Lifecycle) SoftReset(ctx context.Context) error {
	if err := l.store.Update(ctx, gameStatePath, map[string]interface{}{
		"gameStarted": false,
	}); err != nil {
		return fmt.Errorf("failed to stop game: %w", err)
	}
	if err := l.supplier.ClearShared(ctx); err != nil {
		return fmt.Errorf("failed to clear shared questions: %w", err)
	}

	teams, err := l.store.List(ctx, teamsPath)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}
	for id := range teams {
		err := l.store.Update(ctx, teamPath(id), map[string]interface{}{
			"seconds":         model.InitialSeconds,
			"completedRounds": []model.RoundType{},
			"ready":           false,
		})
		if err != nil {
			return fmt.Errorf("failed to reset team %s: %w", id, err)
		}
	}
	log.Printf("soft reset: %d teams returned to lobby", len(teams))
	return nil
}

// HardReset discards all teams and the entire game configuration
func (l *Lifecycle) HardReset(ctx context.Context) error {
	if err := l.store.Remove(ctx, teamsPath); err != nil {
		return fmt.Errorf("failed to remove teams: %w", err)
	}
	if err := l.store.Remove(ctx, gameStatePath); err != nil {
		return fmt.Errorf("failed to remove game state: %w", err)
	}
	log.Printf("hard reset: all teams and configuration removed")
	return nil
}

// JoinTeam registers a team after validating the current PIN. A rejected
// join has no side effects.
func (l *Lifecycle) JoinTeam(ctx context.Context, name string, players []string, pin string) (*model.Team, error) {
	gs, err := l.State(ctx)
	if err != nil {
		return nil, err
	}
	if !gs.Configured() {
		return nil, ErrNotConfigured
	}
	if pin != gs.PinCode {
		return nil, ErrWrongPIN
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyTeamName
	}

	kept := make([]string, 0, len(players))
	for _, p := range players {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
		if len(kept) == model.MaxPlayers {
			break
		}
	}

	team := model.NewTeam(strings.TrimSpace(name), kept)
	id, err := l.store.Push(ctx, teamsPath, team)
	if err != nil {
		return nil, fmt.Errorf("failed to register team: %w", err)
	}
	team.ID = id
	log.Printf("team %q joined with %d players", team.Name, len(kept))
	return team, nil
}

// SetReady toggles a team's lobby ready flag
func (l *Lifecycle) SetReady(ctx context.Context, teamID string, ready bool) error {
	var t model.Team
	ok, err := l.store.Get(ctx, teamPath(teamID), &t)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTeamNotFound
	}
	return l.store.Update(ctx, teamPath(teamID), map[string]interface{}{
		"ready": ready,
	})
}

// AllReady reports whether every registered team toggled ready. It only
// surfaces an indicator; starting the game remains an explicit admin
// action.
func (l *Lifecycle) AllReady(ctx context.Context) (bool, error) {
	teams, err := l.ListTeams(ctx)
	if err != nil {
		return false, err
	}
	if len(teams) == 0 {
		return false, nil
	}
	for _, t := range teams {
		if !t.Ready {
			return false, nil
		}
	}
	return true, nil
}

// ListTeams reads all registered teams from the store
func (l *Lifecycle) ListTeams(ctx context.Context) ([]model.Team, error) {
	raw, err := l.store.List(ctx, teamsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]model.Team, 0, len(raw))
	for id, doc := range raw {
		var t model.Team
		if err := json.Unmarshal(doc, &t); err != nil {
			log.Printf("skipping unreadable team record %s: %v", id, err)
			continue
		}
		t.ID = id
		teams = append(teams, t)
	}
	return teams, nil
}

// GetTeam reads one team record
func (l *Lifecycle) GetTeam(ctx context.Context, teamID string) (*model.Team, error) {
	var t model.Team
	ok, err := l.store.Get(ctx, teamPath(teamID), &t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTeamNotFound
	}
	t.ID = teamID
	return &t, nil
}

// DeleteTeam removes a single team record
func (l *Lifecycle) DeleteTeam(ctx context.Context, teamID string) error {
	return l.store.Remove(ctx, teamPath(teamID))
}

// generatePIN draws a random 4-digit join code
func generatePIN() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	pin := make([]byte, 4)
	for i := range pin {
		pin[i] = '0' + b[i]%10
	}
	return string(pin), nil
}
