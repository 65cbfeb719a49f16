package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"deslimste/internal/model"
	"deslimste/internal/store"
)

// TeamProgress owns one team's score and completed-round list and keeps
// them replicated. Score updates are optimistic: the local value moves
// immediately and persistence runs in the background; a failed write is
// logged and tolerated until the next successful one.
type TeamProgress struct {
	mu    sync.Mutex
	store store.Store
	team  *model.Team
}

// NewTeamProgress wraps a registered team
func NewTeamProgress(st store.Store, team *model.Team) *TeamProgress {
	return &TeamProgress{store: st, team: team}
}

// Team returns a copy of the current local team record
func (p *TeamProgress) Team() model.Team {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := *p.team
	t.Players = append([]string(nil), p.team.Players...)
	t.CompletedRounds = append([]model.RoundType(nil), p.team.CompletedRounds...)
	return t
}

// ApplyScoreDelta adjusts the score, clamped at zero, and persists it
// asynchronously. Returns the new local score.
func (p *TeamProgress) ApplyScoreDelta(ctx context.Context, delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.team.Seconds += delta
	if p.team.Seconds < 0 {
		p.team.Seconds = 0
	}
	seconds := p.team.Seconds

	go func() {
		err := p.store.Update(context.Background(), teamPath(p.team.ID), map[string]interface{}{
			"seconds": seconds,
		})
		if err != nil {
			log.Printf("failed to persist score for team %s: %v", p.team.ID, err)
		}
	}()
	return seconds
}

// RecordCompletion appends rt to the completed list, once, and persists
// score and progress together.
func (p *TeamProgress) RecordCompletion(ctx context.Context, rt model.RoundType) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.team.HasCompleted(rt) {
		return nil
	}
	p.team.CompletedRounds = append(p.team.CompletedRounds, rt)

	err := p.store.Update(ctx, teamPath(p.team.ID), map[string]interface{}{
		"seconds":         p.team.Seconds,
		"completedRounds": p.team.CompletedRounds,
	})
	if err != nil {
		return fmt.Errorf("failed to persist completion of %s: %w", rt, err)
	}
	return nil
}

// CanEnter reports whether the team may start rt. The round at index i is
// enterable iff it is the team's next round and every registered team has
// completed round i-1; with a single team the cross-team check is
// trivially satisfied.
func (p *TeamProgress) CanEnter(ctx context.Context, rt model.RoundType) (bool, error) {
	idx := model.RoundIndex(rt)
	if idx < 0 {
		return false, fmt.Errorf("unknown round type %q", rt)
	}
	p.mu.Lock()
	completed := len(p.team.CompletedRounds)
	ownID := p.team.ID
	p.mu.Unlock()
	if completed != idx {
		return false, nil
	}
	if idx == 0 {
		return true, nil
	}

	prev := model.RoundOrder[idx-1]
	teams, err := p.store.List(ctx, teamsPath)
	if err != nil {
		return false, fmt.Errorf("failed to list teams: %w", err)
	}
	for id, raw := range teams {
		if id == ownID {
			continue // local copy is authoritative for ourselves
		}
		var t model.Team
		if err := json.Unmarshal(raw, &t); err != nil {
			log.Printf("skipping unreadable team record %s: %v", id, err)
			continue
		}
		if !t.HasCompleted(prev) {
			return false, nil
		}
	}
	return true, nil
}

// EnterableRounds derives which rounds are currently unlocked. It is a
// pure function of the replicated state, recomputed on demand rather
// than stored.
func (p *TeamProgress) EnterableRounds(ctx context.Context) ([]model.RoundType, error) {
	var out []model.RoundType
	for _, rt := range model.RoundOrder {
		ok, err := p.CanEnter(ctx, rt)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rt)
		}
	}
	return out, nil
}

// Watch subscribes to the replicated team collection so gating can be
// re-evaluated whenever any team's progress changes. Returns the
// unsubscribe handle.
func (p *TeamProgress) Watch(onChange func()) func() {
	return p.store.Subscribe(teamsPath, func(string) {
		onChange()
	})
}

// Reload refreshes the local record from the store, e.g. after a reset
// initiated by another client.
func (p *TeamProgress) Reload(ctx context.Context) error {
	p.mu.Lock()
	id := p.team.ID
	p.mu.Unlock()

	var t model.Team
	ok, err := p.store.Get(ctx, teamPath(id), &t)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTeamNotFound
	}
	t.ID = id

	p.mu.Lock()
	*p.team = t
	p.mu.Unlock()
	return nil
}
