package service

import (
	"context"
	"math/rand"
	"strings"
)

// woordzoekerRound scrambles the answer's letters into tiles; the team
// composes a candidate of the same length. Unlike every other round a
// mismatch does not advance: the selection clears and the team retries.
type woordzoekerRound struct {
	baseRound
	tiles []string
}

func (r *woordzoekerRound) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.startCommon() {
		return
	}
	r.present()
}

func (r *woordzoekerRound) present() {
	r.tiles = scrambleLetters(r.question().Answer)
	r.phase = PhaseAwaitingInput
}

func (r *woordzoekerRound) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkActive(); err != nil {
		return nil, err
	}

	q := r.question()
	if len([]rune(sub.Text)) != len(r.tiles) {
		return nil, ErrInvalidSubmission
	}

	res := &SubmitResult{}
	if Matches(sub.Text, q.Answer, true) {
		res.Correct = true
		res.Delta = woordzoekerBonus
		res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
		res.Advanced = true
		res.RoundComplete = r.advance(ctx, r.present)
		return res, nil
	}

	// Retry: penalize, rescramble, stay on this question.
	res.Delta = penaltyDelta
	res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
	r.tiles = scrambleLetters(q.Answer)
	return res, nil
}

func (r *woordzoekerRound) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotCommon()
	if r.phase == PhaseAwaitingInput {
		snap.Clue = r.question().Question
		snap.Tiles = r.tiles
	}
	return snap
}

// scrambleLetters upper-cases the answer and Fisher-Yates shuffles its
// letters into clickable tiles.
func scrambleLetters(answer string) []string {
	runes := []rune(strings.ToUpper(answer))
	tiles := make([]string, len(runes))
	for i, ru := range runes {
		tiles[i] = string(ru)
	}
	for i := len(tiles) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
	return tiles
}
