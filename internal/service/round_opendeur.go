package service

import (
	"context"
	"log"
)

// openDeurRound reveals hints one at a time; after two hints the shuffled
// multiple-choice options open up. One attempt per question: a correct
// pick (or an early free-text answer) scores, a wrong one reveals the
// answer and penalizes, and either way the round moves on.
type openDeurRound struct {
	baseRound
	revealedHints int
	optionsOpen   bool
	options       []string
}

func (r *openDeurRound) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.startCommon() {
		return
	}
	r.present()
}

func (r *openDeurRound) present() {
	q := r.question()
	if len(q.Options) == 0 {
		r.phase = PhaseErrored
		log.Printf("open-deur question %s has no options", q.ID)
		return
	}
	r.revealedHints = 1
	r.optionsOpen = false
	r.options = shuffleStrings(q.Options)
	r.phase = PhasePresenting
	r.scheduleHint(r.index)
}

// scheduleHint arms the next reveal. The captured question index lets a
// stale timer from an already-advanced question recognize itself.
func (r *openDeurRound) scheduleHint(forIndex int) {
	q := r.question()
	if r.revealedHints >= len(q.Hints) {
		return
	}
	r.sched.After(r.sessionID, r.cfg.HintInterval, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.index != forIndex || (r.phase != PhasePresenting && r.phase != PhaseAwaitingInput) {
			return
		}
		r.revealHint()
	})
}

func (r *openDeurRound) revealHint() {
	r.revealedHints++
	if r.revealedHints >= 2 {
		r.optionsOpen = true
		r.phase = PhaseAwaitingInput
	}
	r.scheduleHint(r.index)
}

func (r *openDeurRound) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkActive(); err != nil {
		return nil, err
	}
	if sub.Text == "" {
		return nil, ErrInvalidSubmission
	}

	q := r.question()
	res := &SubmitResult{}
	if Matches(sub.Text, q.Answer, true) {
		res.Correct = true
		res.Delta = openDeurBonus
	} else {
		res.Delta = penaltyDelta
		res.Revealed = []string{q.Answer}
	}
	res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
	res.Advanced = true
	res.RoundComplete = r.advance(ctx, r.present)
	return res, nil
}

func (r *openDeurRound) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotCommon()
	if r.phase == PhasePresenting || r.phase == PhaseAwaitingInput {
		q := r.question()
		n := r.revealedHints
		if n > len(q.Hints) {
			n = len(q.Hints)
		}
		snap.Hints = q.Hints[:n]
		snap.OptionsOpen = r.optionsOpen
		if r.optionsOpen {
			snap.Options = r.options
		}
	}
	return snap
}
