package service

import (
	"context"
	"log"
)

// watWeetURound presents a subject and a shuffled mix of true facts and
// distractors under a per-question time budget. Each new correct fact
// scores immediately; finding them all grants a completion bonus and
// advances early, while the timer advances with whatever was accumulated.
type watWeetURound struct {
	baseRound
	factOptions []string
	found       map[string]struct{}
}

func (r *watWeetURound) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.startCommon() {
		return
	}
	r.present()
}

func (r *watWeetURound) present() {
	q := r.question()
	if len(q.FactOptions) == 0 {
		r.phase = PhaseErrored
		log.Printf("wat-weet-u question %s has no factOptions", q.ID)
		return
	}
	r.found = make(map[string]struct{})
	r.factOptions = shuffleStrings(q.FactOptions)
	r.phase = PhaseAwaitingInput
	r.armFactTimer(r.index)
}

// armFactTimer starts the per-question budget; a stale fire from an
// already-advanced question no-ops via the index check.
func (r *watWeetURound) armFactTimer(forIndex int) {
	r.sched.After(r.sessionID, r.cfg.FactTimeLimit, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.index != forIndex || r.phase != PhaseAwaitingInput {
			return
		}
		// Time's up: keep accumulated score, move on.
		r.advance(context.Background(), r.present)
	})
}

func (r *watWeetURound) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
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
	for _, fact := range q.Facts {
		if !Matches(sub.Text, fact, true) {
			continue
		}
		// Duplicates are tracked by matched canonical, so a near-
		// duplicate spelling of a found fact is still rejected.
		key := Normalize(fact)
		if _, dup := r.found[key]; dup {
			return nil, ErrAlreadyFound
		}
		r.found[key] = struct{}{}
		res.Correct = true
		res.Delta = factBonus
		res.FoundCount = len(r.found)
		if len(r.found) == len(q.Facts) {
			res.Delta += factCompletionBonus
			res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
			res.Advanced = true
			res.RoundComplete = r.advance(ctx, r.present)
			return res, nil
		}
		res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
		return res, nil
	}

	res.Delta = penaltyDelta
	res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
	res.FoundCount = len(r.found)
	return res, nil
}

func (r *watWeetURound) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotCommon()
	if r.phase == PhaseAwaitingInput {
		q := r.question()
		snap.Subject = q.Subject
		snap.Options = r.factOptions
		snap.FoundCount = len(r.found)
		snap.TargetCount = len(q.Facts)
	}
	return snap
}
