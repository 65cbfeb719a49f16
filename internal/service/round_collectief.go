package service

import (
	"context"
	"log"
)

// collectiefRound names a category; the team picks its members from a
// shuffled mix of members and distractors. Correct picks score as they
// land, finding everything pays the round bonus, and a third mistake
// aborts the question with the remaining answers revealed.
type collectiefRound struct {
	baseRound
	itemOptions []string
	found       map[string]struct{}
	mistakes    int
}

func (r *collectiefRound) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.startCommon() {
		return
	}
	r.present()
}

func (r *collectiefRound) present() {
	q := r.question()
	if len(q.ItemOptions) == 0 {
		r.phase = PhaseErrored
		log.Printf("collectief-geheugen question %s has no itemOptions", q.ID)
		return
	}
	r.found = make(map[string]struct{})
	r.mistakes = 0
	r.itemOptions = shuffleStrings(q.ItemOptions)
	r.phase = PhaseAwaitingInput
}

func (r *collectiefRound) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
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
	for _, answer := range q.Answers {
		if !Matches(sub.Text, answer, true) {
			continue
		}
		key := Normalize(answer)
		if _, dup := r.found[key]; dup {
			return nil, ErrAlreadyFound
		}
		r.found[key] = struct{}{}
		res.Correct = true
		res.Delta = itemBonus
		res.FoundCount = len(r.found)
		if len(r.found) == len(q.Answers) {
			res.Delta += itemCompletionBonus
			res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
			res.Advanced = true
			res.RoundComplete = r.advance(ctx, r.present)
			return res, nil
		}
		res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
		return res, nil
	}

	r.mistakes++
	res.Delta = penaltyDelta
	res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
	res.FoundCount = len(r.found)
	if r.mistakes >= collectiefMaxMistakes {
		res.Revealed = r.unfoundAnswers(q.Answers)
		res.Advanced = true
		res.RoundComplete = r.advance(ctx, r.present)
	}
	return res, nil
}

func (r *collectiefRound) unfoundAnswers(answers []string) []string {
	var out []string
	for _, a := range answers {
		if _, ok := r.found[Normalize(a)]; !ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *collectiefRound) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotCommon()
	if r.phase == PhaseAwaitingInput {
		q := r.question()
		snap.Category = q.Category
		snap.Options = r.itemOptions
		snap.FoundCount = len(r.found)
		snap.TargetCount = len(q.Answers)
		snap.Mistakes = r.mistakes
	}
	return snap
}
