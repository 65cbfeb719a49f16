package service

import "context"

// puzzelRound asks for three answers at once. With wordOptions present the
// team picks 3 of 9 shuffled words (3 answers, 6 distractors) and only a
// fully correct triple scores; the legacy free-text shape pays per correct
// field instead. One submission per question.
type puzzelRound struct {
	baseRound
	wordOptions []string
}

func (r *puzzelRound) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.startCommon() {
		return
	}
	r.present()
}

func (r *puzzelRound) present() {
	q := r.question()
	if len(q.WordOptions) > 0 {
		r.wordOptions = shuffleStrings(q.WordOptions)
	} else {
		r.wordOptions = nil
	}
	r.phase = PhaseAwaitingInput
}

func (r *puzzelRound) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkActive(); err != nil {
		return nil, err
	}
	if len(sub.Texts) != 3 {
		return nil, ErrInvalidSubmission
	}

	q := r.question()
	answers := q.PuzzelAnswers()
	res := &SubmitResult{}

	if r.wordOptions != nil {
		// Selection variant: order-insensitive, all three must be right.
		if matchedCount(sub.Texts, answers) == 3 {
			res.Correct = true
			res.Delta = puzzelFullBonus
		} else {
			res.Delta = penaltyDelta
			res.Revealed = answers
		}
	} else {
		// Free-text variant: each field matches its own answer.
		correct := 0
		for i, text := range sub.Texts {
			if Matches(text, answers[i], true) {
				correct++
			}
		}
		res.Delta = correct * puzzelPartialBonus
		if correct == 3 {
			res.Correct = true
		} else {
			res.Delta += penaltyDelta
			res.Revealed = answers
		}
	}

	res.Seconds = r.sink.ApplyScoreDelta(ctx, res.Delta)
	res.Advanced = true
	res.RoundComplete = r.advance(ctx, r.present)
	return res, nil
}

func (r *puzzelRound) Snapshot() RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotCommon()
	if r.phase == PhaseAwaitingInput {
		q := r.question()
		snap.Clue = q.Question
		snap.Options = r.wordOptions
		snap.FreeText = r.wordOptions == nil
	}
	return snap
}

// matchedCount pairs each canonical answer with at most one distinct
// submission, so a repeated pick cannot count twice.
func matchedCount(submitted, canonical []string) int {
	used := make([]bool, len(submitted))
	count := 0
	for _, c := range canonical {
		for i, s := range submitted {
			if used[i] {
				continue
			}
			if Matches(s, c, true) {
				used[i] = true
				count++
				break
			}
		}
	}
	return count
}
