package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"deslimste/internal/model"
	"deslimste/internal/repository"
	"deslimste/internal/store"
)

// QuestionSupplier yields the fixed question list for a round. The shared,
// pre-shuffled list in the store is preferred so every team plays the same
// questions in the same order; the Mongo pool is only consulted as a
// fallback when no shared set was ever generated.
type QuestionSupplier struct {
	repo  repository.QuestionRepo
	store store.Store
}

// NewQuestionSupplier creates a question supplier
func NewQuestionSupplier(repo repository.QuestionRepo, st store.Store) *QuestionSupplier {
	return &QuestionSupplier{repo: repo, store: st}
}

// Supply returns the question list for a round type. An empty list is not
// an error; the round engine surfaces it as a no-content state.
func (s *QuestionSupplier) Supply(ctx context.Context, rt model.RoundType, mode model.GameMode) ([]model.Question, error) {
	var shared []model.Question
	ok, err := s.store.Get(ctx, roundQuestionsPath(rt), &shared)
	if err != nil {
		return nil, fmt.Errorf("failed to read shared questions: %w", err)
	}
	if ok {
		return shared, nil
	}

	log.Printf("no shared question set for %s, falling back to question pool", rt)
	return s.buildList(ctx, rt, mode)
}

// GenerateShared builds and persists the per-round shared question lists.
// It is idempotent: a second invocation without an intervening reset is a
// no-op, so a retried start never reshuffles under a playing team.
func (s *QuestionSupplier) GenerateShared(ctx context.Context, mode model.GameMode) error {
	var existing []model.Question
	ok, err := s.store.Get(ctx, roundQuestionsPath(model.RoundOrder[0]), &existing)
	if err != nil {
		return fmt.Errorf("failed to check shared questions: %w", err)
	}
	if ok {
		return nil
	}

	for _, rt := range model.RoundOrder {
		list, err := s.buildList(ctx, rt, mode)
		if err != nil {
			return err
		}
		if err := s.store.Set(ctx, roundQuestionsPath(rt), list); err != nil {
			return fmt.Errorf("failed to persist shared questions for %s: %w", rt, err)
		}
	}
	return nil
}

// ClearShared removes all shared question lists so the next start
// regenerates them fresh.
func (s *QuestionSupplier) ClearShared(ctx context.Context) error {
	return s.store.Remove(ctx, gameStatePath+"/roundQuestions")
}

// buildList is the filter/validate/shuffle/cap pipeline
func (s *QuestionSupplier) buildList(ctx context.Context, rt model.RoundType, mode model.GameMode) ([]model.Question, error) {
	pool, err := s.repo.ListByType(ctx, rt)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %s: %w", rt, err)
	}

	valid := make([]model.Question, 0, len(pool))
	for _, q := range pool {
		if err := q.Validate(); err != nil {
			log.Printf("skipping malformed %s question %s: %v", rt, q.ID, err)
			continue
		}
		valid = append(valid, q)
	}

	shuffle(valid)

	if preset, ok := mode.Preset(); ok && preset.QuestionCap > 0 && len(valid) > preset.QuestionCap {
		valid = valid[:preset.QuestionCap]
	}
	return valid, nil
}

// shuffle is an unbiased Fisher-Yates permutation
func shuffle(qs []model.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// shuffleStrings permutes a copy of the given options
func shuffleStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
