package service

import (
	"context"
	"log"
	"sync"
	"time"

	"deslimste/internal/model"
)

// RoundPhase is the state of a round engine instance
type RoundPhase string

const (
	PhaseIdle          RoundPhase = "idle"
	PhasePresenting    RoundPhase = "presenting"
	PhaseAwaitingInput RoundPhase = "awaiting-input"
	PhaseComplete      RoundPhase = "complete"
	// PhaseNoContent means the supplier returned zero questions; the
	// round is visible but unplayable until an admin adds content.
	PhaseNoContent RoundPhase = "no-content"
	// PhaseErrored means the current question is missing a required
	// option array and the engine refuses to guess.
	PhaseErrored RoundPhase = "errored"
)

// Scoring deltas, in seconds
const (
	penaltyDelta          = -5
	openDeurBonus         = 15
	puzzelFullBonus       = 30
	puzzelPartialBonus    = 10
	woordzoekerBonus      = 15
	factBonus             = 3
	factCompletionBonus   = 10
	itemBonus             = 3
	itemCompletionBonus   = 30
	collectiefMaxMistakes = 3
)

// EngineConfig tunes engine timers. Tests shrink these.
type EngineConfig struct {
	// HintInterval is the delay between open-deur hint reveals.
	HintInterval time.Duration
	// FactTimeLimit bounds a single wat-weet-u question.
	FactTimeLimit time.Duration
	// RoundTimeLimit bounds the whole round; zero disables it.
	RoundTimeLimit time.Duration
}

// DefaultEngineConfig derives engine timing from a game mode preset
func DefaultEngineConfig(preset model.ModePreset) EngineConfig {
	return EngineConfig{
		HintInterval:   3 * time.Second,
		FactTimeLimit:  60 * time.Second,
		RoundTimeLimit: preset.RoundTimeLimit,
	}
}

// Submission is a team's answer attempt. Text carries single answers and
// option picks; Texts carries the three puzzel answers.
type Submission struct {
	Text  string   `json:"text,omitempty"`
	Texts []string `json:"texts,omitempty"`
}

// SubmitResult describes what a submission did
type SubmitResult struct {
	Correct       bool     `json:"correct"`
	Delta         int      `json:"delta"`
	Seconds       int      `json:"seconds"`
	Advanced      bool     `json:"advanced"`
	RoundComplete bool     `json:"roundComplete"`
	Revealed      []string `json:"revealed,omitempty"`
	FoundCount    int      `json:"foundCount,omitempty"`
}

// RoundSnapshot is the client-facing view of the engine's current state.
// Canonical answers are never included while a question is live.
type RoundSnapshot struct {
	Type          model.RoundType `json:"type"`
	Phase         RoundPhase      `json:"phase"`
	QuestionIndex int             `json:"questionIndex"`
	QuestionCount int             `json:"questionCount"`
	Hints         []string        `json:"hints,omitempty"`
	Options       []string        `json:"options,omitempty"`
	OptionsOpen   bool            `json:"optionsOpen,omitempty"`
	Clue          string          `json:"clue,omitempty"`
	Tiles         []string        `json:"tiles,omitempty"`
	Subject       string          `json:"subject,omitempty"`
	Category      string          `json:"category,omitempty"`
	FreeText      bool            `json:"freeText,omitempty"`
	FoundCount    int             `json:"foundCount,omitempty"`
	TargetCount   int             `json:"targetCount,omitempty"`
	Mistakes      int             `json:"mistakes,omitempty"`
	Revealed      []string        `json:"revealed,omitempty"`
}

// ScoreSink receives score deltas and the completion signal from an
// engine. TeamProgress implements it.
type ScoreSink interface {
	ApplyScoreDelta(ctx context.Context, delta int) int
	RecordCompletion(ctx context.Context, rt model.RoundType) error
}

// RoundEngine drives one round for one team. An instance is single-use:
// construct, Start, Submit until complete, then discard.
type RoundEngine interface {
	Type() model.RoundType
	SessionID() string
	Phase() RoundPhase
	Start(ctx context.Context)
	Submit(ctx context.Context, sub Submission) (*SubmitResult, error)
	Snapshot() RoundSnapshot
	Leave(ctx context.Context)
}

// NewRoundEngine constructs the engine variant for a round type
func NewRoundEngine(rt model.RoundType, questions []model.Question, sink ScoreSink, sched *Scheduler, cfg EngineConfig) RoundEngine {
	initBase := func(b *baseRound) {
		b.typ = rt
		b.sessionID = sched.Begin()
		b.questions = questions
		b.phase = PhaseIdle
		b.sched = sched
		b.sink = sink
		b.cfg = cfg
	}
	switch rt {
	case model.RoundOpenDeur:
		r := &openDeurRound{}
		initBase(&r.baseRound)
		return r
	case model.RoundPuzzel:
		r := &puzzelRound{}
		initBase(&r.baseRound)
		return r
	case model.RoundWoordzoeker:
		r := &woordzoekerRound{}
		initBase(&r.baseRound)
		return r
	case model.RoundWatWeetU:
		r := &watWeetURound{}
		initBase(&r.baseRound)
		return r
	case model.RoundCollectiefGeheugen:
		r := &collectiefRound{}
		initBase(&r.baseRound)
		return r
	default:
		// Unknown types are filtered at ingestion; this is unreachable
		// for validated content.
		r := &openDeurRound{}
		initBase(&r.baseRound)
		return r
	}
}

// baseRound is the state machine skeleton shared by all five variants
type baseRound struct {
	mu        sync.Mutex
	typ       model.RoundType
	sessionID string
	questions []model.Question
	index     int
	phase     RoundPhase
	startedAt time.Time
	timedOut  bool
	revealed  []string
	sched     *Scheduler
	sink      ScoreSink
	cfg       EngineConfig
}

func (b *baseRound) Type() model.RoundType { return b.typ }
func (b *baseRound) SessionID() string     { return b.sessionID }

func (b *baseRound) Phase() RoundPhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Leave cancels the session so pending timers no-op
func (b *baseRound) Leave(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sched.End(b.sessionID)
	if b.phase != PhaseComplete {
		b.phase = PhaseIdle
	}
}

// startCommon begins the round clock and the overall time limit. Returns
// false when there is nothing to play.
func (b *baseRound) startCommon() bool {
	if len(b.questions) == 0 {
		b.phase = PhaseNoContent
		log.Printf("round %s has no questions available", b.typ)
		return false
	}
	b.startedAt = time.Now()
	if b.cfg.RoundTimeLimit > 0 {
		b.sched.After(b.sessionID, b.cfg.RoundTimeLimit, func() {
			b.timeout(context.Background())
		})
	}
	return true
}

// checkActive validates that a submission is possible right now
func (b *baseRound) checkActive() error {
	switch b.phase {
	case PhaseComplete:
		return ErrRoundComplete
	case PhaseNoContent:
		return ErrNoContent
	case PhaseErrored:
		return ErrMissingOptions
	case PhaseIdle:
		return ErrRoundNotActive
	}
	return nil
}

func (b *baseRound) question() *model.Question {
	return &b.questions[b.index]
}

// advance moves to the next question via present, or completes the round
// with a speed bonus. Caller holds the lock. Returns whether the round
// completed.
func (b *baseRound) advance(ctx context.Context, present func()) bool {
	b.index++
	if b.index < len(b.questions) {
		present()
		return false
	}
	b.complete(ctx, true)
	return true
}

// complete finishes the round. The speed bonus rewards fast completion
// and is skipped on timeout-forced completion.
func (b *baseRound) complete(ctx context.Context, speedBonus bool) {
	b.phase = PhaseComplete
	b.sched.End(b.sessionID)
	if speedBonus {
		if bonus := speedBonusFor(time.Since(b.startedAt)); bonus > 0 {
			b.sink.ApplyScoreDelta(ctx, bonus)
		}
	}
	if err := b.sink.RecordCompletion(ctx, b.typ); err != nil {
		log.Printf("failed to record completion of %s: %v", b.typ, err)
	}
}

// timeout force-completes the round when its overall time limit elapses
func (b *baseRound) timeout(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase == PhaseComplete || b.phase == PhaseNoContent {
		return
	}
	b.timedOut = true
	b.revealed = currentAnswers(b.question())
	log.Printf("round %s timed out on question %d", b.typ, b.index)
	b.complete(ctx, false)
}

// currentAnswers lists the canonical answers of a question, shown when a
// timeout or mistake limit ends it.
func currentAnswers(q *model.Question) []string {
	switch q.Type {
	case model.RoundPuzzel:
		if q.Answer != "" {
			return []string{q.Answer}
		}
		return q.PuzzelAnswers()
	case model.RoundWatWeetU:
		return q.Facts
	case model.RoundCollectiefGeheugen:
		return q.Answers
	default:
		return []string{q.Answer}
	}
}

func (b *baseRound) snapshotCommon() RoundSnapshot {
	return RoundSnapshot{
		Type:          b.typ,
		Phase:         b.phase,
		QuestionIndex: b.index,
		QuestionCount: len(b.questions),
		Revealed:      b.revealed,
	}
}

// speedBonusFor maps elapsed round time to the completion bonus
func speedBonusFor(elapsed time.Duration) int {
	switch {
	case elapsed < time.Minute:
		return 10
	case elapsed < 2*time.Minute:
		return 5
	case elapsed < 3*time.Minute:
		return 3
	default:
		return 0
	}
}
