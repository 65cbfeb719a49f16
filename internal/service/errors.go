package service

import "errors"

// Validation-class errors: rejected at the boundary, nothing mutated.
var (
	ErrWrongPIN       = errors.New("wrong pin code")
	ErrWrongPassword  = errors.New("wrong admin password")
	ErrEmptyTeamName  = errors.New("team name must not be empty")
	ErrInvalidMode    = errors.New("unknown game mode")
	ErrRoundLocked    = errors.New("round is locked")
	ErrAlreadyFound   = errors.New("item already found")
	ErrNotConfigured  = errors.New("game has not been configured")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrNotStarted     = errors.New("game has not started")
	ErrTeamNotFound   = errors.New("team not found")
)

// Round-level errors: the engine degrades to a visible state instead of
// crashing.
var (
	ErrRoundNotActive    = errors.New("no active round")
	ErrRoundComplete     = errors.New("round is already complete")
	ErrNoContent         = errors.New("no questions available for this round")
	ErrMissingOptions    = errors.New("question is missing its option set")
	ErrInvalidSubmission = errors.New("submission does not fit this round type")
)
