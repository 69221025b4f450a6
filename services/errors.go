package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountRequired    = errors.New("account name is required")
	ErrTeamNameRequired   = errors.New("team name is required")

	// Lock gate rejections
	ErrMatchLocked        = errors.New("match is locked, bets can no longer change")
	ErrSpecialPicksLocked = errors.New("special picks are locked, changes are not allowed")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrAccountNameConflict  = errors.New("account name is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrBetAlreadyPlaced     = errors.New("a bet for this match already exists")
	ErrResultAlreadySet     = errors.New("match result has already been recorded")
	ErrMatchTimesRequired   = errors.New("match time and deadline are required")
	ErrMatchScoresNegative  = errors.New("match scores must not be negative")
	ErrBetPredictedNegative = errors.New("predicted scores must not be negative")

	// Entity-specific not-found variants for clearer HTTP mapping
	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrBetNotFound     = errors.New("bet not found")
	ErrAccountNotFound = errors.New("account not found")

	// Auth
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Empty-state results
	ErrNoMatchesScheduled = errors.New("no matches scheduled for the tournament")
)
