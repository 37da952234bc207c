package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgHuntNotFound       = "hunt not found"
	ErrMsgHuntClosed         = "hunt is closed"
	ErrMsgHuntAlreadyOpen    = "hunt is already open"
	ErrMsgTournamentNotFound = "tournament not found"
	ErrMsgJackpotNotFound    = "jackpot not found"
	ErrMsgGuessNotFound      = "guess not found"
	ErrMsgGuessOutOfRange    = "guess is out of range"
	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidHuntID      = "invalid hunt id"
	ErrMsgInvalidInput       = "invalid input"

	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrHuntNotFound       = errors.New(ErrMsgHuntNotFound)
	ErrHuntClosed         = errors.New(ErrMsgHuntClosed)
	ErrHuntAlreadyOpen    = errors.New(ErrMsgHuntAlreadyOpen)
	ErrTournamentNotFound = errors.New(ErrMsgTournamentNotFound)
	ErrJackpotNotFound    = errors.New(ErrMsgJackpotNotFound)
	ErrGuessNotFound      = errors.New(ErrMsgGuessNotFound)
	ErrGuessOutOfRange    = errors.New(ErrMsgGuessOutOfRange)
	ErrInvalidUserID      = errors.New(ErrMsgInvalidUserID)
	ErrInvalidHuntID      = errors.New(ErrMsgInvalidHuntID)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
)
