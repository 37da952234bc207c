package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	ErrMsgInvalidHuntIDParam       = "Invalid hunt id"
	ErrMsgInvalidTournamentIDParam = "Invalid tournament id"
	ErrMsgInvalidJackpotIDParam    = "Invalid jackpot id"
	ErrMsgInvalidUserIDParam       = "Invalid user id"
	ErrMsgInvalidLimit             = "Invalid limit parameter"
	ErrMsgInvalidBalance           = "Invalid balance parameter"
	ErrMsgInvalidSinceParam        = "Invalid since parameter, expected RFC3339"
)

// Success messages for API responses
const (
	MsgHuntDeleted     = "Hunt deleted"
	MsgHuntReopened    = "Hunt reopened"
	MsgGuessDeleted    = "Guess deleted"
	MsgLinksUpdated    = "Tournament links updated"
	MsgRecalcTriggered = "Recalculation completed"
)
