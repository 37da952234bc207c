package domain

// Event type identifiers used across the event bus and the event log
const (
	EventTypeHuntClosed             = "hunt.closed"
	EventTypeTournamentRecalculated = "tournament.recalculated"
	EventTypeJackpotWon             = "jackpot.won"
	EventTypeNotificationSent       = "notification.sent"
)
