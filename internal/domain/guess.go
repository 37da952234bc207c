package domain

import "time"

// Guess is a user's numeric prediction of a hunt's final balance.
// At most one guess exists per (hunt, user) pair; it is mutable while the
// hunt is open and read-only input to settlement once the hunt closes.
type Guess struct {
	ID        int64     `json:"id"`
	HuntID    int64     `json:"hunt_id"`
	UserID    int64     `json:"user_id"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankedGuess is a guess annotated with its distance to the final balance,
// as returned by the ranking query during settlement.
type RankedGuess struct {
	GuessID int64   `json:"guess_id"`
	UserID  int64   `json:"user_id"`
	Value   float64 `json:"value"`
	Diff    float64 `json:"diff"`
}
