package domain

import "time"

// LedgerEntry is one row of the winner ledger: the materialized ranking of a
// hunt's participants, fully deleted and rewritten every time the hunt is
// (re-)closed.
//
// Position is the 1-based rank over the full ordered guess sequence; rows
// skipped by the win-rate limit still consume a position. Eligible
// distinguishes a counted winner from a participant recorded only for audit
// (rate-limited, or present because a linked tournament scores all
// participants).
type LedgerEntry struct {
	ID        int64     `json:"id"`
	HuntID    int64     `json:"hunt_id"`
	UserID    int64     `json:"user_id"`
	Position  int       `json:"position"`
	Guess     float64   `json:"guess"`
	Diff      float64   `json:"diff"`
	Eligible  bool      `json:"eligible"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerPosition is the minimal projection of an existing ledger row used
// when reversing a prior closing.
type LedgerPosition struct {
	UserID   int64
	Position int
}
