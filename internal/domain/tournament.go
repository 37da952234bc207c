package domain

import "time"

// ParticipantsMode controls which ledger rows count as a "win" when a
// tournament aggregates hunt results.
type ParticipantsMode string

const (
	// ParticipantsModeWinners counts only rows within the hunt's winners count
	ParticipantsModeWinners ParticipantsMode = "winners"
	// ParticipantsModeAll counts every recorded ledger row
	ParticipantsModeAll ParticipantsMode = "all"
)

// RankingScope restricts which hunts feed a tournament's recalculation
type RankingScope string

const (
	RankingScopeAll    RankingScope = "all"
	RankingScopeClosed RankingScope = "closed"
	RankingScopeActive RankingScope = "active"
)

// DefaultPointsMap is the built-in 8-rank points schedule applied when a
// tournament has no explicit points map configured.
var DefaultPointsMap = map[int]int{
	1: 25,
	2: 15,
	3: 10,
	4: 5,
	5: 4,
	6: 3,
	7: 2,
	8: 1,
}

// Tournament aggregates wins and points across its linked hunts
type Tournament struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	ParticipantsMode ParticipantsMode `json:"participants_mode"`
	RankingScope     RankingScope     `json:"ranking_scope"`
	PointsMap        map[int]int      `json:"points_map,omitempty"`
	StartsAt         *time.Time       `json:"starts_at,omitempty"`
	EndsAt           *time.Time       `json:"ends_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TournamentConfig is the subset of tournament settings the settlement and
// recalculation engines read. Missing rows fall back to zero values which the
// engines normalize to defaults.
type TournamentConfig struct {
	ID               int64
	ParticipantsMode ParticipantsMode
	RankingScope     RankingScope
	PointsMap        map[int]int
}

// Normalize fills unset fields with their documented defaults
func (c TournamentConfig) Normalize() TournamentConfig {
	if c.ParticipantsMode == "" {
		c.ParticipantsMode = ParticipantsModeWinners
	}
	if c.RankingScope == "" {
		c.RankingScope = RankingScopeAll
	}
	if len(c.PointsMap) == 0 {
		c.PointsMap = DefaultPointsMap
	}
	return c
}

// TournamentResult is one derived leaderboard row, rebuilt from the winner
// ledger on every recalculation.
type TournamentResult struct {
	TournamentID int64     `json:"tournament_id"`
	UserID       int64     `json:"user_id"`
	Wins         int       `json:"wins"`
	Points       int       `json:"points"`
	LastWinDate  time.Time `json:"last_win_date"`
}

// TournamentLedgerRow is a winner-ledger row joined with its hunt context as
// consumed by tournament recalculation. EventDate is
// COALESCE(ledger.created_at, hunt.closed_at, hunt.updated_at, hunt.created_at).
type TournamentLedgerRow struct {
	LedgerID     int64
	UserID       int64
	Position     int
	Eligible     bool
	WinnersCount int
	EventDate    time.Time
}
