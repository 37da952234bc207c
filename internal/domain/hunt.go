package domain

import "time"

// HuntStatus represents the lifecycle state of a bonus hunt
type HuntStatus string

const (
	HuntStatusOpen   HuntStatus = "open"
	HuntStatusClosed HuntStatus = "closed"
)

// DefaultWinnersCount is used when a hunt is created without an explicit winners count
const DefaultWinnersCount = 3

// Hunt represents one instance of the guessing game. FinalBalance is set
// iff Status is closed.
type Hunt struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	StartingBalance float64    `json:"starting_balance"`
	FinalBalance    *float64   `json:"final_balance,omitempty"`
	WinnersCount    int        `json:"winners_count"`
	Status          HuntStatus `json:"status"`
	AffiliateID     *int64     `json:"affiliate_id,omitempty"`
	AffiliateSiteID *int64     `json:"affiliate_site_id,omitempty"`
	TournamentIDs   []int64    `json:"tournament_ids,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

// IsClosed reports whether the hunt has been settled
func (h *Hunt) IsClosed() bool {
	return h.Status == HuntStatusClosed
}

// PrimaryTournamentID returns the first linked tournament id, the read-time
// replacement for the old denormalized single-tournament column. Returns 0
// when the hunt is not linked to any tournament.
func (h *Hunt) PrimaryTournamentID() int64 {
	if len(h.TournamentIDs) == 0 {
		return 0
	}
	return h.TournamentIDs[0]
}

// EffectiveWinnersCount resolves the winners count used during settlement.
// A stored value of zero or less falls back to 1.
func (h *Hunt) EffectiveWinnersCount() int {
	if h.WinnersCount <= 0 {
		return 1
	}
	return h.WinnersCount
}
