package domain

import "time"

// Jackpot is a probabilistic side-game tied to hunt closures. Each closing
// gives every configured, enabled jackpot one roll; a hit pays out a random
// amount within the configured range to one of the hunt's participants.
type Jackpot struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Enabled         bool      `json:"enabled"`
	TriggerChance   float64   `json:"trigger_chance"` // probability per closing, 0..1
	MinPayout       float64   `json:"min_payout"`
	MaxPayout       float64   `json:"max_payout"`
	AffiliateSiteID *int64    `json:"affiliate_site_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// JackpotEvent records a jackpot hit for audit and display
type JackpotEvent struct {
	ID           int64     `json:"id"`
	JackpotID    int64     `json:"jackpot_id"`
	HuntID       int64     `json:"hunt_id"`
	UserID       int64     `json:"user_id"`
	Amount       float64   `json:"amount"`
	FinalBalance float64   `json:"final_balance"`
	CreatedAt    time.Time `json:"created_at"`
}

// HuntClosureContext carries the affiliate/timestamp context handed to the
// jackpot subsystem alongside the ranked rows.
type HuntClosureContext struct {
	AffiliateID     *int64
	AffiliateSiteID *int64
	ClosedAt        time.Time
}
