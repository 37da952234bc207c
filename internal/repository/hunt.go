package repository

import (
	"context"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// HuntFilter narrows hunt listings
type HuntFilter struct {
	Status          domain.HuntStatus
	AffiliateSiteID *int64
	Limit           int
	Offset          int
}

// Hunt defines the data access required by the hunt service
type Hunt interface {
	CreateHunt(ctx context.Context, hunt *domain.Hunt) error
	GetHunt(ctx context.Context, id int64) (*domain.Hunt, error)
	ListHunts(ctx context.Context, filter HuntFilter) ([]domain.Hunt, error)
	UpdateHunt(ctx context.Context, hunt *domain.Hunt) error
	DeleteHunt(ctx context.Context, id int64) error

	// Tournament links are the single source of truth for hunt/tournament
	// association, ordered by link creation time.
	GetTournamentLinks(ctx context.Context, huntID int64) ([]int64, error)
	SetTournamentLinks(ctx context.Context, huntID int64, tournamentIDs []int64) error

	GetLedger(ctx context.Context, huntID int64) ([]domain.LedgerEntry, error)
}
