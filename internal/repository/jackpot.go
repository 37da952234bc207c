package repository

import (
	"context"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Jackpot defines the data access required by the jackpot service
type Jackpot interface {
	CreateJackpot(ctx context.Context, j *domain.Jackpot) error
	GetJackpot(ctx context.Context, id int64) (*domain.Jackpot, error)
	ListJackpots(ctx context.Context, enabledOnly bool) ([]domain.Jackpot, error)
	UpdateJackpot(ctx context.Context, j *domain.Jackpot) error
	RecordJackpotEvent(ctx context.Context, event *domain.JackpotEvent) error
	ListJackpotEvents(ctx context.Context, jackpotID int64, limit int) ([]domain.JackpotEvent, error)
}
