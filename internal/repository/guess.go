package repository

import (
	"context"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Guess defines the data access required by the guess service
type Guess interface {
	GetHunt(ctx context.Context, id int64) (*domain.Hunt, error)
	UpsertGuess(ctx context.Context, guess *domain.Guess) error
	GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error)
	DeleteGuess(ctx context.Context, huntID, userID int64) error
	ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error)
	GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error)
}
