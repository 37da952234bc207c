package guess

import (
	"context"
	"fmt"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/metrics"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

// Bounds is the accepted guess value range, inclusive on both ends
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v falls inside the bounds. A degenerate range
// (max not above min) disables the check.
func (b Bounds) Contains(v float64) bool {
	if b.Max <= b.Min {
		return true
	}
	return v >= b.Min && v <= b.Max
}

// Service defines the interface for guess operations. A user holds at most
// one guess per hunt; submitting again overwrites it while the hunt is open.
type Service interface {
	SubmitGuess(ctx context.Context, huntID, userID int64, value float64) (*domain.Guess, error)
	GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error)
	RemoveGuess(ctx context.Context, huntID, userID int64) error
	ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error)

	// PreviewRanking ranks the current guesses against a provisional balance
	// without touching hunt state, for live "who is closest" displays.
	PreviewRanking(ctx context.Context, huntID int64, balance float64, limit int) ([]domain.RankedGuess, error)
}

type service struct {
	repo   repository.Guess
	bounds Bounds
}

// NewService creates a new guess service
func NewService(repo repository.Guess, bounds Bounds) Service {
	return &service{repo: repo, bounds: bounds}
}

func (s *service) SubmitGuess(ctx context.Context, huntID, userID int64, value float64) (*domain.Guess, error) {
	if huntID <= 0 {
		return nil, domain.ErrInvalidHuntID
	}
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if !s.bounds.Contains(value) {
		return nil, fmt.Errorf("%w: %.2f is outside [%.2f, %.2f]",
			domain.ErrGuessOutOfRange, value, s.bounds.Min, s.bounds.Max)
	}

	hunt, err := s.repo.GetHunt(ctx, huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	if hunt == nil {
		return nil, domain.ErrHuntNotFound
	}
	if hunt.IsClosed() {
		return nil, domain.ErrHuntClosed
	}

	g := &domain.Guess{
		HuntID: huntID,
		UserID: userID,
		Value:  value,
	}
	if err := s.repo.UpsertGuess(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save guess: %w", err)
	}

	metrics.GuessesSubmitted.Inc()
	logger.FromContext(ctx).Debug("Guess submitted",
		"hunt_id", huntID, "user_id", userID, "value", value)

	return g, nil
}

func (s *service) GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error) {
	if huntID <= 0 {
		return nil, domain.ErrInvalidHuntID
	}
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	g, err := s.repo.GetGuess(ctx, huntID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guess: %w", err)
	}
	if g == nil {
		return nil, domain.ErrGuessNotFound
	}
	return g, nil
}

func (s *service) RemoveGuess(ctx context.Context, huntID, userID int64) error {
	if huntID <= 0 {
		return domain.ErrInvalidHuntID
	}
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}

	hunt, err := s.repo.GetHunt(ctx, huntID)
	if err != nil {
		return fmt.Errorf("failed to get hunt: %w", err)
	}
	if hunt == nil {
		return domain.ErrHuntNotFound
	}
	if hunt.IsClosed() {
		return domain.ErrHuntClosed
	}

	if err := s.repo.DeleteGuess(ctx, huntID, userID); err != nil {
		return fmt.Errorf("failed to delete guess: %w", err)
	}
	return nil
}

func (s *service) ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error) {
	if huntID <= 0 {
		return nil, domain.ErrInvalidHuntID
	}
	return s.repo.ListGuesses(ctx, huntID)
}

func (s *service) PreviewRanking(ctx context.Context, huntID int64, balance float64, limit int) ([]domain.RankedGuess, error) {
	if huntID <= 0 {
		return nil, domain.ErrInvalidHuntID
	}
	return s.repo.GetRankedGuesses(ctx, huntID, balance, limit)
}
