package hunt

import (
	"context"
	"fmt"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

// Service defines the interface for hunt lifecycle operations. Closing a
// hunt is settlement's job, not this service's; reopening lives here because
// it is a plain state edit with no ranking semantics.
type Service interface {
	CreateHunt(ctx context.Context, h *domain.Hunt) error
	GetHunt(ctx context.Context, id int64) (*domain.Hunt, error)
	ListHunts(ctx context.Context, filter repository.HuntFilter) ([]domain.Hunt, error)
	UpdateHunt(ctx context.Context, h *domain.Hunt) error
	DeleteHunt(ctx context.Context, id int64) error
	ReopenHunt(ctx context.Context, id int64) error

	SetTournamentLinks(ctx context.Context, huntID int64, tournamentIDs []int64) error
	GetLedger(ctx context.Context, huntID int64) ([]domain.LedgerEntry, error)
}

type service struct {
	repo repository.Hunt
}

// NewService creates a new hunt service
func NewService(repo repository.Hunt) Service {
	return &service{repo: repo}
}

func (s *service) CreateHunt(ctx context.Context, h *domain.Hunt) error {
	if h.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if h.StartingBalance < 0 {
		return fmt.Errorf("%w: starting balance cannot be negative", domain.ErrInvalidInput)
	}
	if h.WinnersCount <= 0 {
		h.WinnersCount = domain.DefaultWinnersCount
	}
	h.Status = domain.HuntStatusOpen
	h.FinalBalance = nil
	h.ClosedAt = nil

	if err := s.repo.CreateHunt(ctx, h); err != nil {
		return fmt.Errorf("failed to create hunt: %w", err)
	}

	if len(h.TournamentIDs) > 0 {
		if err := s.repo.SetTournamentLinks(ctx, h.ID, h.TournamentIDs); err != nil {
			return fmt.Errorf("failed to link tournaments: %w", err)
		}
	}

	logger.FromContext(ctx).Info("Hunt created", "hunt_id", h.ID, "title", h.Title)
	return nil
}

func (s *service) GetHunt(ctx context.Context, id int64) (*domain.Hunt, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidHuntID
	}

	h, err := s.repo.GetHunt(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	if h == nil {
		return nil, domain.ErrHuntNotFound
	}

	links, err := s.repo.GetTournamentLinks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament links: %w", err)
	}
	h.TournamentIDs = links

	return h, nil
}

func (s *service) ListHunts(ctx context.Context, filter repository.HuntFilter) ([]domain.Hunt, error) {
	return s.repo.ListHunts(ctx, filter)
}

func (s *service) UpdateHunt(ctx context.Context, h *domain.Hunt) error {
	if h.ID <= 0 {
		return domain.ErrInvalidHuntID
	}
	if h.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetHunt(ctx, h.ID)
	if err != nil {
		return fmt.Errorf("failed to get hunt: %w", err)
	}
	if existing == nil {
		return domain.ErrHuntNotFound
	}

	// Status transitions go through close and reopen, never a plain update.
	h.Status = existing.Status
	h.FinalBalance = existing.FinalBalance
	h.ClosedAt = existing.ClosedAt

	if err := s.repo.UpdateHunt(ctx, h); err != nil {
		return fmt.Errorf("failed to update hunt: %w", err)
	}
	return nil
}

func (s *service) DeleteHunt(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidHuntID
	}
	if err := s.repo.DeleteHunt(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hunt: %w", err)
	}
	return nil
}

// ReopenHunt puts a settled hunt back into the open state so guesses can be
// corrected and the hunt re-closed. The winner ledger is left in place; the
// next close reverses and rewrites it.
func (s *service) ReopenHunt(ctx context.Context, id int64) error {
	h, err := s.repo.GetHunt(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get hunt: %w", err)
	}
	if h == nil {
		return domain.ErrHuntNotFound
	}
	if !h.IsClosed() {
		return domain.ErrHuntAlreadyOpen
	}

	h.Status = domain.HuntStatusOpen
	h.FinalBalance = nil
	h.ClosedAt = nil

	if err := s.repo.UpdateHunt(ctx, h); err != nil {
		return fmt.Errorf("failed to reopen hunt: %w", err)
	}

	logger.FromContext(ctx).Info("Hunt reopened", "hunt_id", id)
	return nil
}

func (s *service) SetTournamentLinks(ctx context.Context, huntID int64, tournamentIDs []int64) error {
	if huntID <= 0 {
		return domain.ErrInvalidHuntID
	}
	if err := s.repo.SetTournamentLinks(ctx, huntID, tournamentIDs); err != nil {
		return fmt.Errorf("failed to set tournament links: %w", err)
	}
	return nil
}

func (s *service) GetLedger(ctx context.Context, huntID int64) ([]domain.LedgerEntry, error) {
	if huntID <= 0 {
		return nil, domain.ErrInvalidHuntID
	}
	return s.repo.GetLedger(ctx, huntID)
}
