package tournament

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

// Service defines the interface for tournament operations
type Service interface {
	CreateTournament(ctx context.Context, t *domain.Tournament) error
	GetTournament(ctx context.Context, id int64) (*domain.Tournament, error)
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
	UpdateTournament(ctx context.Context, t *domain.Tournament) error
	DeleteTournament(ctx context.Context, id int64) error
	GetResults(ctx context.Context, id int64) ([]domain.TournamentResult, error)
	Recalculate(ctx context.Context, tournamentIDs []int64) error
}

type service struct {
	repo     repository.Tournament
	eventBus event.Bus
	winLimit domain.WinLimit
	cache    *lru.Cache[int64, *domain.Tournament]
}

// cacheSize bounds the tournament read cache; leaderboard pages hit the same
// handful of tournaments over and over.
const cacheSize = 128

// NewService creates a new tournament service
func NewService(repo repository.Tournament, eventBus event.Bus, winLimit domain.WinLimit) (Service, error) {
	cache, err := lru.New[int64, *domain.Tournament](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament cache: %w", err)
	}
	return &service{
		repo:     repo,
		eventBus: eventBus,
		winLimit: winLimit,
		cache:    cache,
	}, nil
}

func (s *service) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if t.ParticipantsMode == "" {
		t.ParticipantsMode = domain.ParticipantsModeWinners
	}
	if t.RankingScope == "" {
		t.RankingScope = domain.RankingScopeAll
	}
	if err := s.repo.CreateTournament(ctx, t); err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (s *service) GetTournament(ctx context.Context, id int64) (*domain.Tournament, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	t, err := s.repo.GetTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if t == nil {
		return nil, nil
	}

	s.cache.Add(id, t)
	return t, nil
}

func (s *service) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	return s.repo.ListTournaments(ctx)
}

func (s *service) UpdateTournament(ctx context.Context, t *domain.Tournament) error {
	if err := s.repo.UpdateTournament(ctx, t); err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	s.cache.Remove(t.ID)
	return nil
}

func (s *service) DeleteTournament(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTournament(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	s.cache.Remove(id)
	return nil
}

func (s *service) GetResults(ctx context.Context, id int64) ([]domain.TournamentResult, error) {
	return s.repo.GetTournamentResults(ctx, id)
}

// Recalculate rebuilds standings for the given tournaments and announces
// each rebuild on the event bus.
func (s *service) Recalculate(ctx context.Context, tournamentIDs []int64) error {
	rowCounts, err := RecalculateResults(ctx, s.repo, tournamentIDs, s.winLimit)
	if err != nil {
		return err
	}

	for _, id := range tournamentIDs {
		s.cache.Remove(id)
		if s.eventBus == nil {
			continue
		}
		if err := s.eventBus.Publish(ctx, event.NewTournamentRecalculatedEvent(id, rowCounts[id])); err != nil {
			logger.FromContext(ctx).Error("Failed to publish tournament.recalculated event",
				"tournament_id", id, "error", err)
		}
	}

	return nil
}
