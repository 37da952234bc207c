package jackpot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/metrics"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

// Service defines the interface for the jackpot side-game
type Service interface {
	CreateJackpot(ctx context.Context, j *domain.Jackpot) error
	GetJackpot(ctx context.Context, id int64) (*domain.Jackpot, error)
	ListJackpots(ctx context.Context, enabledOnly bool) ([]domain.Jackpot, error)
	UpdateJackpot(ctx context.Context, j *domain.Jackpot) error
	ListJackpotEvents(ctx context.Context, jackpotID int64, limit int) ([]domain.JackpotEvent, error)

	// HandleHuntClosure rolls every enabled jackpot once against the closed
	// hunt. Called after the close has committed; errors are reported to the
	// caller for logging but the close itself is already final.
	HandleHuntClosure(ctx context.Context, huntID int64, finalBalance float64, ranked []domain.RankedGuess, closure domain.HuntClosureContext) error
}

type service struct {
	repo     repository.Jackpot
	eventBus event.Bus

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a new jackpot service. The rng source is injectable so
// tests can drive deterministic rolls.
func NewService(repo repository.Jackpot, eventBus event.Bus, src rand.Source) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		rng:      rand.New(src),
	}
}

func (s *service) CreateJackpot(ctx context.Context, j *domain.Jackpot) error {
	if err := validateJackpot(j); err != nil {
		return err
	}
	if err := s.repo.CreateJackpot(ctx, j); err != nil {
		return fmt.Errorf("failed to create jackpot: %w", err)
	}
	return nil
}

func (s *service) GetJackpot(ctx context.Context, id int64) (*domain.Jackpot, error) {
	j, err := s.repo.GetJackpot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}
	if j == nil {
		return nil, domain.ErrJackpotNotFound
	}
	return j, nil
}

func (s *service) ListJackpots(ctx context.Context, enabledOnly bool) ([]domain.Jackpot, error) {
	return s.repo.ListJackpots(ctx, enabledOnly)
}

func (s *service) UpdateJackpot(ctx context.Context, j *domain.Jackpot) error {
	if err := validateJackpot(j); err != nil {
		return err
	}
	if err := s.repo.UpdateJackpot(ctx, j); err != nil {
		return fmt.Errorf("failed to update jackpot: %w", err)
	}
	return nil
}

func (s *service) ListJackpotEvents(ctx context.Context, jackpotID int64, limit int) ([]domain.JackpotEvent, error) {
	return s.repo.ListJackpotEvents(ctx, jackpotID, limit)
}

func (s *service) HandleHuntClosure(ctx context.Context, huntID int64, finalBalance float64, ranked []domain.RankedGuess, closure domain.HuntClosureContext) error {
	if len(ranked) == 0 {
		return nil
	}

	jackpots, err := s.repo.ListJackpots(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list jackpots: %w", err)
	}

	log := logger.FromContext(ctx)
	for i := range jackpots {
		j := &jackpots[i]

		// Site-scoped jackpots only fire for hunts on the same site.
		if j.AffiliateSiteID != nil {
			if closure.AffiliateSiteID == nil || *closure.AffiliateSiteID != *j.AffiliateSiteID {
				continue
			}
		}

		if !s.roll(j.TriggerChance) {
			continue
		}

		winner := ranked[s.intn(len(ranked))]
		amount := s.payout(j.MinPayout, j.MaxPayout)

		ev := &domain.JackpotEvent{
			JackpotID:    j.ID,
			HuntID:       huntID,
			UserID:       winner.UserID,
			Amount:       amount,
			FinalBalance: finalBalance,
			CreatedAt:    closure.ClosedAt,
		}
		if err := s.repo.RecordJackpotEvent(ctx, ev); err != nil {
			return fmt.Errorf("failed to record jackpot event: %w", err)
		}

		metrics.JackpotsTriggered.Inc()
		log.Info("Jackpot hit",
			"jackpot_id", j.ID, "hunt_id", huntID, "user_id", winner.UserID, "amount", amount)

		if s.eventBus != nil {
			if err := s.eventBus.Publish(ctx, event.NewJackpotWonEvent(j.ID, huntID, winner.UserID, amount)); err != nil {
				log.Error("Failed to publish jackpot.won event", "jackpot_id", j.ID, "error", err)
			}
		}
	}

	return nil
}

func (s *service) roll(chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < chance
}

func (s *service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *service) payout(min, max float64) float64 {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

func validateJackpot(j *domain.Jackpot) error {
	if j.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if j.TriggerChance < 0 || j.TriggerChance > 1 {
		return fmt.Errorf("%w: trigger chance must be within [0, 1]", domain.ErrInvalidInput)
	}
	if j.MinPayout < 0 || j.MaxPayout < j.MinPayout {
		return fmt.Errorf("%w: payout range is invalid", domain.ErrInvalidInput)
	}
	return nil
}
