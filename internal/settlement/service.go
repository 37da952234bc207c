package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/concurrency"
	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/metrics"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
	"github.com/bonushunt/bonushunt-backend/internal/tournament"
)

// Service defines the interface for hunt settlement
type Service interface {
	// CloseHunt settles a hunt against its final balance and returns the
	// official winner user ids in finishing-position order. A missing hunt
	// or non-positive id is a no-op returning an empty list.
	CloseHunt(ctx context.Context, huntID int64, finalBalance float64) ([]int64, error)
}

// JackpotService is the side-game collaborator notified after a closing.
// Failures here never abort or roll back the close.
type JackpotService interface {
	HandleHuntClosure(ctx context.Context, huntID int64, finalBalance float64, ranked []domain.RankedGuess, closure domain.HuntClosureContext) error
}

type service struct {
	repo       repository.Settlement
	jackpotSvc JackpotService
	eventBus   event.Bus
	cfg        domain.SettlementConfig
	locks      *concurrency.LockManager
	now        func() time.Time
}

// NewService creates a new settlement service
func NewService(repo repository.Settlement, jackpotSvc JackpotService, eventBus event.Bus, cfg domain.SettlementConfig) Service {
	return &service{
		repo:       repo,
		jackpotSvc: jackpotSvc,
		eventBus:   eventBus,
		cfg:        cfg,
		locks:      concurrency.NewLockManager(),
		now:        time.Now,
	}
}

func (s *service) CloseHunt(ctx context.Context, huntID int64, finalBalance float64) ([]int64, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	defer func() {
		metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}()

	if huntID <= 0 {
		return []int64{}, nil
	}

	// One close per hunt at a time in this process; the row lock below covers
	// other processes.
	lock := s.locks.GetLock(fmt.Sprintf("hunt:%d", huntID))
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginSettlementTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	hunt, err := tx.GetHuntForUpdate(ctx, huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hunt: %w", err)
	}
	if hunt == nil {
		return []int64{}, nil
	}

	winnersCount := hunt.EffectiveWinnersCount()

	tournamentIDs, err := tx.GetTournamentLinks(ctx, huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament links: %w", err)
	}
	configs, err := tx.GetTournamentConfigs(ctx, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament configs: %w", err)
	}

	// When any linked tournament scores all participants, every ranked row
	// must be materialized, not just the top winners.
	hasAllMode := false
	for _, id := range tournamentIDs {
		if configs[id].Normalize().ParticipantsMode == domain.ParticipantsModeAll {
			hasAllMode = true
			break
		}
	}

	closedAt := s.now()
	if err := tx.SetHuntClosed(ctx, huntID, finalBalance, closedAt); err != nil {
		return nil, fmt.Errorf("failed to mark hunt closed: %w", err)
	}

	if err := s.reversePriorClose(ctx, tx, huntID, winnersCount, tournamentIDs, configs); err != nil {
		return nil, err
	}

	limit := s.cfg.HuntWinLimit
	limitActive := limit.Active()

	// Fetching only the top rows is a pure optimization; any consumer of
	// rows beyond the winners count forces a full fetch. The jackpot draw
	// pool is built from every ranked guess, not just the top winners.
	fetchLimit := winnersCount
	if hasAllMode || limitActive || s.jackpotSvc != nil {
		fetchLimit = 0
	}
	ranked, err := tx.GetRankedGuesses(ctx, huntID, finalBalance, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank guesses: %w", err)
	}

	winCounts := map[int64]int{}
	if limitActive {
		winCounts, err = tx.CountEligibleWinsSince(ctx, limit.Period.WindowStart(closedAt))
		if err != nil {
			return nil, fmt.Errorf("failed to count recent wins: %w", err)
		}
	}

	recorded, winners := assignPositions(ranked, huntID, winnersCount, hasAllMode, limit, winCounts, closedAt)

	if len(recorded) > 0 {
		if err := tx.InsertLedgerEntries(ctx, recorded); err != nil {
			return nil, fmt.Errorf("failed to write winner ledger: %w", err)
		}
	}

	if len(recorded) > 0 && len(tournamentIDs) > 0 {
		if _, err := tournament.RecalculateResults(ctx, tx, tournamentIDs, s.cfg.TournamentWinLimit); err != nil {
			return nil, fmt.Errorf("failed to recalculate tournaments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	metrics.HuntsClosed.Inc()

	// Side-game delegation is best effort; the close already committed.
	if s.jackpotSvc != nil {
		closure := domain.HuntClosureContext{
			AffiliateID:     hunt.AffiliateID,
			AffiliateSiteID: hunt.AffiliateSiteID,
			ClosedAt:        closedAt,
		}
		if err := s.jackpotSvc.HandleHuntClosure(ctx, huntID, finalBalance, ranked, closure); err != nil {
			log.Warn("Jackpot handling failed after hunt close", "hunt_id", huntID, "error", err)
		}
	}

	// The caller decides who gets notified; when any linked tournament
	// scores all participants, every recorded user is reported, not just
	// the awarded winners.
	returned := winners
	if hasAllMode && len(recorded) > 0 {
		returned = make([]int64, 0, len(recorded))
		for _, entry := range recorded {
			returned = append(returned, entry.UserID)
		}
	}

	s.publishHuntClosed(ctx, hunt, finalBalance, returned, len(ranked))

	log.Info("Hunt closed",
		"hunt_id", huntID,
		"final_balance", finalBalance,
		"participants", len(ranked),
		"recorded", len(recorded),
		"winners", len(winners))

	return returned, nil
}

// reversePriorClose undoes the aggregate effect of an earlier closing of the
// same hunt: the old ledger rows are dropped and each linked tournament's
// stored win counts are decremented by what those rows contributed. The
// full rebuild later supersedes the decrement whenever the hunt is linked to
// tournaments, but the decrement's own side effects (zero-win rows deleted
// immediately) are observable and kept.
func (s *service) reversePriorClose(ctx context.Context, tx repository.SettlementTx, huntID int64, winnersCount int, tournamentIDs []int64, configs map[int64]domain.TournamentConfig) error {
	existing, err := tx.GetExistingLedger(ctx, huntID)
	if err != nil {
		return fmt.Errorf("failed to read existing ledger: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}

	if err := tx.DeleteLedger(ctx, huntID); err != nil {
		return fmt.Errorf("failed to clear existing ledger: %w", err)
	}

	for _, tid := range tournamentIDs {
		mode := configs[tid].Normalize().ParticipantsMode
		decrements := make(map[int64]int)
		for _, row := range existing {
			if row.Position <= 0 {
				continue
			}
			if mode == domain.ParticipantsModeAll || row.Position <= winnersCount {
				decrements[row.UserID]++
			}
		}
		for userID, n := range decrements {
			if err := tx.AdjustTournamentWins(ctx, tid, userID, -n); err != nil {
				return fmt.Errorf("failed to reverse tournament wins: %w", err)
			}
		}
	}

	return nil
}

// assignPositions walks the ranked guesses assigning 1-based positions over
// the full ordered sequence, awarding winners until the winners count is
// reached, and recording skipped rows for audit. Returns the recorded ledger
// entries (in position order) and the awarded winner ids.
func assignPositions(ranked []domain.RankedGuess, huntID int64, winnersCount int, hasAllMode bool, limit domain.WinLimit, winCounts map[int64]int, closedAt time.Time) ([]domain.LedgerEntry, []int64) {
	limitActive := limit.Active()

	var recorded []domain.LedgerEntry
	var winners []int64
	awarded := 0

	for i, g := range ranked {
		position := i + 1

		eligibleByLimit := !limitActive || winCounts[g.UserID] < limit.MaxCount
		isAwarded := eligibleByLimit && awarded < winnersCount

		if isAwarded || !eligibleByLimit || hasAllMode {
			recorded = append(recorded, domain.LedgerEntry{
				HuntID:    huntID,
				UserID:    g.UserID,
				Position:  position,
				Guess:     g.Value,
				Diff:      g.Diff,
				Eligible:  isAwarded,
				CreatedAt: closedAt,
			})
		}

		if !eligibleByLimit {
			metrics.WinLimitSkips.Inc()
		}

		if isAwarded {
			awarded++
			winCounts[g.UserID]++
			winners = append(winners, g.UserID)
		}

		if awarded == winnersCount && !hasAllMode {
			break
		}
	}

	return recorded, winners
}

func (s *service) publishHuntClosed(ctx context.Context, hunt *domain.Hunt, finalBalance float64, winnerIDs []int64, participants int) {
	if s.eventBus == nil {
		return
	}
	ev := event.NewHuntClosedEvent(hunt.ID, hunt.Title, finalBalance, winnerIDs, participants)
	if err := s.eventBus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Error("Failed to publish hunt.closed event", "hunt_id", hunt.ID, "error", err)
	}
}
