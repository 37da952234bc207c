package settlement

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

type mockSettlementRepo struct {
	mock.Mock
}

func (m *mockSettlementRepo) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SettlementTx), args.Error(1)
}

type mockSettlementTx struct {
	mock.Mock

	inserted []domain.LedgerEntry
}

func (m *mockSettlementTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSettlementTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSettlementTx) GetHuntForUpdate(ctx context.Context, huntID int64) (*domain.Hunt, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hunt), args.Error(1)
}

func (m *mockSettlementTx) GetTournamentLinks(ctx context.Context, huntID int64) ([]int64, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSettlementTx) GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.TournamentConfig), args.Error(1)
}

func (m *mockSettlementTx) SetHuntClosed(ctx context.Context, huntID int64, finalBalance float64, closedAt time.Time) error {
	return m.Called(ctx, huntID, finalBalance, closedAt).Error(0)
}

func (m *mockSettlementTx) GetExistingLedger(ctx context.Context, huntID int64) ([]domain.LedgerPosition, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosition), args.Error(1)
}

func (m *mockSettlementTx) DeleteLedger(ctx context.Context, huntID int64) error {
	return m.Called(ctx, huntID).Error(0)
}

func (m *mockSettlementTx) InsertLedgerEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	m.inserted = append(m.inserted, entries...)
	return m.Called(ctx, entries).Error(0)
}

func (m *mockSettlementTx) GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error) {
	args := m.Called(ctx, huntID, finalBalance, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedGuess), args.Error(1)
}

func (m *mockSettlementTx) CountEligibleWinsSince(ctx context.Context, since time.Time) (map[int64]int, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *mockSettlementTx) AdjustTournamentWins(ctx context.Context, tournamentID, userID int64, delta int) error {
	return m.Called(ctx, tournamentID, userID, delta).Error(0)
}

func (m *mockSettlementTx) GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error) {
	args := m.Called(ctx, tournamentID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TournamentLedgerRow), args.Error(1)
}

func (m *mockSettlementTx) ReplaceTournamentResults(ctx context.Context, tournamentID int64, rows []domain.TournamentResult) error {
	return m.Called(ctx, tournamentID, rows).Error(0)
}

type mockJackpotService struct {
	mock.Mock
}

func (m *mockJackpotService) HandleHuntClosure(ctx context.Context, huntID int64, finalBalance float64, ranked []domain.RankedGuess, closure domain.HuntClosureContext) error {
	return m.Called(ctx, huntID, finalBalance, ranked, closure).Error(0)
}
