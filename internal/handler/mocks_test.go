package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

type mockHuntService struct {
	mock.Mock
}

func (m *mockHuntService) CreateHunt(ctx context.Context, h *domain.Hunt) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHuntService) GetHunt(ctx context.Context, id int64) (*domain.Hunt, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*domain.Hunt); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHuntService) ListHunts(ctx context.Context, filter repository.HuntFilter) ([]domain.Hunt, error) {
	args := m.Called(ctx, filter)
	if hunts, ok := args.Get(0).([]domain.Hunt); ok {
		return hunts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHuntService) UpdateHunt(ctx context.Context, h *domain.Hunt) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHuntService) DeleteHunt(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHuntService) ReopenHunt(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHuntService) SetTournamentLinks(ctx context.Context, huntID int64, tournamentIDs []int64) error {
	return m.Called(ctx, huntID, tournamentIDs).Error(0)
}

func (m *mockHuntService) GetLedger(ctx context.Context, huntID int64) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, huntID)
	if entries, ok := args.Get(0).([]domain.LedgerEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSettlementService struct {
	mock.Mock
}

func (m *mockSettlementService) CloseHunt(ctx context.Context, huntID int64, finalBalance float64) ([]int64, error) {
	args := m.Called(ctx, huntID, finalBalance)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGuessService struct {
	mock.Mock
}

func (m *mockGuessService) SubmitGuess(ctx context.Context, huntID, userID int64, value float64) (*domain.Guess, error) {
	args := m.Called(ctx, huntID, userID, value)
	if g, ok := args.Get(0).(*domain.Guess); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuessService) GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error) {
	args := m.Called(ctx, huntID, userID)
	if g, ok := args.Get(0).(*domain.Guess); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuessService) RemoveGuess(ctx context.Context, huntID, userID int64) error {
	return m.Called(ctx, huntID, userID).Error(0)
}

func (m *mockGuessService) ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error) {
	args := m.Called(ctx, huntID)
	if guesses, ok := args.Get(0).([]domain.Guess); ok {
		return guesses, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuessService) PreviewRanking(ctx context.Context, huntID int64, balance float64, limit int) ([]domain.RankedGuess, error) {
	args := m.Called(ctx, huntID, balance, limit)
	if ranked, ok := args.Get(0).([]domain.RankedGuess); ok {
		return ranked, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTournamentService struct {
	mock.Mock
}

func (m *mockTournamentService) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTournamentService) GetTournament(ctx context.Context, id int64) (*domain.Tournament, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Tournament); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTournamentService) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	args := m.Called(ctx)
	if tournaments, ok := args.Get(0).([]domain.Tournament); ok {
		return tournaments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTournamentService) UpdateTournament(ctx context.Context, t *domain.Tournament) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTournamentService) DeleteTournament(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTournamentService) GetResults(ctx context.Context, id int64) ([]domain.TournamentResult, error) {
	args := m.Called(ctx, id)
	if results, ok := args.Get(0).([]domain.TournamentResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTournamentService) Recalculate(ctx context.Context, tournamentIDs []int64) error {
	return m.Called(ctx, tournamentIDs).Error(0)
}

type mockEventlogRepo struct {
	mock.Mock
}

func (m *mockEventlogRepo) LogEvent(ctx context.Context, eventType string, userID *int64, payload map[string]interface{}) error {
	return m.Called(ctx, eventType, userID, payload).Error(0)
}

func (m *mockEventlogRepo) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	args := m.Called(ctx, filter)
	if events, ok := args.Get(0).([]eventlog.Event); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}
