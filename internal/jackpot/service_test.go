package jackpot

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/event"
)

type mockJackpotRepo struct {
	mock.Mock
}

func (m *mockJackpotRepo) CreateJackpot(ctx context.Context, j *domain.Jackpot) error {
	return m.Called(ctx, j).Error(0)
}

func (m *mockJackpotRepo) GetJackpot(ctx context.Context, id int64) (*domain.Jackpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Jackpot), args.Error(1)
}

func (m *mockJackpotRepo) ListJackpots(ctx context.Context, enabledOnly bool) ([]domain.Jackpot, error) {
	args := m.Called(ctx, enabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Jackpot), args.Error(1)
}

func (m *mockJackpotRepo) UpdateJackpot(ctx context.Context, j *domain.Jackpot) error {
	return m.Called(ctx, j).Error(0)
}

func (m *mockJackpotRepo) RecordJackpotEvent(ctx context.Context, ev *domain.JackpotEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockJackpotRepo) ListJackpotEvents(ctx context.Context, jackpotID int64, limit int) ([]domain.JackpotEvent, error) {
	args := m.Called(ctx, jackpotID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JackpotEvent), args.Error(1)
}

var (
	closedAt = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	rankedRows = []domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
		{GuessID: 12, UserID: 2, Value: 105, Diff: 3},
	}
)

func TestHandleHuntClosure_GuaranteedHitRecordsEvent(t *testing.T) {
	repo := new(mockJackpotRepo)
	repo.On("ListJackpots", mock.Anything, true).Return([]domain.Jackpot{
		{ID: 1, Title: "Mega Drop", Enabled: true, TriggerChance: 1, MinPayout: 50, MaxPayout: 100},
	}, nil)

	var recorded *domain.JackpotEvent
	repo.On("RecordJackpotEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.JackpotEvent)
		}).Return(nil)

	bus := event.NewMemoryBus()
	var published event.JackpotWonPayloadV1
	bus.Subscribe(event.JackpotWon, func(ctx context.Context, ev event.Event) error {
		published = ev.Payload.(event.JackpotWonPayloadV1)
		return nil
	})

	svc := NewService(repo, bus, rand.NewSource(1))

	err := svc.HandleHuntClosure(context.Background(), 7, 102, rankedRows,
		domain.HuntClosureContext{ClosedAt: closedAt})

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, int64(1), recorded.JackpotID)
	assert.Equal(t, int64(7), recorded.HuntID)
	assert.Contains(t, []int64{1, 2}, recorded.UserID)
	assert.GreaterOrEqual(t, recorded.Amount, 50.0)
	assert.LessOrEqual(t, recorded.Amount, 100.0)
	assert.Equal(t, closedAt, recorded.CreatedAt)

	assert.Equal(t, recorded.UserID, published.UserID)
	assert.Equal(t, recorded.Amount, published.Amount)
}

func TestHandleHuntClosure_ZeroChanceNeverHits(t *testing.T) {
	repo := new(mockJackpotRepo)
	repo.On("ListJackpots", mock.Anything, true).Return([]domain.Jackpot{
		{ID: 1, Title: "Mega Drop", Enabled: true, TriggerChance: 0, MinPayout: 50, MaxPayout: 100},
	}, nil)

	svc := NewService(repo, nil, rand.NewSource(1))

	err := svc.HandleHuntClosure(context.Background(), 7, 102, rankedRows,
		domain.HuntClosureContext{ClosedAt: closedAt})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "RecordJackpotEvent", mock.Anything, mock.Anything)
}

func TestHandleHuntClosure_NoParticipantsIsNoOp(t *testing.T) {
	repo := new(mockJackpotRepo)
	svc := NewService(repo, nil, rand.NewSource(1))

	err := svc.HandleHuntClosure(context.Background(), 7, 102, nil,
		domain.HuntClosureContext{ClosedAt: closedAt})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "ListJackpots", mock.Anything, mock.Anything)
}

func TestHandleHuntClosure_SiteScopedJackpotSkipsOtherSites(t *testing.T) {
	site := int64(3)
	otherSite := int64(9)
	repo := new(mockJackpotRepo)
	repo.On("ListJackpots", mock.Anything, true).Return([]domain.Jackpot{
		{ID: 1, Title: "Site Drop", Enabled: true, TriggerChance: 1, MinPayout: 50, MaxPayout: 100, AffiliateSiteID: &site},
	}, nil)

	svc := NewService(repo, nil, rand.NewSource(1))

	err := svc.HandleHuntClosure(context.Background(), 7, 102, rankedRows,
		domain.HuntClosureContext{AffiliateSiteID: &otherSite, ClosedAt: closedAt})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "RecordJackpotEvent", mock.Anything, mock.Anything)
}

func TestHandleHuntClosure_RecordFailureSurfaces(t *testing.T) {
	repo := new(mockJackpotRepo)
	repo.On("ListJackpots", mock.Anything, true).Return([]domain.Jackpot{
		{ID: 1, Title: "Mega Drop", Enabled: true, TriggerChance: 1, MinPayout: 50, MaxPayout: 100},
	}, nil)
	repo.On("RecordJackpotEvent", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	svc := NewService(repo, nil, rand.NewSource(1))

	err := svc.HandleHuntClosure(context.Background(), 7, 102, rankedRows,
		domain.HuntClosureContext{ClosedAt: closedAt})

	assert.Error(t, err)
}

func TestCreateJackpot_Validation(t *testing.T) {
	svc := NewService(new(mockJackpotRepo), nil, rand.NewSource(1))

	cases := []domain.Jackpot{
		{},
		{Title: "Bad Chance", TriggerChance: 1.5},
		{Title: "Bad Range", TriggerChance: 0.1, MinPayout: 100, MaxPayout: 50},
	}
	for _, j := range cases {
		err := svc.CreateJackpot(context.Background(), &j)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "jackpot %+v", j)
	}
}

func TestGetJackpot_NotFound(t *testing.T) {
	repo := new(mockJackpotRepo)
	repo.On("GetJackpot", mock.Anything, int64(99)).Return(nil, nil)

	svc := NewService(repo, nil, rand.NewSource(1))

	_, err := svc.GetJackpot(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrJackpotNotFound)
}
