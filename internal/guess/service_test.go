package guess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

type mockGuessRepo struct {
	mock.Mock
}

func (m *mockGuessRepo) GetHunt(ctx context.Context, id int64) (*domain.Hunt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hunt), args.Error(1)
}

func (m *mockGuessRepo) UpsertGuess(ctx context.Context, g *domain.Guess) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGuessRepo) GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error) {
	args := m.Called(ctx, huntID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guess), args.Error(1)
}

func (m *mockGuessRepo) DeleteGuess(ctx context.Context, huntID, userID int64) error {
	return m.Called(ctx, huntID, userID).Error(0)
}

func (m *mockGuessRepo) ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Guess), args.Error(1)
}

func (m *mockGuessRepo) GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error) {
	args := m.Called(ctx, huntID, finalBalance, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedGuess), args.Error(1)
}

var testBounds = Bounds{Min: 0, Max: 100000}

func TestSubmitGuess(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(7)).
		Return(&domain.Hunt{ID: 7, Status: domain.HuntStatusOpen}, nil)
	repo.On("UpsertGuess", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, testBounds)

	g, err := svc.SubmitGuess(context.Background(), 7, 3, 1234.56)

	require.NoError(t, err)
	assert.Equal(t, int64(7), g.HuntID)
	assert.Equal(t, int64(3), g.UserID)
	assert.Equal(t, 1234.56, g.Value)
}

func TestSubmitGuess_RejectsClosedHunt(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(7)).
		Return(&domain.Hunt{ID: 7, Status: domain.HuntStatusClosed}, nil)

	svc := NewService(repo, testBounds)

	_, err := svc.SubmitGuess(context.Background(), 7, 3, 500)

	assert.ErrorIs(t, err, domain.ErrHuntClosed)
	repo.AssertNotCalled(t, "UpsertGuess", mock.Anything, mock.Anything)
}

func TestSubmitGuess_RejectsOutOfRange(t *testing.T) {
	svc := NewService(new(mockGuessRepo), testBounds)

	for _, value := range []float64{-1, 100000.01} {
		_, err := svc.SubmitGuess(context.Background(), 7, 3, value)
		assert.ErrorIs(t, err, domain.ErrGuessOutOfRange, "value %v", value)
	}
}

func TestSubmitGuess_AcceptsBoundaryValues(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(7)).
		Return(&domain.Hunt{ID: 7, Status: domain.HuntStatusOpen}, nil)
	repo.On("UpsertGuess", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, testBounds)

	for _, value := range []float64{0, 100000} {
		_, err := svc.SubmitGuess(context.Background(), 7, 3, value)
		assert.NoError(t, err, "value %v", value)
	}
}

func TestSubmitGuess_MissingHunt(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(99)).Return(nil, nil)

	svc := NewService(repo, testBounds)

	_, err := svc.SubmitGuess(context.Background(), 99, 3, 500)
	assert.ErrorIs(t, err, domain.ErrHuntNotFound)
}

func TestSubmitGuess_InvalidIDs(t *testing.T) {
	svc := NewService(new(mockGuessRepo), testBounds)

	_, err := svc.SubmitGuess(context.Background(), 0, 3, 500)
	assert.ErrorIs(t, err, domain.ErrInvalidHuntID)

	_, err = svc.SubmitGuess(context.Background(), 7, 0, 500)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestRemoveGuess_RejectsClosedHunt(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(7)).
		Return(&domain.Hunt{ID: 7, Status: domain.HuntStatusClosed}, nil)

	svc := NewService(repo, testBounds)

	err := svc.RemoveGuess(context.Background(), 7, 3)
	assert.ErrorIs(t, err, domain.ErrHuntClosed)
}

func TestGetGuess_NotFound(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetGuess", mock.Anything, int64(7), int64(3)).Return(nil, nil)

	svc := NewService(repo, testBounds)

	_, err := svc.GetGuess(context.Background(), 7, 3)
	assert.ErrorIs(t, err, domain.ErrGuessNotFound)
}

func TestDegenerateBoundsDisableRangeCheck(t *testing.T) {
	repo := new(mockGuessRepo)
	repo.On("GetHunt", mock.Anything, int64(7)).
		Return(&domain.Hunt{ID: 7, Status: domain.HuntStatusOpen}, nil)
	repo.On("UpsertGuess", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, Bounds{})

	_, err := svc.SubmitGuess(context.Background(), 7, 3, -5000)
	assert.NoError(t, err)
}
