package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/event"
)

var closedAt = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, tx *mockSettlementTx, jackpotSvc JackpotService, bus event.Bus, cfg domain.SettlementConfig) (Service, *mockSettlementRepo) {
	t.Helper()
	repo := new(mockSettlementRepo)
	repo.On("BeginSettlementTx", mock.Anything).Return(tx, nil)

	svc := NewService(repo, jackpotSvc, bus, cfg).(*service)
	svc.now = func() time.Time { return closedAt }
	return svc, repo
}

func openHunt(id int64, winnersCount int) *domain.Hunt {
	return &domain.Hunt{
		ID:           id,
		Title:        "Friday Night Hunt",
		WinnersCount: winnersCount,
		Status:       domain.HuntStatusOpen,
	}
}

// expectBaseline wires the calls every successful close performs.
func expectBaseline(tx *mockSettlementTx, hunt *domain.Hunt, links []int64, configs map[int64]domain.TournamentConfig) {
	tx.On("GetHuntForUpdate", mock.Anything, hunt.ID).Return(hunt, nil)
	tx.On("GetTournamentLinks", mock.Anything, hunt.ID).Return(links, nil)
	tx.On("GetTournamentConfigs", mock.Anything, mock.Anything).Return(configs, nil)
	tx.On("SetHuntClosed", mock.Anything, hunt.ID, mock.Anything, closedAt).Return(nil)
	tx.On("GetExistingLedger", mock.Anything, hunt.ID).Return([]domain.LedgerPosition{}, nil)
	tx.On("Rollback", mock.Anything).Return(errors.New(domain.ErrMsgTxClosed))
}

func TestCloseHunt_NonPositiveIDIsNoOp(t *testing.T) {
	repo := new(mockSettlementRepo)
	svc := NewService(repo, nil, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 0, 1000)

	require.NoError(t, err)
	assert.Empty(t, winners)
	repo.AssertNotCalled(t, "BeginSettlementTx", mock.Anything)
}

func TestCloseHunt_MissingHuntIsNoOp(t *testing.T) {
	tx := new(mockSettlementTx)
	tx.On("GetHuntForUpdate", mock.Anything, int64(42)).Return(nil, nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 42, 1000)

	require.NoError(t, err)
	assert.Empty(t, winners)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "SetHuntClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCloseHunt_AwardsClosestGuessers(t *testing.T) {
	hunt := openHunt(7, 2)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	// Guesses 100, 105 and 95 against a final balance of 102 rank the 100
	// guesser first (diff 2) and the 105 guesser second (diff 3); with two
	// winners only the top two rows are even fetched.
	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 2).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
		{GuessID: 12, UserID: 2, Value: 105, Diff: 3},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	bus := event.NewMemoryBus()
	var published event.HuntClosedPayloadV1
	bus.Subscribe(event.HuntClosed, func(ctx context.Context, ev event.Event) error {
		published = ev.Payload.(event.HuntClosedPayloadV1)
		return nil
	})

	svc, _ := newTestService(t, tx, nil, bus, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, winners)

	require.Len(t, tx.inserted, 2)
	assert.Equal(t, 1, tx.inserted[0].Position)
	assert.Equal(t, int64(1), tx.inserted[0].UserID)
	assert.True(t, tx.inserted[0].Eligible)
	assert.Equal(t, 2.0, tx.inserted[0].Diff)
	assert.Equal(t, 2, tx.inserted[1].Position)
	assert.Equal(t, int64(2), tx.inserted[1].UserID)
	assert.True(t, tx.inserted[1].Eligible)

	assert.Equal(t, []int64{1, 2}, published.WinnerIDs)
	assert.Equal(t, int64(7), published.HuntID)
	assert.Equal(t, 2, published.Participants)

	tx.AssertNotCalled(t, "ReplaceTournamentResults", mock.Anything, mock.Anything, mock.Anything)
}

func TestCloseHunt_ZeroWinnersCountFallsBackToOne(t *testing.T) {
	hunt := openHunt(7, 0)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	tx.On("GetRankedGuesses", mock.Anything, int64(7), 500.0, 1).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 3, Value: 498, Diff: 2},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 7, 500)

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, winners)
}

func TestCloseHunt_AllModeRecordsAndReturnsEveryParticipant(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{10}, map[int64]domain.TournamentConfig{
		10: {ID: 10, ParticipantsMode: domain.ParticipantsModeAll},
	})

	// All-mode forces an unlimited fetch.
	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 0).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
		{GuessID: 12, UserID: 2, Value: 105, Diff: 3},
		{GuessID: 13, UserID: 3, Value: 95, Diff: 7},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("GetLedgerRowsForTournament", mock.Anything, int64(10), domain.RankingScopeAll).
		Return([]domain.TournamentLedgerRow{}, nil)
	tx.On("ReplaceTournamentResults", mock.Anything, int64(10), mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, domain.SettlementConfig{})

	returned, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, returned)

	require.Len(t, tx.inserted, 3)
	assert.True(t, tx.inserted[0].Eligible)
	assert.False(t, tx.inserted[1].Eligible)
	assert.False(t, tx.inserted[2].Eligible)

	tx.AssertCalled(t, "ReplaceTournamentResults", mock.Anything, int64(10), mock.Anything)
}

func TestCloseHunt_WinLimitSkipsRecentWinner(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	cfg := domain.SettlementConfig{
		HuntWinLimit: domain.WinLimit{MaxCount: 2, Period: domain.LimitPeriodWeek},
	}

	// User 1 already hit the weekly cap, so despite the closest guess the
	// award passes to user 2; user 1 keeps position 1 for audit.
	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 0).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
		{GuessID: 12, UserID: 2, Value: 105, Diff: 3},
	}, nil)
	tx.On("CountEligibleWinsSince", mock.Anything, closedAt.AddDate(0, 0, -7)).
		Return(map[int64]int{1: 2}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, cfg)

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{2}, winners)

	require.Len(t, tx.inserted, 2)
	assert.Equal(t, int64(1), tx.inserted[0].UserID)
	assert.Equal(t, 1, tx.inserted[0].Position)
	assert.False(t, tx.inserted[0].Eligible)
	assert.Equal(t, int64(2), tx.inserted[1].UserID)
	assert.Equal(t, 2, tx.inserted[1].Position)
	assert.True(t, tx.inserted[1].Eligible)
}

func TestCloseHunt_ReversesPriorClose(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	tx.On("GetHuntForUpdate", mock.Anything, int64(7)).Return(hunt, nil)
	tx.On("GetTournamentLinks", mock.Anything, int64(7)).Return([]int64{10}, nil)
	tx.On("GetTournamentConfigs", mock.Anything, mock.Anything).
		Return(map[int64]domain.TournamentConfig{10: {ID: 10}}, nil)
	tx.On("SetHuntClosed", mock.Anything, int64(7), mock.Anything, closedAt).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New(domain.ErrMsgTxClosed))

	// A prior close awarded user 5 at position 1; position 2 was outside the
	// winners count and never counted, so only user 5 gets decremented.
	tx.On("GetExistingLedger", mock.Anything, int64(7)).Return([]domain.LedgerPosition{
		{UserID: 5, Position: 1},
		{UserID: 6, Position: 2},
	}, nil)
	tx.On("DeleteLedger", mock.Anything, int64(7)).Return(nil)
	tx.On("AdjustTournamentWins", mock.Anything, int64(10), int64(5), -1).Return(nil)

	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 1).Return([]domain.RankedGuess{}, nil)
	tx.On("Commit", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Empty(t, winners)

	tx.AssertCalled(t, "DeleteLedger", mock.Anything, int64(7))
	tx.AssertCalled(t, "AdjustTournamentWins", mock.Anything, int64(10), int64(5), -1)
	tx.AssertNotCalled(t, "AdjustTournamentWins", mock.Anything, int64(10), int64(6), -1)
	tx.AssertNotCalled(t, "InsertLedgerEntries", mock.Anything, mock.Anything)
}

func TestCloseHunt_LedgerWriteFailureAbortsClose(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 1).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc, _ := newTestService(t, tx, nil, nil, domain.SettlementConfig{})

	_, err := svc.CloseHunt(context.Background(), 7, 102)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write winner ledger")
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCloseHunt_JackpotFailureDoesNotFailClose(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 0).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	jackpot := new(mockJackpotService)
	jackpot.On("HandleHuntClosure", mock.Anything, int64(7), 102.0, mock.Anything, mock.Anything).
		Return(errors.New("rng service down"))

	svc, _ := newTestService(t, tx, jackpot, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, winners)
	jackpot.AssertExpectations(t)
}

func TestCloseHunt_JackpotDrawsFromFullRankedField(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	// One winner, three participants: the draw pool still spans all three,
	// so the ranked fetch may not stop at the winners count.
	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 0).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
		{GuessID: 12, UserID: 2, Value: 105, Diff: 3},
		{GuessID: 13, UserID: 3, Value: 95, Diff: 7},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	var pool []domain.RankedGuess
	jackpot := new(mockJackpotService)
	jackpot.On("HandleHuntClosure", mock.Anything, int64(7), 102.0, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			pool = args.Get(3).([]domain.RankedGuess)
		}).
		Return(nil)

	svc, _ := newTestService(t, tx, jackpot, nil, domain.SettlementConfig{})

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, winners)

	require.Len(t, pool, 3)
	assert.Equal(t, int64(3), pool[2].UserID)
}

func TestCloseHunt_UnrecognizedLimitPeriodDisablesLimit(t *testing.T) {
	hunt := openHunt(7, 1)
	tx := new(mockSettlementTx)
	expectBaseline(tx, hunt, []int64{}, map[int64]domain.TournamentConfig{})

	cfg := domain.SettlementConfig{
		HuntWinLimit: domain.WinLimit{MaxCount: 1, Period: "weekly"},
	}

	// A period outside the known set must behave like no limit at all: the
	// fetch stays top-N and no win counting happens, instead of the window
	// silently degenerating into an all-time cap.
	tx.On("GetRankedGuesses", mock.Anything, int64(7), 102.0, 1).Return([]domain.RankedGuess{
		{GuessID: 11, UserID: 1, Value: 100, Diff: 2},
	}, nil)
	tx.On("InsertLedgerEntries", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	svc, _ := newTestService(t, tx, nil, nil, cfg)

	winners, err := svc.CloseHunt(context.Background(), 7, 102)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, winners)

	require.Len(t, tx.inserted, 1)
	assert.True(t, tx.inserted[0].Eligible)
	tx.AssertNotCalled(t, "CountEligibleWinsSince", mock.Anything, mock.Anything)
}
