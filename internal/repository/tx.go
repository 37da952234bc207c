package repository

import (
	"context"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SettlementTx groups every read and write a hunt closing performs so the
// whole operation commits or rolls back as one unit.
type SettlementTx interface {
	Tx

	GetHuntForUpdate(ctx context.Context, huntID int64) (*domain.Hunt, error)
	GetTournamentLinks(ctx context.Context, huntID int64) ([]int64, error)
	GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error)
	SetHuntClosed(ctx context.Context, huntID int64, finalBalance float64, closedAt time.Time) error

	GetExistingLedger(ctx context.Context, huntID int64) ([]domain.LedgerPosition, error)
	DeleteLedger(ctx context.Context, huntID int64) error
	InsertLedgerEntries(ctx context.Context, entries []domain.LedgerEntry) error

	GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error)
	CountEligibleWinsSince(ctx context.Context, since time.Time) (map[int64]int, error)

	AdjustTournamentWins(ctx context.Context, tournamentID, userID int64, delta int) error
	GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error)
	ReplaceTournamentResults(ctx context.Context, tournamentID int64, rows []domain.TournamentResult) error
}
