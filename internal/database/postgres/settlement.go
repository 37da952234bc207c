package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

type settlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new PostgreSQL settlement repository
func NewSettlementRepository(db *pgxpool.Pool) repository.Settlement {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	return &settlementTx{tx: tx}, nil
}

// settlementTx runs every read and write of one hunt closing on a single
// database transaction.
type settlementTx struct {
	tx pgx.Tx
}

func (t *settlementTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *settlementTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

// GetHuntForUpdate locks the hunt row for the duration of the settlement so
// two concurrent closings of the same hunt serialize.
func (t *settlementTx) GetHuntForUpdate(ctx context.Context, huntID int64) (*domain.Hunt, error) {
	query := `SELECT ` + huntColumns + ` FROM hunts WHERE id = $1 FOR UPDATE`
	return scanHunt(t.tx.QueryRow(ctx, query, huntID))
}

func (t *settlementTx) GetTournamentLinks(ctx context.Context, huntID int64) ([]int64, error) {
	return getTournamentLinks(ctx, t.tx, huntID)
}

func (t *settlementTx) GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error) {
	return getTournamentConfigs(ctx, t.tx, ids)
}

func (t *settlementTx) SetHuntClosed(ctx context.Context, huntID int64, finalBalance float64, closedAt time.Time) error {
	query := `
		UPDATE hunts
		SET status = 'closed', final_balance = $2, closed_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := t.tx.Exec(ctx, query, huntID, finalBalance, closedAt)
	if err != nil {
		return fmt.Errorf("failed to close hunt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHuntNotFound
	}
	return nil
}

func (t *settlementTx) GetExistingLedger(ctx context.Context, huntID int64) ([]domain.LedgerPosition, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT user_id, position FROM hunt_winners WHERE hunt_id = $1 ORDER BY position ASC`,
		huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing ledger: %w", err)
	}
	defer rows.Close()

	var positions []domain.LedgerPosition
	for rows.Next() {
		var p domain.LedgerPosition
		if err := rows.Scan(&p.UserID, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to scan ledger position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (t *settlementTx) DeleteLedger(ctx context.Context, huntID int64) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM hunt_winners WHERE hunt_id = $1`, huntID); err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}
	return nil
}

func (t *settlementTx) InsertLedgerEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	for _, e := range entries {
		_, err := t.tx.Exec(ctx, `
			INSERT INTO hunt_winners (hunt_id, user_id, position, guess, diff, eligible, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.HuntID, e.UserID, e.Position, e.Guess, e.Diff, e.Eligible, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}
	return nil
}

func (t *settlementTx) GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error) {
	return getRankedGuesses(ctx, t.tx, huntID, finalBalance, limit)
}

// CountEligibleWinsSince counts counted wins per user strictly after the
// window start, across all hunts.
func (t *settlementTx) CountEligibleWinsSince(ctx context.Context, since time.Time) (map[int64]int, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT user_id, COUNT(*)
		FROM hunt_winners
		WHERE eligible AND created_at > $1
		GROUP BY user_id
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent wins: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var n int
		if err := rows.Scan(&userID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan win count: %w", err)
		}
		counts[userID] = n
	}
	return counts, rows.Err()
}

// AdjustTournamentWins shifts a user's stored win count and drops the row
// once it reaches zero.
func (t *settlementTx) AdjustTournamentWins(ctx context.Context, tournamentID, userID int64, delta int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE tournament_results
		SET wins = wins + $3
		WHERE tournament_id = $1 AND user_id = $2
	`, tournamentID, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust tournament wins: %w", err)
	}

	_, err = t.tx.Exec(ctx, `
		DELETE FROM tournament_results
		WHERE tournament_id = $1 AND user_id = $2 AND wins <= 0
	`, tournamentID, userID)
	if err != nil {
		return fmt.Errorf("failed to prune tournament results: %w", err)
	}
	return nil
}

func (t *settlementTx) GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error) {
	return getLedgerRowsForTournament(ctx, t.tx, tournamentID, scope)
}

func (t *settlementTx) ReplaceTournamentResults(ctx context.Context, tournamentID int64, results []domain.TournamentResult) error {
	return replaceTournamentResults(ctx, t.tx, tournamentID, results)
}
