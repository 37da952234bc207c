package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

const huntColumns = `id, title, starting_balance, final_balance, winners_count, status,
		affiliate_id, affiliate_site_id, created_at, updated_at, closed_at`

type huntRepository struct {
	db *pgxpool.Pool
}

// NewHuntRepository creates a new PostgreSQL hunt repository
func NewHuntRepository(db *pgxpool.Pool) repository.Hunt {
	return &huntRepository{db: db}
}

func (r *huntRepository) CreateHunt(ctx context.Context, hunt *domain.Hunt) error {
	query := `
		INSERT INTO hunts (title, starting_balance, winners_count, status, affiliate_id, affiliate_site_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		hunt.Title, hunt.StartingBalance, hunt.WinnersCount, hunt.Status,
		hunt.AffiliateID, hunt.AffiliateSiteID,
	).Scan(&hunt.ID, &hunt.CreatedAt, &hunt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hunt: %w", err)
	}
	return nil
}

func (r *huntRepository) GetHunt(ctx context.Context, id int64) (*domain.Hunt, error) {
	query := `SELECT ` + huntColumns + ` FROM hunts WHERE id = $1`
	return scanHunt(r.db.QueryRow(ctx, query, id))
}

func (r *huntRepository) ListHunts(ctx context.Context, filter repository.HuntFilter) ([]domain.Hunt, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + huntColumns + ` FROM hunts WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.Status != "" {
		fmt.Fprintf(&queryBuilder, " AND status = $%d", argNum)
		args = append(args, filter.Status)
		argNum++
	}
	if filter.AffiliateSiteID != nil {
		fmt.Fprintf(&queryBuilder, " AND affiliate_site_id = $%d", argNum)
		args = append(args, *filter.AffiliateSiteID)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		fmt.Fprintf(&queryBuilder, " OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hunts: %w", err)
	}
	defer rows.Close()

	var hunts []domain.Hunt
	for rows.Next() {
		h, err := scanHuntRow(rows)
		if err != nil {
			return nil, err
		}
		hunts = append(hunts, *h)
	}
	return hunts, rows.Err()
}

func (r *huntRepository) UpdateHunt(ctx context.Context, hunt *domain.Hunt) error {
	query := `
		UPDATE hunts
		SET title = $2, starting_balance = $3, final_balance = $4, winners_count = $5,
			status = $6, affiliate_id = $7, affiliate_site_id = $8, closed_at = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		hunt.ID, hunt.Title, hunt.StartingBalance, hunt.FinalBalance, hunt.WinnersCount,
		hunt.Status, hunt.AffiliateID, hunt.AffiliateSiteID, hunt.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to update hunt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHuntNotFound
	}
	return nil
}

func (r *huntRepository) DeleteHunt(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hunts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hunt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHuntNotFound
	}
	return nil
}

func (r *huntRepository) GetTournamentLinks(ctx context.Context, huntID int64) ([]int64, error) {
	return getTournamentLinks(ctx, r.db, huntID)
}

func (r *huntRepository) SetTournamentLinks(ctx context.Context, huntID int64, tournamentIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM hunt_tournaments WHERE hunt_id = $1`, huntID); err != nil {
		return fmt.Errorf("failed to clear tournament links: %w", err)
	}
	for _, tid := range tournamentIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO hunt_tournaments (hunt_id, tournament_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			huntID, tid)
		if err != nil {
			return fmt.Errorf("failed to link tournament %d: %w", tid, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *huntRepository) GetLedger(ctx context.Context, huntID int64) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, hunt_id, user_id, position, guess, diff, eligible, created_at
		FROM hunt_winners
		WHERE hunt_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.HuntID, &e.UserID, &e.Position, &e.Guess, &e.Diff, &e.Eligible, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func getTournamentLinks(ctx context.Context, q dbtx, huntID int64) ([]int64, error) {
	rows, err := q.Query(ctx,
		`SELECT tournament_id FROM hunt_tournaments WHERE hunt_id = $1 ORDER BY created_at ASC, tournament_id ASC`,
		huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament links: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tournament link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanHunt(row pgx.Row) (*domain.Hunt, error) {
	h, err := scanHuntRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

func scanHuntRow(row pgx.Row) (*domain.Hunt, error) {
	var h domain.Hunt
	err := row.Scan(
		&h.ID, &h.Title, &h.StartingBalance, &h.FinalBalance, &h.WinnersCount, &h.Status,
		&h.AffiliateID, &h.AffiliateSiteID, &h.CreatedAt, &h.UpdatedAt, &h.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan hunt: %w", err)
	}
	return &h, nil
}
