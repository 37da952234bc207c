package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

type jackpotRepository struct {
	db *pgxpool.Pool
}

// NewJackpotRepository creates a new PostgreSQL jackpot repository
func NewJackpotRepository(db *pgxpool.Pool) repository.Jackpot {
	return &jackpotRepository{db: db}
}

const jackpotColumns = `id, title, enabled, trigger_chance, min_payout, max_payout, affiliate_site_id, created_at, updated_at`

func (r *jackpotRepository) CreateJackpot(ctx context.Context, j *domain.Jackpot) error {
	query := `
		INSERT INTO jackpots (title, enabled, trigger_chance, min_payout, max_payout, affiliate_site_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		j.Title, j.Enabled, j.TriggerChance, j.MinPayout, j.MaxPayout, j.AffiliateSiteID,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert jackpot: %w", err)
	}
	return nil
}

func (r *jackpotRepository) GetJackpot(ctx context.Context, id int64) (*domain.Jackpot, error) {
	var j domain.Jackpot
	err := r.db.QueryRow(ctx, `SELECT `+jackpotColumns+` FROM jackpots WHERE id = $1`, id).Scan(
		&j.ID, &j.Title, &j.Enabled, &j.TriggerChance, &j.MinPayout, &j.MaxPayout,
		&j.AffiliateSiteID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}
	return &j, nil
}

func (r *jackpotRepository) ListJackpots(ctx context.Context, enabledOnly bool) ([]domain.Jackpot, error) {
	query := `SELECT ` + jackpotColumns + ` FROM jackpots`
	if enabledOnly {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jackpots: %w", err)
	}
	defer rows.Close()

	var jackpots []domain.Jackpot
	for rows.Next() {
		var j domain.Jackpot
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Enabled, &j.TriggerChance, &j.MinPayout, &j.MaxPayout,
			&j.AffiliateSiteID, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan jackpot: %w", err)
		}
		jackpots = append(jackpots, j)
	}
	return jackpots, rows.Err()
}

func (r *jackpotRepository) UpdateJackpot(ctx context.Context, j *domain.Jackpot) error {
	query := `
		UPDATE jackpots
		SET title = $2, enabled = $3, trigger_chance = $4, min_payout = $5, max_payout = $6,
			affiliate_site_id = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		j.ID, j.Title, j.Enabled, j.TriggerChance, j.MinPayout, j.MaxPayout, j.AffiliateSiteID)
	if err != nil {
		return fmt.Errorf("failed to update jackpot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJackpotNotFound
	}
	return nil
}

func (r *jackpotRepository) RecordJackpotEvent(ctx context.Context, ev *domain.JackpotEvent) error {
	query := `
		INSERT INTO jackpot_events (jackpot_id, hunt_id, user_id, amount, final_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		ev.JackpotID, ev.HuntID, ev.UserID, ev.Amount, ev.FinalBalance, ev.CreatedAt,
	).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("failed to record jackpot event: %w", err)
	}
	return nil
}

func (r *jackpotRepository) ListJackpotEvents(ctx context.Context, jackpotID int64, limit int) ([]domain.JackpotEvent, error) {
	query := `
		SELECT id, jackpot_id, hunt_id, user_id, amount, final_balance, created_at
		FROM jackpot_events
		WHERE jackpot_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{jackpotID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jackpot events: %w", err)
	}
	defer rows.Close()

	var events []domain.JackpotEvent
	for rows.Next() {
		var ev domain.JackpotEvent
		if err := rows.Scan(&ev.ID, &ev.JackpotID, &ev.HuntID, &ev.UserID, &ev.Amount, &ev.FinalBalance, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan jackpot event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
