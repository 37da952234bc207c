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

type guessRepository struct {
	db *pgxpool.Pool
}

// NewGuessRepository creates a new PostgreSQL guess repository
func NewGuessRepository(db *pgxpool.Pool) repository.Guess {
	return &guessRepository{db: db}
}

func (r *guessRepository) GetHunt(ctx context.Context, id int64) (*domain.Hunt, error) {
	query := `SELECT ` + huntColumns + ` FROM hunts WHERE id = $1`
	return scanHunt(r.db.QueryRow(ctx, query, id))
}

func (r *guessRepository) UpsertGuess(ctx context.Context, guess *domain.Guess) error {
	query := `
		INSERT INTO guesses (hunt_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (hunt_id, user_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, guess.HuntID, guess.UserID, guess.Value).
		Scan(&guess.ID, &guess.CreatedAt, &guess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert guess: %w", err)
	}
	return nil
}

func (r *guessRepository) GetGuess(ctx context.Context, huntID, userID int64) (*domain.Guess, error) {
	query := `
		SELECT id, hunt_id, user_id, value, created_at, updated_at
		FROM guesses
		WHERE hunt_id = $1 AND user_id = $2
	`
	var g domain.Guess
	err := r.db.QueryRow(ctx, query, huntID, userID).
		Scan(&g.ID, &g.HuntID, &g.UserID, &g.Value, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guess: %w", err)
	}
	return &g, nil
}

func (r *guessRepository) DeleteGuess(ctx context.Context, huntID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM guesses WHERE hunt_id = $1 AND user_id = $2`, huntID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete guess: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGuessNotFound
	}
	return nil
}

func (r *guessRepository) ListGuesses(ctx context.Context, huntID int64) ([]domain.Guess, error) {
	query := `
		SELECT id, hunt_id, user_id, value, created_at, updated_at
		FROM guesses
		WHERE hunt_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, huntID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	defer rows.Close()

	var guesses []domain.Guess
	for rows.Next() {
		var g domain.Guess
		if err := rows.Scan(&g.ID, &g.HuntID, &g.UserID, &g.Value, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guess: %w", err)
		}
		guesses = append(guesses, g)
	}
	return guesses, rows.Err()
}

func (r *guessRepository) GetRankedGuesses(ctx context.Context, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error) {
	return getRankedGuesses(ctx, r.db, huntID, finalBalance, limit)
}

// getRankedGuesses is the ranking query: closest guess first, ties broken by
// the lower guess id (first submitted). limit <= 0 fetches all rows.
func getRankedGuesses(ctx context.Context, q dbtx, huntID int64, finalBalance float64, limit int) ([]domain.RankedGuess, error) {
	query := `
		SELECT id, user_id, value, ABS(value - $2) AS diff
		FROM guesses
		WHERE hunt_id = $1
		ORDER BY diff ASC, id ASC
	`
	args := []interface{}{huntID, finalBalance}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to rank guesses: %w", err)
	}
	defer rows.Close()

	var ranked []domain.RankedGuess
	for rows.Next() {
		var g domain.RankedGuess
		if err := rows.Scan(&g.GuessID, &g.UserID, &g.Value, &g.Diff); err != nil {
			return nil, fmt.Errorf("failed to scan ranked guess: %w", err)
		}
		ranked = append(ranked, g)
	}
	return ranked, rows.Err()
}
