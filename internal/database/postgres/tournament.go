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

type tournamentRepository struct {
	db *pgxpool.Pool
}

// NewTournamentRepository creates a new PostgreSQL tournament repository
func NewTournamentRepository(db *pgxpool.Pool) repository.Tournament {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	pointsJSON, err := domain.EncodePointsMap(t.PointsMap)
	if err != nil {
		return fmt.Errorf("failed to encode points map: %w", err)
	}

	query := `
		INSERT INTO tournaments (title, participants_mode, ranking_scope, points_map, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query,
		t.Title, t.ParticipantsMode, t.RankingScope, pointsJSON, t.StartsAt, t.EndsAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

func (r *tournamentRepository) GetTournament(ctx context.Context, id int64) (*domain.Tournament, error) {
	query := `
		SELECT id, title, participants_mode, ranking_scope, points_map, starts_at, ends_at, created_at, updated_at
		FROM tournaments
		WHERE id = $1
	`
	var t domain.Tournament
	var pointsJSON []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.ParticipantsMode, &t.RankingScope, &pointsJSON,
		&t.StartsAt, &t.EndsAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	t.PointsMap = domain.ParsePointsMap(pointsJSON)
	return &t, nil
}

func (r *tournamentRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	query := `
		SELECT id, title, participants_mode, ranking_scope, points_map, starts_at, ends_at, created_at, updated_at
		FROM tournaments
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []domain.Tournament
	for rows.Next() {
		var t domain.Tournament
		var pointsJSON []byte
		if err := rows.Scan(
			&t.ID, &t.Title, &t.ParticipantsMode, &t.RankingScope, &pointsJSON,
			&t.StartsAt, &t.EndsAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		t.PointsMap = domain.ParsePointsMap(pointsJSON)
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *tournamentRepository) UpdateTournament(ctx context.Context, t *domain.Tournament) error {
	pointsJSON, err := domain.EncodePointsMap(t.PointsMap)
	if err != nil {
		return fmt.Errorf("failed to encode points map: %w", err)
	}

	query := `
		UPDATE tournaments
		SET title = $2, participants_mode = $3, ranking_scope = $4, points_map = $5,
			starts_at = $6, ends_at = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		t.ID, t.Title, t.ParticipantsMode, t.RankingScope, pointsJSON, t.StartsAt, t.EndsAt)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentRepository) DeleteTournament(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentRepository) GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error) {
	return getTournamentConfigs(ctx, r.db, ids)
}

func (r *tournamentRepository) GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error) {
	return getLedgerRowsForTournament(ctx, r.db, tournamentID, scope)
}

func (r *tournamentRepository) ReplaceTournamentResults(ctx context.Context, tournamentID int64, results []domain.TournamentResult) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := replaceTournamentResults(ctx, tx, tournamentID, results); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *tournamentRepository) GetTournamentResults(ctx context.Context, tournamentID int64) ([]domain.TournamentResult, error) {
	query := `
		SELECT tournament_id, user_id, wins, points, last_win_date
		FROM tournament_results
		WHERE tournament_id = $1
		ORDER BY points DESC, wins DESC, last_win_date ASC, user_id ASC
	`
	rows, err := r.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament results: %w", err)
	}
	defer rows.Close()

	var results []domain.TournamentResult
	for rows.Next() {
		var res domain.TournamentResult
		if err := rows.Scan(&res.TournamentID, &res.UserID, &res.Wins, &res.Points, &res.LastWinDate); err != nil {
			return nil, fmt.Errorf("failed to scan tournament result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ---- Shared tournament queries (pool or settlement transaction) ----

func getTournamentConfigs(ctx context.Context, q dbtx, ids []int64) (map[int64]domain.TournamentConfig, error) {
	configs := make(map[int64]domain.TournamentConfig, len(ids))
	if len(ids) == 0 {
		return configs, nil
	}

	rows, err := q.Query(ctx,
		`SELECT id, participants_mode, ranking_scope, points_map FROM tournaments WHERE id = ANY($1)`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament configs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cfg domain.TournamentConfig
		var pointsJSON []byte
		if err := rows.Scan(&cfg.ID, &cfg.ParticipantsMode, &cfg.RankingScope, &pointsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan tournament config: %w", err)
		}
		cfg.PointsMap = domain.ParsePointsMap(pointsJSON)
		configs[cfg.ID] = cfg
	}
	return configs, rows.Err()
}

// getLedgerRowsForTournament joins the winner ledger with hunt context.
// EventDate falls back through the hunt's timestamps when a ledger row
// carries none of its own.
func getLedgerRowsForTournament(ctx context.Context, q dbtx, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error) {
	query := `
		SELECT w.id, w.user_id, w.position, w.eligible, h.winners_count,
			COALESCE(w.created_at, h.closed_at, h.updated_at, h.created_at) AS event_date
		FROM hunt_winners w
		JOIN hunts h ON h.id = w.hunt_id
		JOIN hunt_tournaments ht ON ht.hunt_id = h.id
		WHERE ht.tournament_id = $1
	`
	switch scope {
	case domain.RankingScopeClosed:
		query += ` AND h.status = 'closed'`
	case domain.RankingScopeActive:
		query += ` AND h.status = 'open'`
	}
	query += ` ORDER BY event_date ASC, w.position ASC, w.id ASC`

	rows, err := q.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger rows: %w", err)
	}
	defer rows.Close()

	var ledger []domain.TournamentLedgerRow
	for rows.Next() {
		var row domain.TournamentLedgerRow
		if err := rows.Scan(&row.LedgerID, &row.UserID, &row.Position, &row.Eligible, &row.WinnersCount, &row.EventDate); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledger = append(ledger, row)
	}
	return ledger, rows.Err()
}

func replaceTournamentResults(ctx context.Context, q dbtx, tournamentID int64, results []domain.TournamentResult) error {
	if _, err := q.Exec(ctx, `DELETE FROM tournament_results WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to clear tournament results: %w", err)
	}

	for _, res := range results {
		_, err := q.Exec(ctx, `
			INSERT INTO tournament_results (tournament_id, user_id, wins, points, last_win_date)
			VALUES ($1, $2, $3, $4, $5)
		`, tournamentID, res.UserID, res.Wins, res.Points, res.LastWinDate)
		if err != nil {
			return fmt.Errorf("failed to insert tournament result: %w", err)
		}
	}
	return nil
}
