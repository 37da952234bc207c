package repository

import (
	"context"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Tournament defines the data access required by the tournament service
type Tournament interface {
	CreateTournament(ctx context.Context, t *domain.Tournament) error
	GetTournament(ctx context.Context, id int64) (*domain.Tournament, error)
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
	UpdateTournament(ctx context.Context, t *domain.Tournament) error
	DeleteTournament(ctx context.Context, id int64) error

	GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error)
	GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error)
	ReplaceTournamentResults(ctx context.Context, tournamentID int64, rows []domain.TournamentResult) error
	GetTournamentResults(ctx context.Context, tournamentID int64) ([]domain.TournamentResult, error)
}
