package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bonushunt/bonushunt-backend/internal/database/postgres"
	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Hunt       repository.Hunt
	Guess      repository.Guess
	Tournament repository.Tournament
	Jackpot    repository.Jackpot
	Settlement repository.Settlement
	EventLog   eventlog.Repository
}

// InitializeRepositories creates all repository implementations against the
// shared connection pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Hunt:       postgres.NewHuntRepository(dbPool),
		Guess:      postgres.NewGuessRepository(dbPool),
		Tournament: postgres.NewTournamentRepository(dbPool),
		Jackpot:    postgres.NewJackpotRepository(dbPool),
		Settlement: postgres.NewSettlementRepository(dbPool),
		EventLog:   postgres.NewEventLogRepository(dbPool),
	}
}
