package tournament

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/metrics"
)

// ResultStore is the storage surface recalculation needs. It is satisfied by
// both the pooled tournament repository and the settlement transaction, so a
// hunt closing can rebuild standings inside its own transaction.
type ResultStore interface {
	GetTournamentConfigs(ctx context.Context, ids []int64) (map[int64]domain.TournamentConfig, error)
	GetLedgerRowsForTournament(ctx context.Context, tournamentID int64, scope domain.RankingScope) ([]domain.TournamentLedgerRow, error)
	ReplaceTournamentResults(ctx context.Context, tournamentID int64, rows []domain.TournamentResult) error
}

// RecalculateResults rebuilds the result rows of each tournament from
// scratch out of the winner ledger. The rebuild is a full delete-then-insert,
// so running it twice with an unchanged ledger yields identical rows.
// Returns the number of stored result rows per tournament.
func RecalculateResults(ctx context.Context, store ResultStore, tournamentIDs []int64, limit domain.WinLimit) (map[int64]int, error) {
	if len(tournamentIDs) == 0 {
		return nil, nil
	}

	configs, err := store.GetTournamentConfigs(ctx, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament configs: %w", err)
	}

	rowCounts := make(map[int64]int, len(tournamentIDs))
	for _, id := range tournamentIDs {
		cfg := configs[id].Normalize()

		rows, err := store.GetLedgerRowsForTournament(ctx, id, cfg.RankingScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger rows for tournament %d: %w", id, err)
		}

		results := buildResults(id, cfg, rows, limit)

		// Replace is delete-then-insert; an empty tournament wipes its old
		// rows and stays empty, which is valid and intentional.
		if err := store.ReplaceTournamentResults(ctx, id, results); err != nil {
			return nil, fmt.Errorf("failed to replace results for tournament %d: %w", id, err)
		}

		rowCounts[id] = len(results)
		metrics.TournamentsRecalculated.Inc()
		logger.FromContext(ctx).Debug("Tournament results rebuilt",
			"tournament_id", id, "rows", len(results))
	}

	return rowCounts, nil
}

type userTotals struct {
	userID    int64
	wins      int
	points    int
	lastEvent time.Time
	window    []time.Time // qualifying win timestamps inside the rolling window
}

// buildResults accumulates per-user wins and points over the ledger rows of
// one tournament, in event-chronological order so the rolling win limit can
// slide correctly.
func buildResults(tournamentID int64, cfg domain.TournamentConfig, rows []domain.TournamentLedgerRow, limit domain.WinLimit) []domain.TournamentResult {
	if len(rows) == 0 {
		return nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].EventDate.Equal(rows[j].EventDate) {
			return rows[i].EventDate.Before(rows[j].EventDate)
		}
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].LedgerID < rows[j].LedgerID
	})

	totals := make(map[int64]*userTotals)
	limitActive := limit.Active()

	for _, row := range rows {
		if row.UserID <= 0 {
			continue
		}
		// Ineligible rows never feed winners-mode standings, but all-mode
		// tournaments score every recorded participant.
		if !row.Eligible && cfg.ParticipantsMode != domain.ParticipantsModeAll {
			continue
		}

		countsAsWin := rowCountsAsWin(row, cfg)

		t := totals[row.UserID]
		if t == nil {
			t = &userTotals{userID: row.UserID}
			totals[row.UserID] = t
		}

		if limitActive && countsAsWin {
			t.window = pruneWindow(t.window, limit.Period.WindowStart(row.EventDate))
			if len(t.window) >= limit.MaxCount {
				// Over the cap: this row contributes nothing at all.
				continue
			}
		}

		t.points += cfg.PointsMap[row.Position]
		if countsAsWin {
			t.wins++
		}
		if row.EventDate.After(t.lastEvent) {
			t.lastEvent = row.EventDate
		}
		if limitActive && countsAsWin {
			t.window = append(t.window, row.EventDate)
		}
	}

	results := make([]domain.TournamentResult, 0, len(totals))
	now := time.Now()
	for _, t := range totals {
		if t.wins == 0 && t.points == 0 {
			continue
		}
		points := t.points
		if points < 0 {
			points = 0
		}
		lastWin := t.lastEvent
		if lastWin.IsZero() {
			lastWin = now
		}
		results = append(results, domain.TournamentResult{
			TournamentID: tournamentID,
			UserID:       t.userID,
			Wins:         t.wins,
			Points:       points,
			LastWinDate:  lastWin,
		})
	}

	// Storage is keyed by (tournament, user); this ordering only makes the
	// insert sequence deterministic for diffing.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		if results[i].Wins != results[j].Wins {
			return results[i].Wins > results[j].Wins
		}
		if !results[i].LastWinDate.Equal(results[j].LastWinDate) {
			return results[i].LastWinDate.Before(results[j].LastWinDate)
		}
		return results[i].UserID < results[j].UserID
	})

	return results
}

// rowCountsAsWin applies the participants mode. Winners mode only counts
// positions inside the hunt's winners count; a hunt stored without one falls
// back to the breadth of the points schedule.
func rowCountsAsWin(row domain.TournamentLedgerRow, cfg domain.TournamentConfig) bool {
	if cfg.ParticipantsMode == domain.ParticipantsModeAll {
		return row.Position > 0
	}
	effectiveLimit := row.WinnersCount
	if effectiveLimit <= 0 {
		effectiveLimit = len(cfg.PointsMap)
		if effectiveLimit < 1 {
			effectiveLimit = 1
		}
	}
	return row.Position > 0 && row.Position <= effectiveLimit
}

// pruneWindow drops timestamps at or before the window start
func pruneWindow(window []time.Time, start time.Time) []time.Time {
	if start.IsZero() {
		return window
	}
	kept := window[:0]
	for _, t := range window {
		if t.After(start) {
			kept = append(kept, t)
		}
	}
	return kept
}
