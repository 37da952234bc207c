package tournament

import (
	"context"
	"fmt"
)

// RefreshJob rebuilds the standings of every tournament. Scheduled
// periodically so leaderboards self-heal after manual ledger corrections made
// outside the settlement path.
type RefreshJob struct {
	svc Service
}

// NewRefreshJob creates a refresh job bound to a tournament service
func NewRefreshJob(svc Service) *RefreshJob {
	return &RefreshJob{svc: svc}
}

func (j *RefreshJob) Process(ctx context.Context) error {
	tournaments, err := j.svc.ListTournaments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tournaments for refresh: %w", err)
	}
	if len(tournaments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(tournaments))
	for _, t := range tournaments {
		ids = append(ids, t.ID)
	}

	return j.svc.Recalculate(ctx, ids)
}
