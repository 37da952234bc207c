package notification

import (
	"context"

	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/worker"
)

// notifyJob delivers one closing's notifications on the worker pool
type notifyJob struct {
	svc     *Service
	closing Closing
}

func (j *notifyJob) Process(ctx context.Context) error {
	return j.svc.NotifyWinners(ctx, j.closing)
}

// SubscribeHuntClosed wires the notifier to the event bus: every hunt.closed
// event becomes a pool job, so slow delivery never blocks the publisher.
func SubscribeHuntClosed(bus event.Bus, pool *worker.Pool, svc *Service) {
	bus.Subscribe(event.HuntClosed, func(ctx context.Context, ev event.Event) error {
		payload, ok := ev.Payload.(event.HuntClosedPayloadV1)
		if !ok {
			return nil
		}
		pool.Enqueue(&notifyJob{
			svc: svc,
			closing: Closing{
				HuntID:       payload.HuntID,
				HuntTitle:    payload.Title,
				FinalBalance: payload.FinalBalance,
				WinnerIDs:    payload.WinnerIDs,
				Participants: payload.Participants,
			},
		})
		return nil
	})
}
