package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/notification"
	"github.com/bonushunt/bonushunt-backend/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLog        eventlog.Repository
	Pool            *worker.Pool
	NotificationSvc *notification.Service
}

// RegisterEventHandlers sets up all event bus subscribers:
//   - the audit logger, which persists every published event
//   - the winner notification consumer, which delivers via the worker pool
func RegisterEventHandlers(deps EventHandlerDependencies) {
	for _, t := range []event.Type{event.HuntClosed, event.TournamentRecalculated, event.JackpotWon} {
		deps.EventBus.Subscribe(t, auditHandler(deps.EventLog))
	}
	slog.Info(LogMsgEventAuditSubscribed)

	if deps.NotificationSvc != nil && deps.Pool != nil {
		notification.SubscribeHuntClosed(deps.EventBus, deps.Pool, deps.NotificationSvc)
		slog.Info(LogMsgNotificationSubscribed)
	}
}

// auditHandler persists a published event into the audit log. Failures are
// logged, never propagated; the audit trail must not fail domain operations.
func auditHandler(repo eventlog.Repository) event.Handler {
	return func(ctx context.Context, e event.Event) error {
		payload, err := payloadToMap(e.Payload)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to encode event payload for audit",
				"event_type", e.Type, "error", err)
			return nil
		}

		var userID *int64
		if jp, ok := e.Payload.(event.JackpotWonPayloadV1); ok {
			userID = &jp.UserID
		}

		if err := repo.LogEvent(ctx, string(e.Type), userID, payload); err != nil {
			logger.FromContext(ctx).Error("Failed to persist audit event",
				"event_type", e.Type, "error", err)
		}
		return nil
	}
}

func payloadToMap(payload interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
