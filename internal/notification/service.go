package notification

import (
	"context"
	"fmt"

	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
)

// Sender delivers one rendered notification to one user. Implementations
// decide the channel; delivery failures are per-recipient and never stop the
// remaining recipients.
type Sender interface {
	Send(ctx context.Context, userID int64, subject, body string) error
}

// LogSender writes notifications to the structured log instead of an outbound
// channel, the default until a mail or chat integration is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, userID int64, subject, body string) error {
	logger.FromContext(ctx).Info("Notification",
		"user_id", userID, "subject", subject, "body", body)
	return nil
}

// Closing is the hunt closing as seen by the notifier
type Closing struct {
	HuntID       int64
	HuntTitle    string
	FinalBalance float64
	WinnerIDs    []int64
	Participants int
}

// Service fans a hunt closing out to its winners
type Service struct {
	renderer *Renderer
	sender   Sender
	auditLog eventlog.Repository
}

// NewService creates a new notification service. auditLog may be nil when no
// audit trail is wanted.
func NewService(renderer *Renderer, sender Sender, auditLog eventlog.Repository) *Service {
	return &Service{
		renderer: renderer,
		sender:   sender,
		auditLog: auditLog,
	}
}

// NotifyWinners sends a winner message to every winner of a closing.
// Failures are counted and reported once at the end so a single bad
// recipient cannot block the rest.
func (s *Service) NotifyWinners(ctx context.Context, closing Closing) error {
	log := logger.FromContext(ctx)

	failures := 0
	for i, userID := range closing.WinnerIDs {
		subject := s.renderer.WinnerSubject(closing.HuntTitle)
		body := s.renderer.WinnerBody(closing.HuntTitle, i+1, closing.FinalBalance)

		if err := s.sender.Send(ctx, userID, subject, body); err != nil {
			failures++
			log.Error("Failed to send winner notification",
				"hunt_id", closing.HuntID, "user_id", userID, "error", err)
			continue
		}

		s.audit(ctx, userID, closing)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d winner notifications failed", failures, len(closing.WinnerIDs))
	}
	return nil
}

func (s *Service) audit(ctx context.Context, userID int64, closing Closing) {
	if s.auditLog == nil {
		return
	}
	err := s.auditLog.LogEvent(ctx, "notification.sent", &userID, map[string]interface{}{
		"hunt_id":       closing.HuntID,
		"final_balance": closing.FinalBalance,
	})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to audit notification",
			"hunt_id", closing.HuntID, "user_id", userID, "error", err)
	}
}
