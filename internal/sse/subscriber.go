package sse

import (
	"context"
	"log/slog"

	"github.com/bonushunt/bonushunt-backend/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub. The bus carries
// typed payloads, which are broadcast to clients as-is; the hub's JSON
// encoding produces the same shape the REST API uses.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all streamed event types
func (s *Subscriber) Subscribe() {
	for _, t := range []event.Type{event.HuntClosed, event.TournamentRecalculated, event.JackpotWon} {
		s.bus.Subscribe(t, s.relay)
	}

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.HuntClosed),
			string(event.TournamentRecalculated),
			string(event.JackpotWon),
		})
}

func (s *Subscriber) relay(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
