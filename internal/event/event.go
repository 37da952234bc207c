package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

// Type represents the type of an event
type Type string

// Event bus event types
const (
	HuntClosed             Type = Type(domain.EventTypeHuntClosed)
	TournamentRecalculated Type = Type(domain.EventTypeTournamentRecalculated)
	JackpotWon             Type = Type(domain.EventTypeJackpotWon)
	NotificationSent       Type = Type(domain.EventTypeNotificationSent)
)

// EventSchemaVersion is the current payload schema version
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// HuntClosedPayloadV1 is the typed payload for hunt closure events
type HuntClosedPayloadV1 struct {
	HuntID       int64   `json:"hunt_id"`
	Title        string  `json:"title"`
	FinalBalance float64 `json:"final_balance"`
	WinnerIDs    []int64 `json:"winner_ids"`
	Participants int     `json:"participants"`
	Timestamp    int64   `json:"timestamp"`
}

// TournamentRecalculatedPayloadV1 is the typed payload for recalculation events
type TournamentRecalculatedPayloadV1 struct {
	TournamentID int64 `json:"tournament_id"`
	ResultRows   int   `json:"result_rows"`
	Timestamp    int64 `json:"timestamp"`
}

// JackpotWonPayloadV1 is the typed payload for jackpot hit events
type JackpotWonPayloadV1 struct {
	JackpotID int64   `json:"jackpot_id"`
	HuntID    int64   `json:"hunt_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// NewHuntClosedEvent creates a new hunt closed event with type-safe payload
func NewHuntClosedEvent(huntID int64, title string, finalBalance float64, winnerIDs []int64, participants int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HuntClosed,
		Payload: HuntClosedPayloadV1{
			HuntID:       huntID,
			Title:        title,
			FinalBalance: finalBalance,
			WinnerIDs:    winnerIDs,
			Participants: participants,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewTournamentRecalculatedEvent creates a new recalculation event
func NewTournamentRecalculatedEvent(tournamentID int64, resultRows int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TournamentRecalculated,
		Payload: TournamentRecalculatedPayloadV1{
			TournamentID: tournamentID,
			ResultRows:   resultRows,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewJackpotWonEvent creates a new jackpot hit event
func NewJackpotWonEvent(jackpotID, huntID, userID int64, amount float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JackpotWon,
		Payload: JackpotWonPayloadV1{
			JackpotID: jackpotID,
			HuntID:    huntID,
			UserID:    userID,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; slow consumers should enqueue work to
	// the worker pool instead of blocking the publisher.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
