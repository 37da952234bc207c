package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/testing/leaktest"
)

func waitForEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SSE event")
		return Event{}
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	a := hub.Register(nil)
	b := hub.Register(nil)

	// Registration is asynchronous; wait until both clients are tracked
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("hunt.closed", map[string]interface{}{"hunt_id": int64(7)})

	got := waitForEvent(t, a.EventChannel)
	assert.Equal(t, "hunt.closed", got.Type)
	got = waitForEvent(t, b.EventChannel)
	assert.Equal(t, "hunt.closed", got.Type)
}

func TestHub_EventFilterLimitsDelivery(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	filtered := hub.Register([]string{"jackpot.won"})

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("hunt.closed", nil)
	hub.Broadcast("jackpot.won", map[string]interface{}{"amount": 75.5})

	got := waitForEvent(t, filtered.EventChannel)
	assert.Equal(t, "jackpot.won", got.Type)
	select {
	case extra := <-filtered.EventChannel:
		t.Fatalf("unexpected extra event %q", extra.Type)
	default:
	}
}

func TestSubscriber_RelaysBusEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	client := hub.Register(nil)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	err := bus.Publish(context.Background(), event.NewHuntClosedEvent(7, "Friday Hunt", 950, []int64{3}, 5))
	require.NoError(t, err)

	got := waitForEvent(t, client.EventChannel)
	assert.Equal(t, "hunt.closed", got.Type)

	payload, ok := got.Payload.(event.HuntClosedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, int64(7), payload.HuntID)
	assert.Equal(t, []int64{3}, payload.WinnerIDs)
}

func TestHub_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		hub := NewHub()
		hub.Start()

		hub.Register(nil)
		require.Eventually(t, func() bool {
			return hub.ClientCount() == 1
		}, 2*time.Second, 10*time.Millisecond)

		hub.Stop()
	})
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{
		ID:        "abc",
		Type:      "hunt.closed",
		Timestamp: 1700000000,
		Payload:   map[string]interface{}{"hunt_id": 7},
	})
	require.NoError(t, err)

	text := string(msg)
	assert.Contains(t, text, "id: abc\n")
	assert.Contains(t, text, "event: hunt.closed\n")
	assert.Contains(t, text, `"hunt_id":7`)
	assert.True(t, len(text) > 4 && text[len(text)-2:] == "\n\n")
}
