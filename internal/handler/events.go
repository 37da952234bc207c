package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
)

// EventsHandler exposes the persisted audit log
type EventsHandler struct {
	events eventlog.Repository
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(events eventlog.Repository) *EventsHandler {
	return &EventsHandler{events: events}
}

func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := QueryLimit(r, w)
	if !ok {
		return
	}

	filter := eventlog.EventFilter{Limit: limit}

	if raw := GetOptionalQueryParam(r, "event_type", ""); raw != "" {
		filter.EventType = &raw
	}
	if raw := GetOptionalQueryParam(r, "user_id", ""); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, ErrMsgInvalidUserIDParam, http.StatusBadRequest)
			return
		}
		filter.UserID = &userID
	}
	if raw := GetOptionalQueryParam(r, "since", ""); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, ErrMsgInvalidSinceParam, http.StatusBadRequest)
			return
		}
		filter.Since = &since
	}

	events, err := h.events.GetEvents(r.Context(), filter)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list events", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: events})
}
