package handler

import (
	"net/http"
	"strconv"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/jackpot"
)

// JackpotHandler serves jackpot configuration and history endpoints
type JackpotHandler struct {
	jackpotSvc jackpot.Service
}

// NewJackpotHandler creates a new jackpot handler
func NewJackpotHandler(jackpotSvc jackpot.Service) *JackpotHandler {
	return &JackpotHandler{jackpotSvc: jackpotSvc}
}

type JackpotRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Enabled         bool    `json:"enabled"`
	TriggerChance   float64 `json:"trigger_chance" validate:"gte=0,lte=1"`
	MinPayout       float64 `json:"min_payout" validate:"gte=0"`
	MaxPayout       float64 `json:"max_payout" validate:"gte=0"`
	AffiliateSiteID *int64  `json:"affiliate_site_id,omitempty"`
}

func (h *JackpotHandler) HandleCreateJackpot(w http.ResponseWriter, r *http.Request) {
	var req JackpotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create jackpot"); err != nil {
		return
	}

	j := &domain.Jackpot{
		Title:           req.Title,
		Enabled:         req.Enabled,
		TriggerChance:   req.TriggerChance,
		MinPayout:       req.MinPayout,
		MaxPayout:       req.MaxPayout,
		AffiliateSiteID: req.AffiliateSiteID,
	}
	if err := h.jackpotSvc.CreateJackpot(r.Context(), j); err != nil {
		respondServiceError(w, r, "Create jackpot", err)
		return
	}

	respondJSON(w, http.StatusCreated, j)
}

func (h *JackpotHandler) HandleGetJackpot(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidJackpotIDParam)
	if !ok {
		return
	}

	j, err := h.jackpotSvc.GetJackpot(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get jackpot", err)
		return
	}

	respondJSON(w, http.StatusOK, j)
}

func (h *JackpotHandler) HandleListJackpots(w http.ResponseWriter, r *http.Request) {
	enabledOnly, _ := strconv.ParseBool(GetOptionalQueryParam(r, "enabled", "false"))

	jackpots, err := h.jackpotSvc.ListJackpots(r.Context(), enabledOnly)
	if err != nil {
		respondServiceError(w, r, "List jackpots", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: jackpots})
}

func (h *JackpotHandler) HandleUpdateJackpot(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidJackpotIDParam)
	if !ok {
		return
	}

	var req JackpotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update jackpot"); err != nil {
		return
	}

	j := &domain.Jackpot{
		ID:              id,
		Title:           req.Title,
		Enabled:         req.Enabled,
		TriggerChance:   req.TriggerChance,
		MinPayout:       req.MinPayout,
		MaxPayout:       req.MaxPayout,
		AffiliateSiteID: req.AffiliateSiteID,
	}
	if err := h.jackpotSvc.UpdateJackpot(r.Context(), j); err != nil {
		respondServiceError(w, r, "Update jackpot", err)
		return
	}

	respondJSON(w, http.StatusOK, j)
}

func (h *JackpotHandler) HandleListJackpotEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidJackpotIDParam)
	if !ok {
		return
	}
	limit, ok := QueryLimit(r, w)
	if !ok {
		return
	}

	events, err := h.jackpotSvc.ListJackpotEvents(r.Context(), id, limit)
	if err != nil {
		respondServiceError(w, r, "List jackpot events", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: events})
}
