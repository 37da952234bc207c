package handler

import (
	"net/http"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/hunt"
	"github.com/bonushunt/bonushunt-backend/internal/repository"
	"github.com/bonushunt/bonushunt-backend/internal/settlement"
)

// HuntHandler serves hunt lifecycle endpoints
type HuntHandler struct {
	huntSvc       hunt.Service
	settlementSvc settlement.Service
}

// NewHuntHandler creates a new hunt handler
func NewHuntHandler(huntSvc hunt.Service, settlementSvc settlement.Service) *HuntHandler {
	return &HuntHandler{
		huntSvc:       huntSvc,
		settlementSvc: settlementSvc,
	}
}

type CreateHuntRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	StartingBalance float64 `json:"starting_balance" validate:"gte=0"`
	WinnersCount    int     `json:"winners_count" validate:"gte=0"`
	AffiliateID     *int64  `json:"affiliate_id,omitempty"`
	AffiliateSiteID *int64  `json:"affiliate_site_id,omitempty"`
	TournamentIDs   []int64 `json:"tournament_ids,omitempty"`
}

func (h *HuntHandler) HandleCreateHunt(w http.ResponseWriter, r *http.Request) {
	var req CreateHuntRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create hunt"); err != nil {
		return
	}

	newHunt := &domain.Hunt{
		Title:           req.Title,
		StartingBalance: req.StartingBalance,
		WinnersCount:    req.WinnersCount,
		AffiliateID:     req.AffiliateID,
		AffiliateSiteID: req.AffiliateSiteID,
		TournamentIDs:   req.TournamentIDs,
	}
	if err := h.huntSvc.CreateHunt(r.Context(), newHunt); err != nil {
		respondServiceError(w, r, "Create hunt", err)
		return
	}

	respondJSON(w, http.StatusCreated, newHunt)
}

func (h *HuntHandler) HandleGetHunt(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	found, err := h.huntSvc.GetHunt(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get hunt", err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

func (h *HuntHandler) HandleListHunts(w http.ResponseWriter, r *http.Request) {
	limit, ok := QueryLimit(r, w)
	if !ok {
		return
	}

	filter := repository.HuntFilter{
		Status: domain.HuntStatus(GetOptionalQueryParam(r, "status", "")),
		Limit:  limit,
	}

	hunts, err := h.huntSvc.ListHunts(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "List hunts", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: hunts})
}

type UpdateHuntRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	StartingBalance float64 `json:"starting_balance" validate:"gte=0"`
	WinnersCount    int     `json:"winners_count" validate:"gte=0"`
	AffiliateID     *int64  `json:"affiliate_id,omitempty"`
	AffiliateSiteID *int64  `json:"affiliate_site_id,omitempty"`
}

func (h *HuntHandler) HandleUpdateHunt(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	var req UpdateHuntRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update hunt"); err != nil {
		return
	}

	updated := &domain.Hunt{
		ID:              id,
		Title:           req.Title,
		StartingBalance: req.StartingBalance,
		WinnersCount:    req.WinnersCount,
		AffiliateID:     req.AffiliateID,
		AffiliateSiteID: req.AffiliateSiteID,
	}
	if err := h.huntSvc.UpdateHunt(r.Context(), updated); err != nil {
		respondServiceError(w, r, "Update hunt", err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *HuntHandler) HandleDeleteHunt(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	if err := h.huntSvc.DeleteHunt(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete hunt", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHuntDeleted})
}

type CloseHuntRequest struct {
	FinalBalance float64 `json:"final_balance"`
}

// CloseHuntResponse reports the settlement outcome. WinnerIDs holds awarded
// winners in finishing order, or every recorded participant when a linked
// tournament scores all participants.
type CloseHuntResponse struct {
	HuntID       int64   `json:"hunt_id"`
	FinalBalance float64 `json:"final_balance"`
	WinnerIDs    []int64 `json:"winner_ids"`
}

func (h *HuntHandler) HandleCloseHunt(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	var req CloseHuntRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Close hunt"); err != nil {
		return
	}

	winnerIDs, err := h.settlementSvc.CloseHunt(r.Context(), id, req.FinalBalance)
	if err != nil {
		respondServiceError(w, r, "Close hunt", err)
		return
	}

	respondJSON(w, http.StatusOK, CloseHuntResponse{
		HuntID:       id,
		FinalBalance: req.FinalBalance,
		WinnerIDs:    winnerIDs,
	})
}

func (h *HuntHandler) HandleReopenHunt(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	if err := h.huntSvc.ReopenHunt(r.Context(), id); err != nil {
		respondServiceError(w, r, "Reopen hunt", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHuntReopened})
}

type SetTournamentLinksRequest struct {
	TournamentIDs []int64 `json:"tournament_ids"`
}

func (h *HuntHandler) HandleSetTournamentLinks(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	var req SetTournamentLinksRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set tournament links"); err != nil {
		return
	}

	if err := h.huntSvc.SetTournamentLinks(r.Context(), id, req.TournamentIDs); err != nil {
		respondServiceError(w, r, "Set tournament links", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLinksUpdated})
}

func (h *HuntHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	ledger, err := h.huntSvc.GetLedger(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get ledger", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: ledger})
}
