package handler

import (
	"net/http"

	"github.com/bonushunt/bonushunt-backend/internal/guess"
)

// GuessHandler serves guess submission and ranking preview endpoints
type GuessHandler struct {
	guessSvc guess.Service
}

// NewGuessHandler creates a new guess handler
func NewGuessHandler(guessSvc guess.Service) *GuessHandler {
	return &GuessHandler{guessSvc: guessSvc}
}

type SubmitGuessRequest struct {
	UserID int64   `json:"user_id" validate:"required,gt=0"`
	Value  float64 `json:"value" validate:"gte=0"`
}

func (h *GuessHandler) HandleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	huntID, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	var req SubmitGuessRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit guess"); err != nil {
		return
	}

	submitted, err := h.guessSvc.SubmitGuess(r.Context(), huntID, req.UserID, req.Value)
	if err != nil {
		respondServiceError(w, r, "Submit guess", err)
		return
	}

	respondJSON(w, http.StatusOK, submitted)
}

func (h *GuessHandler) HandleGetGuess(w http.ResponseWriter, r *http.Request) {
	huntID, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}
	userID, ok := PathID(r, w, "userID", ErrMsgInvalidUserIDParam)
	if !ok {
		return
	}

	found, err := h.guessSvc.GetGuess(r.Context(), huntID, userID)
	if err != nil {
		respondServiceError(w, r, "Get guess", err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

func (h *GuessHandler) HandleDeleteGuess(w http.ResponseWriter, r *http.Request) {
	huntID, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}
	userID, ok := PathID(r, w, "userID", ErrMsgInvalidUserIDParam)
	if !ok {
		return
	}

	if err := h.guessSvc.RemoveGuess(r.Context(), huntID, userID); err != nil {
		respondServiceError(w, r, "Delete guess", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGuessDeleted})
}

func (h *GuessHandler) HandleListGuesses(w http.ResponseWriter, r *http.Request) {
	huntID, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	guesses, err := h.guessSvc.ListGuesses(r.Context(), huntID)
	if err != nil {
		respondServiceError(w, r, "List guesses", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: guesses})
}

// HandlePreviewRanking ranks the current guesses against a hypothetical final
// balance without closing the hunt.
func (h *GuessHandler) HandlePreviewRanking(w http.ResponseWriter, r *http.Request) {
	huntID, ok := PathID(r, w, "id", ErrMsgInvalidHuntIDParam)
	if !ok {
		return
	}

	raw, ok := GetQueryParam(r, w, "balance")
	if !ok {
		return
	}
	balance, err := parseBalance(raw)
	if err != nil {
		http.Error(w, ErrMsgInvalidBalance, http.StatusBadRequest)
		return
	}

	limit, ok := QueryLimit(r, w)
	if !ok {
		return
	}

	ranked, err := h.guessSvc.PreviewRanking(r.Context(), huntID, balance, limit)
	if err != nil {
		respondServiceError(w, r, "Preview ranking", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: ranked})
}
