package handler

import (
	"net/http"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/tournament"
)

// TournamentHandler serves tournament configuration and leaderboard endpoints
type TournamentHandler struct {
	tournamentSvc tournament.Service
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(tournamentSvc tournament.Service) *TournamentHandler {
	return &TournamentHandler{tournamentSvc: tournamentSvc}
}

type CreateTournamentRequest struct {
	Title            string      `json:"title" validate:"required,max=200"`
	ParticipantsMode string      `json:"participants_mode" validate:"participants_mode"`
	RankingScope     string      `json:"ranking_scope" validate:"ranking_scope"`
	PointsMap        map[int]int `json:"points_map,omitempty"`
	StartsAt         *time.Time  `json:"starts_at,omitempty"`
	EndsAt           *time.Time  `json:"ends_at,omitempty"`
}

func (h *TournamentHandler) HandleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create tournament"); err != nil {
		return
	}

	t := &domain.Tournament{
		Title:            req.Title,
		ParticipantsMode: domain.ParticipantsMode(req.ParticipantsMode),
		RankingScope:     domain.RankingScope(req.RankingScope),
		PointsMap:        req.PointsMap,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
	}
	if err := h.tournamentSvc.CreateTournament(r.Context(), t); err != nil {
		respondServiceError(w, r, "Create tournament", err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

func (h *TournamentHandler) HandleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidTournamentIDParam)
	if !ok {
		return
	}

	t, err := h.tournamentSvc.GetTournament(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get tournament", err)
		return
	}
	if t == nil {
		respondServiceError(w, r, "Get tournament", domain.ErrTournamentNotFound)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *TournamentHandler) HandleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentSvc.ListTournaments(r.Context())
	if err != nil {
		respondServiceError(w, r, "List tournaments", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: tournaments})
}

func (h *TournamentHandler) HandleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidTournamentIDParam)
	if !ok {
		return
	}

	var req CreateTournamentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update tournament"); err != nil {
		return
	}

	t := &domain.Tournament{
		ID:               id,
		Title:            req.Title,
		ParticipantsMode: domain.ParticipantsMode(req.ParticipantsMode),
		RankingScope:     domain.RankingScope(req.RankingScope),
		PointsMap:        req.PointsMap,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
	}
	if err := h.tournamentSvc.UpdateTournament(r.Context(), t); err != nil {
		respondServiceError(w, r, "Update tournament", err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *TournamentHandler) HandleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidTournamentIDParam)
	if !ok {
		return
	}

	if err := h.tournamentSvc.DeleteTournament(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete tournament", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Tournament deleted"})
}

func (h *TournamentHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidTournamentIDParam)
	if !ok {
		return
	}

	results, err := h.tournamentSvc.GetResults(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get tournament results", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: results})
}

// HandleRecalculate rebuilds standings for one tournament from the winner
// ledger. Useful after manual ledger corrections.
func (h *TournamentHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(r, w, "id", ErrMsgInvalidTournamentIDParam)
	if !ok {
		return
	}

	if err := h.tournamentSvc.Recalculate(r.Context(), []int64{id}); err != nil {
		respondServiceError(w, r, "Recalculate tournament", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecalcTriggered})
}
