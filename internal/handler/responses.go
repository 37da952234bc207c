package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already written; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs the error and writes the mapped user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgHuntNotFoundError       = "Hunt not found"
	ErrMsgHuntClosedError         = "The hunt is closed, guesses can no longer change"
	ErrMsgHuntAlreadyOpenError    = "The hunt is already open"
	ErrMsgTournamentNotFoundError = "Tournament not found"
	ErrMsgJackpotNotFoundError    = "Jackpot not found"
	ErrMsgGuessNotFoundError      = "Guess not found"
	ErrMsgGuessOutOfRangeError    = "Your guess is outside the accepted range"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrHuntNotFound):
		return http.StatusNotFound, ErrMsgHuntNotFoundError
	case errors.Is(err, domain.ErrTournamentNotFound):
		return http.StatusNotFound, ErrMsgTournamentNotFoundError
	case errors.Is(err, domain.ErrJackpotNotFound):
		return http.StatusNotFound, ErrMsgJackpotNotFoundError
	case errors.Is(err, domain.ErrGuessNotFound):
		return http.StatusNotFound, ErrMsgGuessNotFoundError
	case errors.Is(err, domain.ErrHuntClosed):
		return http.StatusConflict, ErrMsgHuntClosedError
	case errors.Is(err, domain.ErrHuntAlreadyOpen):
		return http.StatusConflict, ErrMsgHuntAlreadyOpenError
	case errors.Is(err, domain.ErrGuessOutOfRange):
		return http.StatusBadRequest, ErrMsgGuessOutOfRangeError
	case errors.Is(err, domain.ErrInvalidHuntID),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
