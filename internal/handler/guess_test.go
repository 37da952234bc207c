package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bonushunt/bonushunt-backend/internal/domain"
)

func TestHandleSubmitGuess(t *testing.T) {
	tests := []struct {
		name           string
		pathID         string
		reqBody        interface{}
		setupMocks     func(*mockGuessService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid Hunt ID",
			pathID:         "-1",
			reqBody:        SubmitGuessRequest{UserID: 3, Value: 500},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidHuntIDParam,
		},
		{
			name:           "Missing User ID",
			pathID:         "7",
			reqBody:        SubmitGuessRequest{Value: 500},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:    "Hunt Closed",
			pathID:  "7",
			reqBody: SubmitGuessRequest{UserID: 3, Value: 500},
			setupMocks: func(mg *mockGuessService) {
				mg.On("SubmitGuess", mock.Anything, int64(7), int64(3), 500.0).Return(nil, domain.ErrHuntClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgHuntClosedError,
		},
		{
			name:    "Out Of Range",
			pathID:  "7",
			reqBody: SubmitGuessRequest{UserID: 3, Value: 500},
			setupMocks: func(mg *mockGuessService) {
				mg.On("SubmitGuess", mock.Anything, int64(7), int64(3), 500.0).Return(nil, domain.ErrGuessOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgGuessOutOfRangeError,
		},
		{
			name:    "Success",
			pathID:  "7",
			reqBody: SubmitGuessRequest{UserID: 3, Value: 500},
			setupMocks: func(mg *mockGuessService) {
				mg.On("SubmitGuess", mock.Anything, int64(7), int64(3), 500.0).
					Return(&domain.Guess{ID: 1, HuntID: 7, UserID: 3, Value: 500}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"value":500`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGuess := new(mockGuessService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockGuess)
			}
			handler := NewGuessHandler(mockGuess)

			req := httptest.NewRequest("POST", "/hunts/"+tt.pathID+"/guesses", bytes.NewBuffer(marshalBody(t, tt.reqBody)))
			req = withURLParams(req, map[string]string{"id": tt.pathID})
			rec := httptest.NewRecorder()

			handler.HandleSubmitGuess(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockGuess.AssertExpectations(t)
		})
	}
}

func TestHandleDeleteGuess(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMocks     func(*mockGuessService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid User ID",
			userID:         "abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidUserIDParam,
		},
		{
			name:   "Not Found",
			userID: "3",
			setupMocks: func(mg *mockGuessService) {
				mg.On("RemoveGuess", mock.Anything, int64(7), int64(3)).Return(domain.ErrGuessNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgGuessNotFoundError,
		},
		{
			name:   "Success",
			userID: "3",
			setupMocks: func(mg *mockGuessService) {
				mg.On("RemoveGuess", mock.Anything, int64(7), int64(3)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgGuessDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGuess := new(mockGuessService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockGuess)
			}
			handler := NewGuessHandler(mockGuess)

			req := httptest.NewRequest("DELETE", "/hunts/7/guesses/"+tt.userID, nil)
			req = withURLParams(req, map[string]string{"id": "7", "userID": tt.userID})
			rec := httptest.NewRecorder()

			handler.HandleDeleteGuess(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandlePreviewRanking(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mockGuessService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Balance",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing balance query parameter",
		},
		{
			name:           "Invalid Balance",
			query:          "?balance=abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidBalance,
		},
		{
			name:           "Negative Balance",
			query:          "?balance=-5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidBalance,
		},
		{
			name:           "Invalid Limit",
			query:          "?balance=950&limit=-1",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidLimit,
		},
		{
			name:  "Success",
			query: "?balance=950&limit=3",
			setupMocks: func(mg *mockGuessService) {
				mg.On("PreviewRanking", mock.Anything, int64(7), 950.0, 3).Return([]domain.RankedGuess{
					{GuessID: 1, UserID: 3, Value: 960, Diff: 10},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"diff":10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGuess := new(mockGuessService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockGuess)
			}
			handler := NewGuessHandler(mockGuess)

			req := withURLParams(httptest.NewRequest("GET", "/hunts/7/ranking"+tt.query, nil), map[string]string{"id": "7"})
			rec := httptest.NewRecorder()

			handler.HandlePreviewRanking(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
