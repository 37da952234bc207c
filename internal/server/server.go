package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bonushunt/bonushunt-backend/internal/database"
	"github.com/bonushunt/bonushunt-backend/internal/eventlog"
	"github.com/bonushunt/bonushunt-backend/internal/guess"
	"github.com/bonushunt/bonushunt-backend/internal/handler"
	"github.com/bonushunt/bonushunt-backend/internal/hunt"
	"github.com/bonushunt/bonushunt-backend/internal/jackpot"
	"github.com/bonushunt/bonushunt-backend/internal/logger"
	"github.com/bonushunt/bonushunt-backend/internal/metrics"
	"github.com/bonushunt/bonushunt-backend/internal/settlement"
	"github.com/bonushunt/bonushunt-backend/internal/sse"
	"github.com/bonushunt/bonushunt-backend/internal/tournament"
)

// Services bundles the domain services the HTTP layer exposes
type Services struct {
	Hunt       hunt.Service
	Guess      guess.Service
	Settlement settlement.Service
	Tournament tournament.Service
	Jackpot    jackpot.Service
	EventLog   eventlog.Repository

	// Stream is the live event hub; nil disables the SSE endpoint
	Stream *sse.Hub
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	huntHandler := handler.NewHuntHandler(svcs.Hunt, svcs.Settlement)
	guessHandler := handler.NewGuessHandler(svcs.Guess)
	tournamentHandler := handler.NewTournamentHandler(svcs.Tournament)
	jackpotHandler := handler.NewJackpotHandler(svcs.Jackpot)
	eventsHandler := handler.NewEventsHandler(svcs.EventLog)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/hunts", func(r chi.Router) {
			r.Post("/", huntHandler.HandleCreateHunt)
			r.Get("/", huntHandler.HandleListHunts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", huntHandler.HandleGetHunt)
				r.Put("/", huntHandler.HandleUpdateHunt)
				r.Delete("/", huntHandler.HandleDeleteHunt)
				r.Post("/close", huntHandler.HandleCloseHunt)
				r.Post("/reopen", huntHandler.HandleReopenHunt)
				r.Put("/tournaments", huntHandler.HandleSetTournamentLinks)
				r.Get("/ledger", huntHandler.HandleGetLedger)
				r.Get("/ranking", guessHandler.HandlePreviewRanking)

				r.Route("/guesses", func(r chi.Router) {
					r.Post("/", guessHandler.HandleSubmitGuess)
					r.Get("/", guessHandler.HandleListGuesses)
					r.Get("/{userID}", guessHandler.HandleGetGuess)
					r.Delete("/{userID}", guessHandler.HandleDeleteGuess)
				})
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", tournamentHandler.HandleCreateTournament)
			r.Get("/", tournamentHandler.HandleListTournaments)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tournamentHandler.HandleGetTournament)
				r.Put("/", tournamentHandler.HandleUpdateTournament)
				r.Delete("/", tournamentHandler.HandleDeleteTournament)
				r.Get("/results", tournamentHandler.HandleGetResults)
				r.Post("/recalculate", tournamentHandler.HandleRecalculate)
			})
		})

		r.Route("/jackpots", func(r chi.Router) {
			r.Post("/", jackpotHandler.HandleCreateJackpot)
			r.Get("/", jackpotHandler.HandleListJackpots)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", jackpotHandler.HandleGetJackpot)
				r.Put("/", jackpotHandler.HandleUpdateJackpot)
				r.Get("/events", jackpotHandler.HandleListJackpotEvents)
			})
		})

		r.Get("/events", eventsHandler.HandleListEvents)

		if svcs.Stream != nil {
			r.Get("/stream", sse.Handler(svcs.Stream))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
