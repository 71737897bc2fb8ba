package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lunch-bot/internal/calendar"
	"lunch-bot/internal/candidates"
	"lunch-bot/internal/history"
	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/selection"
)

// Server is the HTTP API used for manual testing and the dashboard.
type Server struct {
	svc      *lunch.Service
	history  *history.Store
	orders   *orders.Manager
	provider *candidates.Provider
	cal      *calendar.Calendar
	server   *http.Server
}

func New(svc *lunch.Service, hist *history.Store, om *orders.Manager, provider *candidates.Provider, cal *calendar.Calendar) *Server {
	return &Server{
		svc:      svc,
		history:  hist,
		orders:   om,
		provider: provider,
		cal:      cal,
	}
}

// RegisterHTTP mounts the API endpoints on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Post("/api/lunch", s.handleLunch)
	r.Post("/api/lunch/manual", s.handleManual)

	r.Get("/api/history", s.handleHistory)
	r.Delete("/api/history", s.handleClearHistory)
	r.Get("/api/selection-analysis", s.handleAnalysis)
	r.Post("/api/selection-analysis", s.handleAnalysisAction)

	r.Get("/api/orders", s.handleOrders)
	r.Post("/api/orders", s.handleOrdersAction)
	r.Delete("/api/orders", s.handleClearOrders)
	r.Post("/api/collect-orders", s.handleCollect)
	r.Get("/api/events", s.handleEvents)

	r.Get("/api/weekday", s.handleWeekday)

	r.Get("/api/restaurants", s.handleRestaurants)
	r.Post("/api/restaurants", s.handleAddRestaurant)
	r.Get("/api/restaurant-config", s.handleRestaurantConfig)
	r.Post("/api/restaurant-config", s.handleUpdateRestaurantConfig)
}

// Handler returns the router with the standard middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	s.RegisterHTTP(r)
	return r
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("🌐 Starting lunch API on %s", addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrSessionNotFound), errors.Is(err, lunch.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrSessionInactive), errors.Is(err, candidates.ErrDuplicateRestaurant):
		return http.StatusConflict
	case errors.Is(err, candidates.ErrInvalidRestaurant):
		return http.StatusBadRequest
	case errors.Is(err, candidates.ErrNoCandidates), errors.Is(err, selection.ErrEmptyCandidateList):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ API error: %v", err)
	}
	writeError(w, status, err.Error())
}

// decodeBody reads an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
