// Package server exposes the recommendation engine over HTTP for callers
// that keep profiles client side and only need the ranked output.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/recommend"
)

// Runner is the engine surface the server needs.
type Runner interface {
	Run(ctx context.Context, record map[string]any) (*recommend.Result, error)
}

// RecordLoader fetches the raw profile record from the configured store.
type RecordLoader func() (map[string]any, error)

// Server serves recommendation requests over HTTP.
type Server struct {
	engine     Runner
	loadRecord RecordLoader
	logger     *zap.Logger
	router     chi.Router
}

// New builds the routing tree. loadRecord may be nil when no profile store is
// configured; the GET endpoint then answers 404 and only the POST body form
// works.
func New(engine Runner, loadRecord RecordLoader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:     engine,
		loadRecord: loadRecord,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/recommendations", s.handleStoredRecommendations)
	r.Post("/v1/recommendations", s.handleRecommendations)

	s.router = r
	return s
}

// Handler returns the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the context is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStoredRecommendations ranks against the profile record from the
// configured store.
func (s *Server) handleStoredRecommendations(w http.ResponseWriter, r *http.Request) {
	if s.loadRecord == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile store configured"})
		return
	}

	record, err := s.loadRecord()
	if err != nil {
		s.logger.Error("loading stored profile record", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile record unavailable"})
		return
	}

	s.respond(w, r, record)
}

// handleRecommendations accepts a raw profile record in the request body.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile payload"})
		return
	}

	s.respond(w, r, record)
}

// respond runs the engine and writes the ranked lists. An exhausted catalog
// is an expected empty state and answers 200 with empty lists rather than an
// error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, record map[string]any) {
	result, err := s.engine.Run(r.Context(), record)
	switch {
	case errors.Is(err, recommend.ErrNoCandidates):
		result = &recommend.Result{
			Courses:     []catalog.ScoredCandidate{},
			Jobs:        []catalog.ScoredCandidate{},
			GeneratedAt: time.Now().UTC(),
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("recommendation request cancelled", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "request cancelled"})
		return
	case err != nil:
		s.logger.Error("recommendation run failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "recommendation run failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
