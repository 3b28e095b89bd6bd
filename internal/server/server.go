package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/claude/coachlog/internal/models"
	"github.com/claude/coachlog/internal/storage"
)

// Server holds the HTTP surface over the coaching snapshot. The snapshot
// lives in memory behind a mutex and is written through the Store after
// every mutation; metrics are recomputed from scratch per request.
type Server struct {
	store  storage.Store
	log    *slog.Logger
	apiKey string
	router chi.Router

	mu   sync.Mutex
	snap *models.Snapshot
}

// New creates a Server with all routes configured, loading the current
// snapshot from the store.
func New(ctx context.Context, store storage.Store, apiKey string, log *slog.Logger) (*Server, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		snap:   snap,
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/{id}", s.handleGetProgram)
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/sessions/{id}/metrics", s.handleSessionMetrics)
	s.router.Get("/api/v1/analytics/weekly", s.handleWeeklyAnalytics)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Put("/api/v1/programs/{id}", s.handleUpdateProgram)
		r.Delete("/api/v1/programs/{id}", s.handleDeleteProgram)
		r.Post("/api/v1/sessions", s.handleCreateSession)
		r.Put("/api/v1/sessions/{id}", s.handleUpdateSession)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
		r.Post("/api/v1/sessions/from-program", s.handleSessionFromProgram)
	})
}

// mutate applies fn to the in-memory snapshot under the lock and writes the
// result through the store. The in-memory state is only updated when the
// save succeeds.
func (s *Server) mutate(ctx context.Context, fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	s.snap = next
	return nil
}

// view runs fn with read access to the snapshot.
func (s *Server) view(fn func(*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snap)
}
