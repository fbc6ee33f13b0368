// Package server exposes the import pipeline and workout queries over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/ingest/csvfile"
	"github.com/claude/liftlog/internal/ingest/health"
	"github.com/claude/liftlog/internal/ingest/hevy"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/secrets"
	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   store.Store
	engine  *reconcile.Engine
	csv     *csvfile.Provider
	health  *health.Provider
	hevy    *hevy.Provider
	secrets *secrets.Store
	log     *slog.Logger
	apiKey  string
	router  chi.Router

	// hevyBaseURL overrides the Hevy endpoint, for testing.
	hevyBaseURL string
}

// New creates a new Server with all routes configured.
func New(st store.Store, engine *reconcile.Engine, sec *secrets.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:   st,
		engine:  engine,
		csv:     csvfile.NewProvider(engine, log),
		health:  health.NewProvider(engine, log),
		hevy:    hevy.NewProvider(engine, log),
		secrets: sec,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetHevyBaseURL points the Hevy import at a non-default endpoint.
func (s *Server) SetHevyBaseURL(url string) {
	s.hevyBaseURL = url
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Import, parse, and settings endpoints (API key required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/import/hevy", s.handleHevyImport)
		r.Post("/import/csv", s.handleCSVImport)
		r.Post("/import/health", s.handleHealthImport)
		r.Post("/parse", s.handleParse)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Get("/settings/keys", s.handleKeyStatus)
		r.Put("/settings/keys/{name}", s.handlePutKey)
		r.Delete("/settings/keys/{name}", s.handleDeleteKey)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
}
