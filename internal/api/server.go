package api

import (
	"log/slog"
	"net/http"

	"github.com/complyscan/complyscan/internal/analyzer"
	"github.com/complyscan/complyscan/internal/config"
	"github.com/complyscan/complyscan/internal/metrics"
	"github.com/complyscan/complyscan/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for complyscan.
type Server struct {
	router       chi.Router
	analyzer     *analyzer.Analyzer
	orchestrator *pipeline.Orchestrator
	stats        *metrics.Registry
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(a *analyzer.Analyzer, orch *pipeline.Orchestrator, stats *metrics.Registry, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer:     a,
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/analyze/sections", s.handleSections)
		r.Post("/api/analyze/statements", s.handleStatements)
		r.Post("/api/analyze/math", s.handleMath)
		r.Post("/api/analyze/signatures", s.handleSignatures)
		r.Post("/api/analyze/redflags", s.handleRedFlags)
		r.Post("/api/analyze/comparative", s.handleComparative)

		r.Post("/api/audit", s.handleAuditSubmit)
		r.Get("/api/audit/{jobID}", s.handleAuditStatus)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
