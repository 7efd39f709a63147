// Package web provides the JSON API for triggering and inspecting imports.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
	"github.com/amzorders/importer/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Server is the HTTP server for the import API.
type Server struct {
	pool           *pgxpool.Pool
	importer       *core.Importer
	queries        *database.Queries
	router         *chi.Mux
	server         *http.Server
	maxFileSize    int64
	requestTimeout time.Duration
}

// NewServer creates a Server bound to the given pool.
func NewServer(pool *pgxpool.Pool, maxFileSize int64, requestTimeout time.Duration) *Server {
	s := &Server{
		pool:           pool,
		importer:       core.NewImporter(pool),
		queries:        database.New(pool),
		router:         chi.NewRouter(),
		maxFileSize:    maxFileSize,
		requestTimeout: requestTimeout,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.requestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Dataset catalog
		r.Get("/datasets", s.handleListDatasets)

		// Row counts per table
		r.Get("/tables", s.handleListTables)

		// Import run history
		r.Get("/runs", s.handleListRuns)

		// Import one uploaded CSV into a dataset
		r.Post("/import/{dataset}", s.handleImport)

		// Truncate all importer tables
		r.Post("/reset", s.handleReset)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string, readTimeout, writeTimeout, idleTimeout time.Duration) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
