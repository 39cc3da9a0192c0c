// Package web exposes the recon toolkit as an HTTP API with asynchronous
// scan jobs.
package web

import (
	"net/http"
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/web/jobs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the Aegis API.
type Server struct {
	router   chi.Router
	addr     string
	registry *module.Registry
	manager  *jobs.Manager
}

// NewServer builds a new Server with middleware and routes configured.
func NewServer(addr string, registry *module.Registry) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		addr:     addr,
		registry: registry,
		manager:  jobs.NewManager(registry),
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
