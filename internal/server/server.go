// Package server exposes the audit pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/audit-api/internal/ratelimit"
)

// Server wires the audit service and rate limiter into an HTTP router.
type Server struct {
	svc            AuditRunner
	limiter        *ratelimit.Limiter
	allowedOrigins []string
}

// New creates a Server. Both collaborators are injected: the server owns
// no global state.
func New(svc AuditRunner, limiter *ratelimit.Limiter, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{svc: svc, limiter: limiter, allowedOrigins: allowedOrigins}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/audit", s.handleAudit)

	return r
}
