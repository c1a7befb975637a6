package http

import (
	"context"
	"net/http"

	"github.com/bnema/clipr/internal/adapter/http/middleware"
	"github.com/bnema/clipr/internal/adapter/http/ratelimit"
)

type Server struct {
	mux        *http.ServeMux
	handlers   *Handlers
	sseHandler *SSEHandler
	health     func(ctx context.Context) error
}

func NewServer(jobSvc JobService, events Subscriber, limiter *ratelimit.Limiter, behindProxy bool) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		handlers:   NewHandlers(jobSvc, limiter, behindProxy),
		sseHandler: NewSSEHandler(events, jobSvc),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /jobs", s.handlers.CreateJob())
	s.mux.HandleFunc("GET /jobs/{id}", s.handlers.GetJob())
	s.mux.HandleFunc("POST /jobs/{id}/cancel", s.handlers.CancelJob())
	s.mux.HandleFunc("GET /events/{id}", s.sseHandler.Events())
	s.mux.HandleFunc("GET /healthz", s.healthz)
}

// SetHealthCheck makes /healthz report 503 while check fails.
func (s *Server) SetHealthCheck(check func(ctx context.Context) error) {
	s.health = check
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}
