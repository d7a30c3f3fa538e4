// Package inspect serves a registry's contents over HTTP so editors and
// tooling can browse registered classes while a program runs, or browse a
// saved snapshot offline.
package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hostbind/hostbind/runtime/registry"
)

// Source provides the snapshot the server exposes. *registry.Registry
// implements it; the CLI's file-backed source implements it for offline
// browsing.
type Source interface {
	Snapshot() registry.Snapshot
}

// EventSource is optionally implemented by sources that can stream
// registration events (a live registry can, a snapshot file cannot). When
// the source implements it, the server exposes a websocket event stream.
type EventSource interface {
	Subscribe() (<-chan registry.Event, func())
}

// Server serves registry introspection endpoints:
//
//	GET /api/snapshot         full snapshot
//	GET /api/classes          class list
//	GET /api/classes/{name}   one class with all members
//	GET /ws                   registration event stream (live sources only)
type Server struct {
	src    Source
	logger *zap.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request/stream logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server over the given source.
func NewServer(src Source, opts ...Option) *Server {
	s := &Server{
		src:    src,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Get("/api/classes", s.handleClasses)
	r.Get("/api/classes/{name}", s.handleClass)
	r.Get("/ws", s.handleEvents)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.src.Snapshot())
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	snap := s.src.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(snap.Classes),
		"classes": snap.Classes,
	})
}

func (s *Server) handleClass(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cls, ok := s.src.Snapshot().Class(name)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "class not found: " + name,
		})
		return
	}
	s.writeJSON(w, http.StatusOK, cls)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", zap.Error(err))
	}
}
