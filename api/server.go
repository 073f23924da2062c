package api

import (
	"log/slog"
	"net/http"

	"provchain/api/handlers"
	"provchain/ledger/store"
)

// Server exposes a read-only HTTP view of the ledger. Appends happen
// locally through the core; the network surface never mutates.
type Server struct {
	store store.LedgerStore
	port  string
	mux   *http.ServeMux
}

// NewServer creates a new API server
func NewServer(st store.LedgerStore, port string) *Server {
	server := &Server{
		store: st,
		port:  port,
		mux:   http.NewServeMux(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP endpoints
func (s *Server) setupRoutes() {
	// Block endpoints: /api/blocks/last, /api/blocks/{index},
	// /api/blocks/{index}/graph
	s.mux.HandleFunc("/api/blocks/", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleBlocks(w, r, s.store)
	})
}

// Handler returns the route table for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving HTTP requests (blocks forever)
func (s *Server) Start() error {
	slog.Info("starting HTTP API server", "port", s.port)
	return http.ListenAndServe(":"+s.port, s.mux)
}
