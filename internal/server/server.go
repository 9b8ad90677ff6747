// Package server provides the HTTP API for the profile search service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/rireki/internal/config"
	"github.com/hyperjump/rireki/internal/index"
	"github.com/hyperjump/rireki/internal/indexer"
	"github.com/hyperjump/rireki/internal/search"
	"github.com/hyperjump/rireki/internal/storage"
)

// Server is the HTTP search gateway.
type Server struct {
	engine   *search.Engine
	ingestor *indexer.Ingestor
	store    *storage.ProfileStore
	index    *index.BleveIndex
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. ingestor may be
// nil, in which case the ingest endpoint is disabled.
func NewServer(
	engine *search.Engine,
	ingestor *indexer.Ingestor,
	store *storage.ProfileStore,
	idx *index.BleveIndex,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:   engine,
		ingestor: ingestor,
		store:    store,
		index:    idx,
		config:   cfg,
		logger:   logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(corsAllowAll)

	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/search/advanced", s.handleAdvancedSearch)
	r.Get("/api/v1/profiles/{id}", s.handleGetProfile)
	r.Post("/api/v1/ingest", s.handleIngest)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsAllowAll is a permissive CORS shim for browser frontends.
func corsAllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
