package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/search"
	"github.com/hyperjump/rireki/internal/storage"
)

// handleSearch runs an OR-mode search: one query string against multiple
// columns, any of which may match. Columns arrive as repeated ?columns=
// parameters or a single comma-separated value.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cols := parseColumnsParam(r.URL.Query()["columns"])
	query := r.URL.Query().Get("q")
	size := parseSizeParam(r.URL.Query().Get("size"))

	s.logger.Debug("search request",
		zap.Strings("columns", cols), zap.String("q", query), zap.Int("size", size))

	response, err := s.engine.SearchColumns(r.Context(), cols, query, size)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// handleAdvancedSearch runs an AND-mode search: the body is a mapping from
// column name to that column's query, and every field must match.
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	size := parseSizeParam(r.URL.Query().Get("size"))

	s.logger.Debug("advanced search request",
		zap.Int("fields", len(fields)), zap.Int("size", size))

	response, err := s.engine.SearchFields(r.Context(), fields, size)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		s.logger.Error("get profile failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

// handleIngest rebuilds the corpus from the configured source file.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.ingestor == nil {
		s.respondError(w, http.StatusNotImplemented, "ingest not enabled")
		return
	}
	dataFile := s.config.Ingest.DataFile
	if dataFile == "" {
		s.respondError(w, http.StatusBadRequest, "no data file configured")
		return
	}
	s.logger.Info("ingest requested", zap.String("file", dataFile))
	report, err := s.ingestor.Run(r.Context(), dataFile)
	if err != nil {
		s.logger.Error("ingest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	profileCount, err := s.store.CountProfiles(r.Context())
	if err != nil {
		s.logger.Error("status: count profiles failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	indexedCount, err := s.index.DocCount()
	if err != nil {
		s.logger.Error("status: index doc count failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"profiles": profileCount,
		"indexed":  indexedCount,
		"config": map[string]interface{}{
			"database_path":    s.config.Storage.DatabasePath,
			"bleve_index_path": s.config.Storage.BleveIndexPath,
			"data_file":        s.config.Ingest.DataFile,
		},
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.BleveIndexPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondSearchError maps engine errors to HTTP statuses: validation
// failures are the requester's fault, everything else is the store's.
func (s *Server) respondSearchError(w http.ResponseWriter, err error) {
	var ice *columns.InvalidColumnError
	switch {
	case errors.As(err, &ice),
		errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, search.ErrNoColumns),
		errors.Is(err, search.ErrNoQuery):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseColumnsParam(values []string) []string {
	var cols []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				cols = append(cols, part)
			}
		}
	}
	return cols
}

func parseSizeParam(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
