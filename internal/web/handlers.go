package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/amzorders/importer/internal/admin"
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
	"github.com/go-chi/chi/v5"
)

// DatasetResponse describes one registered dataset.
type DatasetResponse struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	FilePatterns []string `json:"file_patterns"`
	Sequence     int      `json:"sequence"`
	Disabled     bool     `json:"disabled,omitempty"`
	Columns      []string `json:"required_columns"`
}

// TableCount is the row count for one table.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, fmt.Errorf("database: %w", err))
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	out := make([]DatasetResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, DatasetResponse{
			Key:          def.Info.Key,
			Label:        def.Info.Label,
			FilePatterns: def.Info.FilePatterns,
			Sequence:     def.Info.Sequence,
			Disabled:     def.Info.Disabled,
			Columns:      def.RequiredColumns(),
		})
	}
	respondJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	out := make([]TableCount, 0, len(database.CountableTables))
	for _, table := range database.CountableTables {
		n, err := s.queries.CountRows(r.Context(), table)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, fmt.Errorf("count %s: %w", table, err))
			return
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	respondJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := int32(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 || n > 500 {
			respondError(w, r, http.StatusBadRequest, fmt.Errorf("limit must be 1-500"))
			return
		}
		limit = int32(n)
	}

	runs, err := s.queries.ListImportRuns(r.Context(), limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, fmt.Errorf("list runs: %w", err))
		return
	}
	if runs == nil {
		runs = []database.ImportRun{}
	}
	respondJSON(w, r, http.StatusOK, runs)
}

// handleImport accepts a CSV either as a multipart "file" field or as a
// raw request body, and imports it into the named dataset.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "dataset")
	def, ok := core.Get(key)
	if !ok {
		respondError(w, r, http.StatusNotFound, fmt.Errorf("unknown dataset: %s", key))
		return
	}

	fileName, data, err := readUpload(w, r, s.maxFileSize)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(w, r, status, err)
		return
	}

	result, err := s.importer.ImportData(r.Context(), def, fileName, data)
	if err != nil {
		// Run-level failure: nothing was committed for this file.
		respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

// handleReset truncates every importer table. Guarded by a confirm
// parameter so the endpoint cannot be hit by accident.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("pass confirm=true to reset all tables"))
		return
	}
	if err := admin.ResetAll(r.Context(), s.pool); err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}

// readUpload extracts the CSV payload from the request, preferring a
// multipart "file" field and falling back to the raw body.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return "", nil, fmt.Errorf("parse multipart form: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty request body")
	}
	return "upload.csv", data, nil
}
