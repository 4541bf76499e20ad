package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/fakedata/internal/core"
	"github.com/JonMunkholm/fakedata/internal/export"
	"github.com/JonMunkholm/fakedata/internal/records"
	"github.com/JonMunkholm/fakedata/internal/web/templates"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// generateResponse is the body of GET /api/generateData.
type generateResponse struct {
	Data []records.Record `json:"data"`
}

// handleGenerateData serves one page of records.
// Every failure answers 500 {"error":"Failed to generate data"}; the cause is logged.
func (s *Server) handleGenerateData(w http.ResponseWriter, r *http.Request) {
	params, err := parseGenerateParams(r)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	ctx := withRequestMetadata(r.Context(), r)
	page, err := s.service.Generate(ctx, params)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Data: page.Records})
}

// parseGenerateParams reads region, errors, seed and page from the query.
// A missing page means page 1. errors is clamped to [0, core.MaxErrors].
func parseGenerateParams(r *http.Request) (core.GenerateParams, error) {
	q := r.URL.Query()
	p := core.GenerateParams{
		Region: q.Get("region"),
		Seed:   q.Get("seed"),
		Page:   1,
	}

	rawErrors := strings.TrimSpace(q.Get("errors"))
	if p.Region == "" || p.Seed == "" || rawErrors == "" {
		return p, core.ErrMissingParameter
	}

	errs, err := strconv.ParseFloat(rawErrors, 64)
	if err != nil || math.IsNaN(errs) {
		return p, fmt.Errorf("%w: %q", core.ErrInvalidIntensity, rawErrors)
	}
	p.Errors = min(max(errs, 0), core.MaxErrors)

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, fmt.Errorf("%w: %q", core.ErrInvalidPage, raw)
		}
		p.Page = page
	}

	return p, nil
}

// handleExportCSV converts the posted {"data":[...]} into a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	rows, err := export.DecodeRows(body)
	if err != nil {
		respondErrorText(w, r, fmt.Errorf("%w: %w", core.ErrExport, err),
			http.StatusInternalServerError, "Error generating CSV")
		return
	}

	out, err := s.service.ExportCSV(withRequestMetadata(r.Context(), r), rows)
	if err != nil {
		respondErrorText(w, r, err, http.StatusInternalServerError, "Error generating CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="data.csv"`)
	_, _ = w.Write(out)
}

// exportParquetRequest is the body of POST /api/exportParquet.
type exportParquetRequest struct {
	Data []records.Record `json:"data"`
}

// handleExportParquet converts posted records into a Parquet download.
func (s *Server) handleExportParquet(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req exportParquetRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: decode body: %w", core.ErrExport, err),
			http.StatusBadRequest, msgExportFailed)
		return
	}

	out, err := s.service.ExportParquet(withRequestMetadata(r.Context(), r), req.Data)
	if err != nil {
		respondError(w, r, err, statusFor(err), msgExportFailed)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.apache.parquet")
	w.Header().Set("Content-Disposition", `attachment; filename="data.parquet"`)
	_, _ = w.Write(out)
}

// handleRegions lists the supported regions.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": s.service.Regions()})
}

// handleActivity returns recent generate and export entries.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	entries, err := s.service.RecentActivity(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "Failed to load activity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

// handleHealth reports liveness and limiter load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"limiter": s.service.Limiter().Status(),
	})
}

// handleIndex renders the UI page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Page(templates.PageData{
		Regions:  s.service.Regions(),
		Region:   "de",
		Errors:   "0",
		Seed:     "12345",
		PageSize: s.service.Config().PageSize,
	})
	if err := page.Render(r.Context(), w); err != nil {
		logError(r, err, http.StatusInternalServerError)
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrBusy):
		return http.StatusServiceUnavailable
	case core.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
