package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/export"
	"github.com/ignite/campaign-insights/internal/ingest"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
	"github.com/ignite/campaign-insights/internal/pkg/metrics"
	"github.com/ignite/campaign-insights/internal/session"
)

// Handlers bundles the dependencies every endpoint needs.
type Handlers struct {
	store   *session.Store
	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewHandlers wires the session store and configuration into the API.
// The metrics instance may be nil (tests run without one).
func NewHandlers(store *session.Store, cfg *config.Config, m *metrics.Metrics) *Handlers {
	return &Handlers{store: store, cfg: cfg, metrics: m}
}

// HealthCheck returns service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"sessions": h.store.Len(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// sessionResponse is the summary payload returned by upload, get, and
// filter-update endpoints.
type sessionResponse struct {
	SessionID  string          `json:"session_id"`
	Criteria   domain.Criteria `json:"criteria"`
	Metrics    domain.Metrics  `json:"metrics"`
	Facets     session.Facets  `json:"facets"`
	Report     ingest.Report   `json:"report"`
	CreatedAt  time.Time       `json:"created_at"`
	AccessedAt time.Time       `json:"accessed_at"`
}

func toSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{
		SessionID:  s.ID,
		Criteria:   s.Criteria,
		Metrics:    s.Metrics,
		Facets:     s.Facets(),
		Report:     s.Report,
		CreatedAt:  s.CreatedAt,
		AccessedAt: s.AccessedAt,
	}
}

// UploadRequest is the JSON body alternative to multipart upload.
type UploadRequest struct {
	// For multipart form upload, use "file" field
	// Or pass CSV content directly in "content" field
	Content string `json:"content,omitempty"`
}

// HandleUpload ingests a CSV and creates a session for it.
// POST /api/campaigns/upload
// Accepts: multipart/form-data with "file" field OR application/json with "content" field
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxBodyBytes())

	var raw string
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.countUploadError("bad_request")
			writeError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			h.countUploadError("bad_request")
			writeError(w, "content is required", http.StatusBadRequest)
			return
		}
		raw = req.Content
	} else {
		// Multipart form
		r.ParseMultipartForm(h.cfg.Upload.MaxBodyBytes())
		file, _, err := r.FormFile("file")
		if err != nil {
			h.countUploadError("bad_request")
			writeError(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			h.countUploadError("read_failed")
			writeError(w, "failed to read file", http.StatusBadRequest)
			return
		}
		raw = string(data)
	}

	records, report, err := ingest.Parse(raw)
	if err != nil {
		var formatErr *ingest.FormatError
		switch {
		case errors.Is(err, ingest.ErrEmptyInput):
			h.countUploadError("empty")
			writeError(w, "file is empty", http.StatusBadRequest)
		case errors.As(err, &formatErr):
			h.countUploadError("format")
			writeFormatError(w, formatErr)
		default:
			h.countUploadError("parse_failed")
			writeError(w, fmt.Sprintf("failed to parse file: %v", err), http.StatusBadRequest)
		}
		return
	}

	s := h.store.Create(records, *report)

	if h.metrics != nil {
		h.metrics.UploadsTotal.Inc()
		h.metrics.RowsParsedTotal.Add(float64(report.ParsedRows))
		h.metrics.RowsDroppedTotal.Add(float64(report.DroppedRows))
	}
	logger.Info("campaign uploaded",
		"session_id", s.ID,
		"parsed_rows", report.ParsedRows,
		"dropped_rows", report.DroppedRows)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toSessionResponse(s))
}

func (h *Handlers) countUploadError(kind string) {
	if h.metrics != nil {
		h.metrics.UploadErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// HandleListSessions returns summaries of every live session, oldest
// first.
// GET /api/campaigns
func (h *Handlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.store.List()
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"sessions": out})
}

// HandleGetSession returns the session summary with facets and metrics.
// GET /api/campaigns/{sessionID}
func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSessionResponse(s))
}

// HandleUpdateFilters replaces the session's filter criteria and
// returns the recomputed summary.
// PUT /api/campaigns/{sessionID}/filters
func (h *Handlers) HandleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	var c domain.Criteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if c.ResponseMode != "" && !c.ResponseMode.Valid() {
		writeError(w, fmt.Sprintf("unknown response mode %q", c.ResponseMode), http.StatusBadRequest)
		return
	}
	for _, st := range c.Statuses {
		if !st.Valid() {
			writeError(w, fmt.Sprintf("unknown status %q", st), http.StatusBadRequest)
			return
		}
	}

	s, ok := h.store.UpdateCriteria(chi.URLParam(r, "sessionID"), c)
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	if h.metrics != nil {
		h.metrics.FilterAppliesTotal.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSessionResponse(s))
}

// HandleGetMetrics returns only the aggregate counts for the session.
// GET /api/campaigns/{sessionID}/metrics
func (h *Handlers) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Metrics)
}

// HandleGetRecords returns the filtered view, paginated.
// GET /api/campaigns/{sessionID}/records?page=1&limit=50
func (h *Handlers) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	params := ParsePagination(r, 50, 500)
	total := len(s.Filtered)

	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	page := s.Filtered[start:end]
	if page == nil {
		page = []domain.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewPaginatedResponse(page, params, total))
}

// HandleDeleteSession discards the session and its dataset.
// DELETE /api/campaigns/{sessionID}
func (h *Handlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "sessionID")) {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportPager builds the chunking pager from query params and config.
func (h *Handlers) exportPager(r *http.Request, maxFiles int) export.Pager {
	perFile := h.cfg.Export.DefaultRecordsPerFile
	if v := r.URL.Query().Get("per_file"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perFile = n
		}
	}
	return export.NewPager(perFile, maxFiles)
}

// exportPage resolves the ?part query param against the pager. part is
// 1-based; absent means the whole filtered set in one file.
func exportPage(r *http.Request, p export.Pager, records []domain.Record) ([]domain.Record, bool, error) {
	v := r.URL.Query().Get("part")
	if v == "" {
		return records, false, nil
	}
	part, err := strconv.Atoi(v)
	if err != nil {
		return nil, true, fmt.Errorf("invalid part %q", v)
	}
	page, err := p.Page(records, part)
	if err != nil {
		return nil, true, err
	}
	return page, true, nil
}

// writeManifest answers ?manifest=true requests: how many parts a
// chunked export would produce, without rendering any of them.
func writeManifest(w http.ResponseWriter, p export.Pager, total int, format string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"format":           format,
		"total_records":    total,
		"records_per_file": p.PerFile,
		"parts":            p.Pages(total),
		"max_parts":        p.MaxFiles,
	})
}

// HandleExportCSV streams the filtered view as a CSV download.
// GET /api/campaigns/{sessionID}/export/csv
// Query: only_phone, include_names, columns (comma-separated),
// per_file, part, manifest
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	opts := export.CSVOptions{
		OnlyPhoneNumber: q.Get("only_phone") == "true",
		IncludeNames:    q.Get("include_names") == "true",
	}
	if cols := q.Get("columns"); cols != "" {
		opts.CustomColumns = strings.Split(cols, ",")
	}

	pager := h.exportPager(r, export.MaxCSVFiles)
	if q.Get("manifest") == "true" {
		writeManifest(w, pager, len(s.Filtered), "csv")
		return
	}

	records, chunked, err := exportPage(r, pager, s.Filtered)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := export.CSV(records, opts.Columns())
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			writeError(w, "no records to export", http.StatusUnprocessableEntity)
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.countExport("csv")

	name := "contatos.csv"
	if chunked {
		name = fmt.Sprintf("contatos_parte_%s.csv", q.Get("part"))
	}
	writeDownload(w, name, "text/csv; charset=utf-8", []byte(body))
}

// HandleExportZenvia streams the filtered view in the carrier's
// celular;sms layout.
// GET /api/campaigns/{sessionID}/export/zenvia?message=...
func (h *Handlers) HandleExportZenvia(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	message := q.Get("message")
	if message == "" {
		writeError(w, "message is required", http.StatusBadRequest)
		return
	}

	pager := h.exportPager(r, export.MaxCSVFiles)
	if q.Get("manifest") == "true" {
		writeManifest(w, pager, len(s.Filtered), "zenvia")
		return
	}

	records, chunked, err := exportPage(r, pager, s.Filtered)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := export.Zenvia(records, message)
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			writeError(w, "no records to export", http.StatusUnprocessableEntity)
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.countExport("zenvia")

	name := "zenvia.csv"
	if chunked {
		name = fmt.Sprintf("zenvia_parte_%s.csv", q.Get("part"))
	}
	writeDownload(w, name, "text/csv; charset=utf-8", []byte(body))
}

// HandleExportExcel streams the filtered view as an XLSX workbook with
// Portuguese headers and status labels.
// GET /api/campaigns/{sessionID}/export/excel
func (h *Handlers) HandleExportExcel(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	pager := h.exportPager(r, export.MaxExcelFiles)
	if q.Get("manifest") == "true" {
		writeManifest(w, pager, len(s.Filtered), "excel")
		return
	}

	records, chunked, err := exportPage(r, pager, s.Filtered)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := export.Excel(records)
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			writeError(w, "no records to export", http.StatusUnprocessableEntity)
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.countExport("excel")

	name := "relatorio.xlsx"
	if chunked {
		name = fmt.Sprintf("relatorio_parte_%s.xlsx", q.Get("part"))
	}
	writeDownload(w, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
}

func (h *Handlers) countExport(format string) {
	if h.metrics != nil {
		h.metrics.ExportsTotal.WithLabelValues(format).Inc()
	}
}

func writeDownload(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeFormatError(w http.ResponseWriter, e *ingest.FormatError) {
	missing := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		missing = append(missing, string(f))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":           e.Error(),
		"missing_columns": missing,
	})
}
