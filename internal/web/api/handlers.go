package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/output"
	"github.com/aegis-sec/aegis/internal/web/jobs"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/go-chi/chi/v5"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager  *jobs.Manager
	Registry *module.Registry
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager, registry *module.Registry) *Handlers {
	return &Handlers{Manager: manager, Registry: registry}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := types.ParseTarget(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid target: "+err.Error())
		return
	}

	names := req.Modules
	if len(names) == 0 || (len(names) == 1 && names[0] == "all") {
		names = h.Registry.Names()
	}
	for _, name := range names {
		if _, _, err := h.Registry.Get(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	job := h.Manager.Create(target, req.runs(names), req.options())
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     job.ID,
		"status": job.Status,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID           string         `json:"id"`
		Target       string         `json:"target"`
		Status       jobs.JobStatus `json:"status"`
		CreatedAt    time.Time      `json:"created_at"`
		Modules      []string       `json:"modules"`
		SuccessCount int            `json:"success_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:           j.ID,
			Target:       j.Target.Host,
			Status:       j.Status,
			CreatedAt:    j.CreatedAt,
			Modules:      j.Modules,
			SuccessCount: j.SuccessCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report. The format query
// parameter selects any registered output format, defaulting to CSV.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Results); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	contentType := "text/plain; charset=utf-8"
	switch format {
	case "json":
		contentType = "application/json"
	case "csv":
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListModules handles GET /api/v1/modules.
func (h *Handlers) ListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.List())
}
