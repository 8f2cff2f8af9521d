// Package httpx provides HTTP handlers and utilities for the jobdeck API.
package httpx

import (
	"net/http"
	"strings"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc *service.JobService
}

// Create handles POST /api/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var req *model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), caller, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// Get handles GET /api/jobs/{id}.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// List handles GET /api/jobs with search/type/location filters.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, 200)
	opts := model.JobListOptions{
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		var jobType model.JobType
		if err := jobType.UnmarshalText([]byte(raw)); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		opts.Type = jobType
	}

	jobs, err := h.Svc.Browse(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// ListMine handles GET /api/jobs/mine for the calling employer.
func (h *JobHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	jobs, err := h.Svc.ListMine(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// Close handles POST /api/jobs/{id}/close.
func (h *JobHandlers) Close(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	if err := h.Svc.Close(r.Context(), caller, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
