package httpx

import (
	"net/http"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// ApplicationHandlers provides HTTP handlers for the application workflow.
type ApplicationHandlers struct {
	Svc *service.WorkflowService
}

// Submit handles POST /api/jobs/{id}/applications.
func (h *ApplicationHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var form *model.ApplicationForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	app, err := h.Svc.SubmitApplication(r.Context(), r.PathValue("id"), caller, form)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// respondRequest carries the employer's decision payload.
type respondRequest struct {
	Decision model.ApplicationStatus `json:"decision"`
	Message  string                  `json:"message"`
}

// Respond handles POST /api/applications/{id}/respond.
func (h *ApplicationHandlers) Respond(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var req respondRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.RespondToApplication(r.Context(), r.PathValue("id"), caller, req.Decision, req.Message); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": string(req.Decision)})
}

// ListMine handles GET /api/applications for the calling applicant, each item
// joined with its (possibly placeholder) job summary.
func (h *ApplicationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	apps, err := h.Svc.ListForApplicant(r.Context(), caller.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

// ListForJob handles GET /api/jobs/{id}/applications for the posting employer.
func (h *ApplicationHandlers) ListForJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	apps, err := h.Svc.ListForJob(r.Context(), r.PathValue("id"), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}
