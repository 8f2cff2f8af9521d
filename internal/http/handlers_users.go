package httpx

import (
	"net/http"

	"github.com/jobdeck/jobdeck-api/internal/service"
)

// UserHandlers provides HTTP handlers for profiles and candidate browsing.
type UserHandlers struct {
	Svc *service.UserService
}

// SaveProfile handles PUT /api/profile for the calling user.
func (h *UserHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var update service.ProfileUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}

	user, err := h.Svc.SaveProfile(r.Context(), caller, update)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// GetProfile handles GET /api/profile for the calling user.
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	user, err := h.Svc.Get(r.Context(), caller.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// ListCandidates handles GET /api/candidates for employers.
func (h *UserHandlers) ListCandidates(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	limit, offset := ParseLimitOffset(r, 50, 200)
	users, err := h.Svc.ListCandidates(r.Context(), caller, limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"candidates": users, "count": len(users)})
}
