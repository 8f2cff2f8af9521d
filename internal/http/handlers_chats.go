package httpx

import (
	"net/http"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// ChatHandlers provides HTTP handlers for two-party chats.
type ChatHandlers struct {
	Svc *service.ChatService
}

// Start handles POST /api/chats.
func (h *ChatHandlers) Start(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var req model.StartChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	chat, err := h.Svc.Start(r.Context(), caller, req.PeerID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, chat)
}

// List handles GET /api/chats for the calling user.
func (h *ChatHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	chats, err := h.Svc.List(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"chats": chats, "count": len(chats)})
}

// Get handles GET /api/chats/{id}.
func (h *ChatHandlers) Get(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	chat, err := h.Svc.Get(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, chat)
}

// sendMessageRequest carries one chat message payload.
type sendMessageRequest struct {
	Text string `json:"text"`
}

// Send handles POST /api/chats/{id}/messages.
func (h *ChatHandlers) Send(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var req sendMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	chat, err := h.Svc.Send(r.Context(), caller, r.PathValue("id"), req.Text)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, chat)
}
