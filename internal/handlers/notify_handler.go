package handlers

import (
	"encoding/json"
	"net/http"

	"shesafeBack/internal/models"
	"shesafeBack/internal/services"
)

// NotifyHandler manages FCM device tokens.
type NotifyHandler struct {
	Service *services.NotifyService
}

// CreateToken registers a device token for the authenticated user.
func (h *NotifyHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.NotifyToken
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Service.RegisterToken(r.Context(), userID, req.Token); err != nil {
		http.Error(w, "Failed to insert token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteToken removes a device token.
func (h *NotifyHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if token == "" {
		http.Error(w, "Invalid token", http.StatusBadRequest)
		return
	}
	if err := h.Service.RemoveToken(r.Context(), token); err != nil {
		http.Error(w, "Failed to delete token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
