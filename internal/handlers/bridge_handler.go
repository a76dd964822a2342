package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shesafeBack/internal/models"
	"shesafeBack/internal/services"
)

// BridgeHandler pairs the handset bridge agent with an account.
type BridgeHandler struct {
	Service *services.PairingService
}

// Pair issues a short pairing code for the authenticated user. The app shows
// the code and the agent submits it back through Complete.
func (h *BridgeHandler) Pair(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	code, err := h.Service.Begin(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to start pairing", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code})
}

// Complete exchanges a pairing code for a bridge token. Called by the agent
// itself, so there is no user session on this request.
func (h *BridgeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	token, err := h.Service.Complete(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Error(w, "Invalid or expired code", http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to complete pairing", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}
