package handlers

import (
	"encoding/json"
	"net/http"

	"shesafeBack/internal/models"
	"shesafeBack/internal/services"
)

// ContactHandler exposes the emergency contact registry.
type ContactHandler struct {
	Service *services.ContactService
}

// GetContacts returns the stored list for display, unfiltered.
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	contacts, err := h.Service.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load contacts", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(contacts)
}

// SaveContacts validates and persists up to three contacts.
func (h *ContactHandler) SaveContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var contacts []models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contacts); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	saved, err := h.Service.Save(r.Context(), userID, contacts)
	if err != nil {
		http.Error(w, "Failed to save contacts", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(saved)
}
