package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shesafeBack/internal/models"
	"shesafeBack/internal/services"
)

// ProfileHandler exposes safety preference and safety PIN endpoints.
type ProfileHandler struct {
	Service *services.ProfileService
}

// GetPreference returns the stored safety preference.
func (h *ProfileHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	pref, err := h.Service.Preference(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load preference", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(pref)
}

// UpdatePreference stores a new safety preference.
func (h *ProfileHandler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var pref models.SafetyPreference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdatePreference(r.Context(), userID, pref); err != nil {
		http.Error(w, "Failed to update preference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SetPIN hashes and stores the safety PIN.
func (h *ProfileHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.SetPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetPIN(r.Context(), userID, req.PIN); err != nil {
		if errors.Is(err, models.ErrInvalidPIN) {
			http.Error(w, "PIN must be at least 4 digits", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to set PIN", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// VerifyPIN checks a submitted PIN.
func (h *ProfileHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.SetPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Service.VerifyPIN(r.Context(), userID, req.PIN); err != nil {
		if errors.Is(err, models.ErrInvalidPIN) {
			http.Error(w, "Wrong PIN", http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to verify PIN", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"valid": true})
}
