package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shesafeBack/internal/alert"
	"shesafeBack/internal/alert/permission"
	"shesafeBack/internal/models"
)

// AlertHandler exposes the trigger detector and alert cycle entry points.
type AlertHandler struct {
	Orchestrator *alert.Orchestrator
}

func userIDFromContext(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	return userID, ok
}

// Arm starts the hold-to-trigger countdown.
func (h *AlertHandler) Arm(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Orchestrator.Arm(userID); err != nil {
		if errors.Is(err, models.ErrCycleInFlight) {
			http.Error(w, "Alert already in progress", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to arm", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "arming"})
}

// Cancel discards the running countdown.
func (h *AlertHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Orchestrator.CancelArming(userID); err != nil {
		http.Error(w, "No countdown in progress", http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "canceled"})
}

// Progress reports the arming countdown ratio.
func (h *AlertHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]float64{"progress": h.Orchestrator.Progress(userID)})
}

// Shake fires immediately from a shake gesture.
func (h *AlertHandler) Shake(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Orchestrator.Shake(userID); err != nil {
		if errors.Is(err, models.ErrCycleInFlight) {
			http.Error(w, "Alert already in progress", http.StatusConflict)
			return
		}
		// debounced shakes are acknowledged, not errored
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ignored"})
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "fired"})
}

// Trigger fires immediately on behalf of an external signal.
func (h *AlertHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Orchestrator.Trigger(userID); err != nil {
		http.Error(w, "Alert already in progress", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "fired"})
}

// Safe sends the mark-safe message to contacts and stops tracking.
func (h *AlertHandler) Safe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	result, err := h.Orchestrator.MarkSafe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNoContacts) {
			http.Error(w, "No valid emergency contacts saved", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to send safe message", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}

// RideDetails runs the read-only ride preview.
func (h *AlertHandler) RideDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	trip, coords, hasLoc, err := h.Orchestrator.RideDetails(r.Context(), userID)
	if err != nil {
		var denied *permission.DeniedError
		if errors.As(err, &denied) {
			http.Error(w, "Permission denied: "+string(denied.Kind), http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to fetch ride details", http.StatusInternalServerError)
		return
	}
	resp := struct {
		Trip     models.TripContext  `json:"trip"`
		Location *models.Coordinates `json:"location,omitempty"`
	}{Trip: trip}
	if hasLoc {
		resp.Location = &coords
	}
	_ = json.NewEncoder(w).Encode(resp)
}
