package handlers

import (
	"encoding/json"
	"net/http"

	"shesafeBack/internal/alert"
	"shesafeBack/internal/services"
)

// TrackingHandler exposes live-location session control and the read
// endpoint behind the tracking link.
type TrackingHandler struct {
	Orchestrator *alert.Orchestrator
	Sink         *services.FirestoreSink
}

// Start begins live publishing for the authenticated user.
func (h *TrackingHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	phone, err := h.Orchestrator.StartTracking(r.Context(), userID)
	if err != nil {
		http.Error(w, "No phone identifier on profile", http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "tracking", "phone": phone})
}

// Stop ends live publishing. Stopping with no active session is a no-op.
func (h *TrackingHandler) Stop(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.Orchestrator.StopTracking(r.Context(), userID); err != nil {
		http.Error(w, "No phone identifier on profile", http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "stopped"})
}

// Get returns the last published point for a phone. This is the target the
// tracking link in alert messages points at.
func (h *TrackingHandler) Get(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get(":phone")
	if phone == "" {
		http.Error(w, "Invalid phone", http.StatusBadRequest)
		return
	}
	loc, err := h.Sink.ReadLocation(r.Context(), phone)
	if err != nil {
		http.Error(w, "No live location", http.StatusNotFound)
		return
	}
	resp := struct {
		Active   bool        `json:"active"`
		Location interface{} `json:"location"`
	}{Active: h.Orchestrator.TrackingActive(phone), Location: loc}
	_ = json.NewEncoder(w).Encode(resp)
}
