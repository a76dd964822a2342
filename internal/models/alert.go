package models

import "time"

// NotFound is the sentinel used for ride details that could not be extracted
// from the inbox. It is a valid value, not an error.
const NotFound = "Not Found"

// TripContext holds ride details extracted from the latest ride-provider SMS.
type TripContext struct {
	DriverName    string `json:"driver_name"`
	VehicleNumber string `json:"vehicle_number"`
	DriverPhone   string `json:"driver_phone"`
}

// EmptyTripContext returns a context with every field set to the sentinel.
func EmptyTripContext() TripContext {
	return TripContext{DriverName: NotFound, VehicleNumber: NotFound, DriverPhone: NotFound}
}

// Coordinates is a geographic position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InboxMessage is one SMS from the device inbox.
type InboxMessage struct {
	Body string `json:"body"`
	Date int64  `json:"date"`
}

// SafetyMode describes what the user is currently doing.
type SafetyMode string

const (
	SafetyModeNone SafetyMode = "none"
	SafetyModeRide SafetyMode = "ride"
	SafetyModeWalk SafetyMode = "walk"
)

// SafetyPreference is the profile-owned safety setting read by the composer.
type SafetyPreference struct {
	Mode          SafetyMode `json:"mode"`
	CustomMessage string     `json:"custom_message"`
}

// Channel identifies a dispatch channel.
type Channel string

const (
	ChannelText Channel = "text"
	ChannelCall Channel = "call"
)

// DispatchStatus is the outcome of one attempt on one channel.
type DispatchStatus string

const (
	DispatchSent    DispatchStatus = "sent"
	DispatchFailed  DispatchStatus = "failed"
	DispatchSkipped DispatchStatus = "skipped"
)

// DispatchResult records the outcome for one contact on one channel.
type DispatchResult struct {
	Contact Contact        `json:"contact"`
	Channel Channel        `json:"channel"`
	Status  DispatchStatus `json:"status"`
	Reason  string         `json:"reason,omitempty"`
}

// CycleResult is the observable outcome of one trigger cycle.
type CycleResult struct {
	CycleID    string           `json:"cycle_id"`
	UserID     int              `json:"user_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Denied     string           `json:"denied,omitempty"`
	Message    string           `json:"message,omitempty"`
	Trip       TripContext      `json:"trip"`
	Results    []DispatchResult `json:"results"`
}

// LiveLocation is one published tracking point, keyed by the subject's phone.
type LiveLocation struct {
	Phone     string  `json:"phoneNumber" firestore:"phoneNumber"`
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
	Timestamp int64   `json:"timestamp" firestore:"timestamp"`
}
