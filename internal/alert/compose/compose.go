package compose

import (
	"fmt"
	"strings"

	"shesafeBack/internal/models"
)

// LocationUnavailable is substituted when no fix could be acquired.
const LocationUnavailable = "Location not available"

// TrackingUnavailable is substituted when the user's phone identifier cannot
// be resolved from the profile.
const TrackingUnavailable = "Live tracking unavailable"

// MaxBodyLen caps the composed body at three GSM-7 segments. SMS gateways
// reject or silently split longer bodies; composition never exceeds it.
const MaxBodyLen = 459

// Input carries everything the composer needs. Composition is pure: no I/O,
// deterministic given an Input.
type Input struct {
	Preference   models.SafetyPreference
	Coordinates  models.Coordinates
	HasLocation  bool
	Trip         models.TripContext
	Phone        string // user identifier, empty when unresolved
	TrackingBase string // live-tracking link base URL
}

// MapLink builds a Google Maps URL for a fix.
func MapLink(c models.Coordinates) string {
	return fmt.Sprintf("https://maps.google.com/?q=%f,%f", c.Latitude, c.Longitude)
}

// Alert builds the outgoing emergency message body.
func Alert(in Input) string {
	var b strings.Builder
	b.WriteString(headline(in.Preference.Mode))
	if in.Preference.Mode == models.SafetyModeRide && strings.TrimSpace(in.Preference.CustomMessage) != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(in.Preference.CustomMessage))
	}

	b.WriteString("\nMy location: ")
	if in.HasLocation {
		b.WriteString(MapLink(in.Coordinates))
	} else {
		b.WriteString(LocationUnavailable)
	}

	b.WriteString("\nDriver: " + in.Trip.DriverName)
	b.WriteString("\nVehicle: " + in.Trip.VehicleNumber)
	b.WriteString("\nDriver Phone: " + in.Trip.DriverPhone)

	body := truncate(b.String(), MaxBodyLen-len("\nTrack me: ")-maxTrackingLen(in))
	return body + "\nTrack me: " + trackingLine(in)
}

// Safe builds the short "I am safe" message for the safe flow.
func Safe(in Input) string {
	body := "I am safe now. Thank you for watching over me."
	return truncate(body, MaxBodyLen-len("\nTrack me: ")-maxTrackingLen(in)) + "\nTrack me: " + trackingLine(in)
}

func headline(mode models.SafetyMode) string {
	switch mode {
	case models.SafetyModeRide:
		return "I am in danger during my ride! Please help me."
	case models.SafetyModeWalk:
		return "I am in danger while walking! Please help me."
	default:
		return "I am in danger! Please help me."
	}
}

func trackingLine(in Input) string {
	if in.Phone == "" {
		return TrackingUnavailable
	}
	base := strings.TrimRight(in.TrackingBase, "/")
	return fmt.Sprintf("%s/%s", base, in.Phone)
}

func maxTrackingLen(in Input) int {
	return len(trackingLine(in))
}

// truncate cuts at the last newline before the limit so no line is left half
// written. Falls back to a hard cut when the body is one long line.
func truncate(body string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(body) <= limit {
		return body
	}
	cut := strings.LastIndex(body[:limit], "\n")
	if cut <= 0 {
		return body[:limit]
	}
	return body[:cut]
}
