package compose

import (
	"strings"
	"testing"

	"shesafeBack/internal/models"
)

func baseInput() Input {
	return Input{
		Preference:   models.SafetyPreference{Mode: models.SafetyModeRide},
		Coordinates:  models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
		HasLocation:  true,
		Trip:         models.EmptyTripContext(),
		Phone:        "9876543210",
		TrackingBase: "https://track.example.com/live",
	}
}

func TestAlertContainsMapLink(t *testing.T) {
	body := Alert(baseInput())
	if !strings.Contains(body, MapLink(models.Coordinates{Latitude: 12.9716, Longitude: 77.5946})) {
		t.Fatalf("expected map link in body:\n%s", body)
	}
	if strings.Contains(body, LocationUnavailable) {
		t.Fatal("placeholder present despite a fix")
	}
}

func TestAlertLocationPlaceholder(t *testing.T) {
	in := baseInput()
	in.HasLocation = false
	body := Alert(in)
	if !strings.Contains(body, LocationUnavailable) {
		t.Fatalf("expected location placeholder:\n%s", body)
	}
	if strings.Contains(body, "maps.google.com") {
		t.Fatal("map link present without a fix")
	}
}

func TestAlertCustomMessageOnlyInRideMode(t *testing.T) {
	in := baseInput()
	in.Preference.CustomMessage = "Meet me at the north gate"

	body := Alert(in)
	if !strings.Contains(body, "Meet me at the north gate") {
		t.Fatalf("expected custom message in ride mode:\n%s", body)
	}

	in.Preference.Mode = models.SafetyModeWalk
	body = Alert(in)
	if strings.Contains(body, "Meet me at the north gate") {
		t.Fatalf("custom message leaked into walk mode:\n%s", body)
	}
}

func TestAlertRideDetailsLines(t *testing.T) {
	in := baseInput()
	in.Trip = models.TripContext{DriverName: "Ramesh", VehicleNumber: "KA01AB1234", DriverPhone: "9000000000"}
	body := Alert(in)
	for _, want := range []string{"Driver: Ramesh", "Vehicle: KA01AB1234", "Driver Phone: 9000000000"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestAlertTrackingLineAlwaysLast(t *testing.T) {
	body := Alert(baseInput())
	lines := strings.Split(body, "\n")
	last := lines[len(lines)-1]
	if last != "Track me: https://track.example.com/live/9876543210" {
		t.Fatalf("unexpected last line: %q", last)
	}
}

func TestAlertTrackingUnavailableWithoutPhone(t *testing.T) {
	in := baseInput()
	in.Phone = ""
	body := Alert(in)
	if !strings.Contains(body, TrackingUnavailable) {
		t.Fatalf("expected tracking placeholder:\n%s", body)
	}
}

func TestAlertNeverExceedsBodyLimit(t *testing.T) {
	in := baseInput()
	in.Preference.CustomMessage = strings.Repeat("stay on the main road ", 40)
	in.Trip = models.TripContext{
		DriverName:    strings.Repeat("A", 120),
		VehicleNumber: strings.Repeat("B", 120),
		DriverPhone:   "9000000000",
	}
	body := Alert(in)
	if len(body) > MaxBodyLen {
		t.Fatalf("body length %d exceeds limit %d", len(body), MaxBodyLen)
	}
	lines := strings.Split(body, "\n")
	if !strings.HasPrefix(lines[len(lines)-1], "Track me: ") {
		t.Fatal("tracking line lost to truncation")
	}
}

func TestSafeMessage(t *testing.T) {
	body := Safe(baseInput())
	if !strings.Contains(body, "I am safe now") {
		t.Fatalf("unexpected safe body:\n%s", body)
	}
	if !strings.Contains(body, "Track me: ") {
		t.Fatalf("expected tracking line in safe body:\n%s", body)
	}
}

func TestAlertDeterministic(t *testing.T) {
	in := baseInput()
	if Alert(in) != Alert(in) {
		t.Fatal("composition is not deterministic")
	}
}
