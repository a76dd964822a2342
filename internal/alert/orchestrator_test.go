package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"shesafeBack/internal/alert/dispatch"
	"shesafeBack/internal/alert/location"
	"shesafeBack/internal/alert/permission"
	"shesafeBack/internal/alert/ride"
	"shesafeBack/internal/alert/tracking"
	"shesafeBack/internal/bridge"
	"shesafeBack/internal/config"
	"shesafeBack/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type stubBroker struct {
	mu     sync.Mutex
	denied map[bridge.PermissionKind]bool
	asked  int
}

func (s *stubBroker) RequestPermission(ctx context.Context, kind bridge.PermissionKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked++
	return !s.denied[kind], nil
}

type stubDevice struct {
	mu       sync.Mutex
	coords   models.Coordinates
	messages []models.InboxMessage
	fixes    int
	reads    int
}

func (s *stubDevice) CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixes++
	return s.coords, nil
}

func (s *stubDevice) ListInbox(ctx context.Context, maxCount int) ([]models.InboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.messages, nil
}

type stubChannels struct {
	mu     sync.Mutex
	texts  []string
	called []string
}

func (s *stubChannels) SendText(ctx context.Context, phone, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, phone)
	return nil
}

func (s *stubChannels) PlaceCall(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.called = append(s.called, phone)
	return nil
}

type stubSink struct {
	mu     sync.Mutex
	points int
}

func (s *stubSink) PublishLocation(ctx context.Context, loc models.LiveLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points++
	return nil
}

type stubProfile struct {
	phone string
	pref  models.SafetyPreference
}

func (s *stubProfile) Identifier(ctx context.Context, userID int) (string, error) {
	return s.phone, nil
}

func (s *stubProfile) Preference(ctx context.Context, userID int) (models.SafetyPreference, error) {
	return s.pref, nil
}

type stubContacts struct {
	list []models.Contact
}

func (s *stubContacts) List(ctx context.Context, userID int) ([]models.Contact, error) {
	return s.list, nil
}

type stubResults struct {
	ch chan models.CycleResult
}

func (s *stubResults) PublishResult(result models.CycleResult) {
	s.ch <- result
}

type fixture struct {
	orchestrator *Orchestrator
	broker       *stubBroker
	device       *stubDevice
	channels     *stubChannels
	sink         *stubSink
	results      *stubResults
}

func newFixture(t *testing.T, broker *stubBroker, device *stubDevice, contacts []models.Contact) *fixture {
	t.Helper()
	logger := testLogger{}
	cfg := config.AlertConfig{
		HoldDuration:        20 * time.Millisecond,
		ShakeCooldown:       time.Hour,
		CallGap:             time.Millisecond,
		TrackingInterval:    10 * time.Millisecond,
		LocationTimeout:     time.Second,
		LocationMaxAge:      time.Second,
		InboxMaxCount:       20,
		FailureWarnStreak:   3,
		TrackingLinkBaseURL: "https://track.example.com/live",
	}

	channels := &stubChannels{}
	sink := &stubSink{}
	results := &stubResults{ch: make(chan models.CycleResult, 4)}

	deps := &Deps{
		Profile:  &stubProfile{phone: "9876543210", pref: models.SafetyPreference{Mode: models.SafetyModeRide}},
		Contacts: &stubContacts{list: contacts},
		Results:  results,
		Logger:   logger,
		Config:   cfg,
	}

	gate := permission.NewGate(broker, logger)
	acquirer := location.NewAcquirer(device, logger, location.Config{Timeout: cfg.LocationTimeout, MaxAge: cfg.LocationMaxAge})
	extractor := ride.NewExtractor(device, logger, cfg.InboxMaxCount)
	engine := dispatch.New(channels, channels, logger, dispatch.ConfigAdapter{CallGap: cfg.CallGap})
	publisher := tracking.NewPublisher(device, sink, logger, tracking.Config{
		Interval:          cfg.TrackingInterval,
		LocationTimeout:   cfg.LocationTimeout,
		LocationMaxAge:    cfg.LocationMaxAge,
		FailureWarnStreak: cfg.FailureWarnStreak,
	})

	return &fixture{
		orchestrator: newOrchestrator(deps, gate, acquirer, extractor, engine, publisher),
		broker:       broker,
		device:       device,
		channels:     channels,
		sink:         sink,
		results:      results,
	}
}

func rideInbox() []models.InboxMessage {
	return []models.InboxMessage{
		{Body: "Uber confirmed. Driver Name: Ramesh\nVehicle Number: KA01AB1234\nContact 9000009999", Date: 200},
		{Body: "Your bill is due", Date: 300},
	}
}

func TestRunCycleDeniedBeforeAnySideEffect(t *testing.T) {
	broker := &stubBroker{denied: map[bridge.PermissionKind]bool{bridge.PermissionPlaceCall: true}}
	device := &stubDevice{messages: rideInbox()}
	f := newFixture(t, broker, device, []models.Contact{{Name: "Mom", Phone: "9000000001"}})

	result := f.orchestrator.RunCycle(context.Background(), 7, "api")

	if result.Denied != string(bridge.PermissionPlaceCall) {
		t.Fatalf("expected place_call denial, got %q", result.Denied)
	}
	if device.fixes != 0 || device.reads != 0 {
		t.Fatal("denied cycle touched the device")
	}
	if len(f.channels.texts) != 0 || len(f.channels.called) != 0 {
		t.Fatal("denied cycle dispatched")
	}
	if f.orchestrator.TrackingActive("9876543210") {
		t.Fatal("denied cycle started tracking")
	}
}

func TestRunCycleHappyPath(t *testing.T) {
	broker := &stubBroker{}
	device := &stubDevice{coords: models.Coordinates{Latitude: 12.9, Longitude: 77.5}, messages: rideInbox()}
	contacts := []models.Contact{
		{Name: "Mom", Phone: "9000000001"},
		{Name: "Dad", Phone: "9000000002"},
	}
	f := newFixture(t, broker, device, contacts)
	defer f.orchestrator.Shutdown()

	result := f.orchestrator.RunCycle(context.Background(), 7, "hold")

	if result.Denied != "" {
		t.Fatalf("unexpected denial %q", result.Denied)
	}
	if result.Trip.DriverName != "Ramesh" {
		t.Fatalf("trip not extracted: %+v", result.Trip)
	}
	if len(result.Results) != 4 {
		t.Fatalf("expected 4 dispatch results, got %d", len(result.Results))
	}
	if len(f.channels.texts) != 2 || len(f.channels.called) != 2 {
		t.Fatalf("expected 2 texts and 2 calls, got %d and %d", len(f.channels.texts), len(f.channels.called))
	}
	if result.Message == "" {
		t.Fatal("empty message")
	}
	if !f.orchestrator.TrackingActive("9876543210") {
		t.Fatal("tracking did not start after dispatch")
	}
}

func TestTriggerRunsCycleAndPublishesResult(t *testing.T) {
	broker := &stubBroker{}
	device := &stubDevice{messages: rideInbox()}
	f := newFixture(t, broker, device, []models.Contact{{Name: "Mom", Phone: "9000000001"}})
	defer f.orchestrator.Shutdown()

	if err := f.orchestrator.Trigger(7); err != nil {
		t.Fatalf("trigger error: %v", err)
	}

	select {
	case result := <-f.results.ch:
		if result.UserID != 7 {
			t.Fatalf("result for wrong user: %d", result.UserID)
		}
		if result.CycleID == "" {
			t.Fatal("missing cycle id")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cycle result never published")
	}

	// the detector must be reusable once the cycle finished
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if err := f.orchestrator.Trigger(7); err == nil {
			<-f.results.ch
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("detector never returned to idle")
}

func TestMarkSafe(t *testing.T) {
	broker := &stubBroker{}
	device := &stubDevice{}
	f := newFixture(t, broker, device, []models.Contact{{Name: "Mom", Phone: "9000000001"}})

	f.orchestrator.publisher.Start("9876543210")
	result, err := f.orchestrator.MarkSafe(context.Background(), 7)
	if err != nil {
		t.Fatalf("mark safe error: %v", err)
	}
	<-f.results.ch

	if len(f.channels.called) != 0 {
		t.Fatal("safe flow placed calls")
	}
	if len(f.channels.texts) != 1 {
		t.Fatalf("expected one safe text, got %d", len(f.channels.texts))
	}
	if f.orchestrator.TrackingActive("9876543210") {
		t.Fatal("safe flow left tracking running")
	}
	if result.Message == "" {
		t.Fatal("empty safe message")
	}
}

func TestMarkSafeWithoutContacts(t *testing.T) {
	f := newFixture(t, &stubBroker{}, &stubDevice{}, nil)
	if _, err := f.orchestrator.MarkSafe(context.Background(), 7); err != models.ErrNoContacts {
		t.Fatalf("expected ErrNoContacts, got %v", err)
	}
}

func TestRideDetailsRequiresReadGrant(t *testing.T) {
	broker := &stubBroker{denied: map[bridge.PermissionKind]bool{bridge.PermissionReadMessages: true}}
	device := &stubDevice{messages: rideInbox()}
	f := newFixture(t, broker, device, nil)

	if _, _, _, err := f.orchestrator.RideDetails(context.Background(), 7); err == nil {
		t.Fatal("expected denial error")
	}
	if device.reads != 0 {
		t.Fatal("denied preview read the inbox")
	}
}

func TestRideDetailsPreview(t *testing.T) {
	device := &stubDevice{coords: models.Coordinates{Latitude: 1}, messages: rideInbox()}
	f := newFixture(t, &stubBroker{}, device, nil)

	trip, coords, ok, err := f.orchestrator.RideDetails(context.Background(), 7)
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if trip.VehicleNumber != "KA01AB1234" {
		t.Fatalf("unexpected trip %+v", trip)
	}
	if !ok || coords.Latitude != 1 {
		t.Fatalf("unexpected fix %+v ok=%v", coords, ok)
	}
	if len(f.channels.texts) != 0 || len(f.channels.called) != 0 {
		t.Fatal("preview dispatched")
	}
}
