package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shesafeBack/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type stubProvider struct {
	mu     sync.Mutex
	coords models.Coordinates
	err    error
	asks   int
}

func (s *stubProvider) CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asks++
	return s.coords, s.err
}

type stubSink struct {
	mu     sync.Mutex
	points []models.LiveLocation
}

func (s *stubSink) PublishLocation(ctx context.Context, loc models.LiveLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = append(s.points, loc)
	return nil
}

func (s *stubSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

func testConfig() Config {
	return Config{
		Interval:          10 * time.Millisecond,
		LocationTimeout:   time.Second,
		LocationMaxAge:    time.Second,
		FailureWarnStreak: 3,
	}
}

func TestPublisherTicksAndStops(t *testing.T) {
	provider := &stubProvider{coords: models.Coordinates{Latitude: 12.9, Longitude: 77.5}}
	sink := &stubSink{}
	p := NewPublisher(provider, sink, testLogger{}, testConfig())

	p.Start("9876543210")
	if !p.Active("9876543210") {
		t.Fatal("expected active session after start")
	}

	deadline := time.Now().Add(time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.count() < 2 {
		t.Fatalf("expected at least 2 published points, got %d", sink.count())
	}

	p.Stop("9876543210")
	if p.Active("9876543210") {
		t.Fatal("expected no session after stop")
	}

	settled := sink.count()
	time.Sleep(50 * time.Millisecond)
	if sink.count() > settled+1 {
		t.Fatalf("publishing continued after stop: %d -> %d", settled, sink.count())
	}

	sink.mu.Lock()
	first := sink.points[0]
	sink.mu.Unlock()
	if first.Phone != "9876543210" || first.Latitude != 12.9 || first.Timestamp == 0 {
		t.Fatalf("unexpected point %+v", first)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	p := NewPublisher(&stubProvider{}, &stubSink{}, testLogger{}, testConfig())
	p.Stop("none")
	p.Start("9876543210")
	p.Stop("9876543210")
	p.Stop("9876543210")
	if p.Active("9876543210") {
		t.Fatal("session survived stop")
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	p := NewPublisher(&stubProvider{}, &stubSink{}, testLogger{}, testConfig())
	p.Start("9876543210")
	p.Start("9876543210")
	if !p.Active("9876543210") {
		t.Fatal("expected active session")
	}
	// one stop must clear it even after a restart
	p.Stop("9876543210")
	if p.Active("9876543210") {
		t.Fatal("restart stacked sessions")
	}
	p.StopAll()
}

func TestFailingProviderKeepsTimerRunning(t *testing.T) {
	provider := &stubProvider{err: errors.New("no fix")}
	sink := &stubSink{}
	p := NewPublisher(provider, sink, testLogger{}, testConfig())

	p.Start("9876543210")
	time.Sleep(60 * time.Millisecond)
	if !p.Active("9876543210") {
		t.Fatal("session died on provider failures")
	}
	if sink.count() != 0 {
		t.Fatalf("failed fixes were published: %d", sink.count())
	}
	p.StopAll()
}
