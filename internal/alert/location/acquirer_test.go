package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"shesafeBack/internal/models"
)

type testLogger struct{}

func (testLogger) Errorf(string, ...interface{}) {}

type stubProvider struct {
	coords models.Coordinates
	err    error
}

func (s *stubProvider) CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error) {
	return s.coords, s.err
}

func TestAcquire(t *testing.T) {
	a := NewAcquirer(&stubProvider{coords: models.Coordinates{Latitude: 1, Longitude: 2}}, testLogger{}, Config{})
	coords, ok := a.Acquire(context.Background())
	if !ok {
		t.Fatal("expected a fix")
	}
	if coords.Latitude != 1 || coords.Longitude != 2 {
		t.Fatalf("unexpected coords %+v", coords)
	}
}

func TestAcquireFailureIsNotFatal(t *testing.T) {
	a := NewAcquirer(&stubProvider{err: errors.New("gps timeout")}, testLogger{}, Config{})
	if _, ok := a.Acquire(context.Background()); ok {
		t.Fatal("expected ok=false on provider error")
	}
}
