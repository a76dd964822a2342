package permission

import (
	"context"
	"errors"
	"testing"

	"shesafeBack/internal/bridge"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type stubBroker struct {
	denied map[bridge.PermissionKind]bool
	errOn  bridge.PermissionKind
	asked  []bridge.PermissionKind
}

func (s *stubBroker) RequestPermission(ctx context.Context, kind bridge.PermissionKind) (bool, error) {
	s.asked = append(s.asked, kind)
	if s.errOn == kind {
		return false, errors.New("bridge unreachable")
	}
	return !s.denied[kind], nil
}

func TestCheckAllGranted(t *testing.T) {
	broker := &stubBroker{}
	g := NewGate(broker, testLogger{})
	if err := g.Check(context.Background()); err != nil {
		t.Fatalf("check error: %v", err)
	}
	if len(broker.asked) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(broker.asked))
	}
	if broker.asked[0] != bridge.PermissionPlaceCall {
		t.Fatalf("expected place_call first, got %s", broker.asked[0])
	}
	if broker.asked[3] != bridge.PermissionFineLocation {
		t.Fatalf("expected fine_location last, got %s", broker.asked[3])
	}
}

func TestCheckStopsAtFirstDenial(t *testing.T) {
	broker := &stubBroker{denied: map[bridge.PermissionKind]bool{bridge.PermissionSendMessage: true}}
	g := NewGate(broker, testLogger{})

	err := g.Check(context.Background())
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected DeniedError, got %v", err)
	}
	if denied.Kind != bridge.PermissionSendMessage {
		t.Fatalf("expected send_message denial, got %s", denied.Kind)
	}
	if len(broker.asked) != 2 {
		t.Fatalf("expected sequence to stop after denial, asked %d", len(broker.asked))
	}
}

func TestCheckBrokerErrorCountsAsDenial(t *testing.T) {
	broker := &stubBroker{errOn: bridge.PermissionFineLocation}
	g := NewGate(broker, testLogger{})

	err := g.Check(context.Background())
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected DeniedError, got %v", err)
	}
	if denied.Kind != bridge.PermissionFineLocation {
		t.Fatalf("expected fine_location denial, got %s", denied.Kind)
	}
}

func TestCheckReadRequestsOnlyInbox(t *testing.T) {
	broker := &stubBroker{}
	g := NewGate(broker, testLogger{})
	if err := g.CheckRead(context.Background()); err != nil {
		t.Fatalf("check read error: %v", err)
	}
	if len(broker.asked) != 1 || broker.asked[0] != bridge.PermissionReadMessages {
		t.Fatalf("expected a single read_messages request, got %v", broker.asked)
	}
}
