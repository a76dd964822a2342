package permission

import (
	"context"
	"fmt"

	"shesafeBack/internal/bridge"
)

// Broker prompts the device user for one capability grant.
type Broker interface {
	RequestPermission(ctx context.Context, kind bridge.PermissionKind) (bool, error)
}

// Logger is the minimal logger required by the gate.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// requestOrder is fixed: call placement first, location last.
var requestOrder = []bridge.PermissionKind{
	bridge.PermissionPlaceCall,
	bridge.PermissionSendMessage,
	bridge.PermissionReadMessages,
	bridge.PermissionFineLocation,
}

// DeniedError is the single aggregate denial returned when any grant in the
// sequence is refused.
type DeniedError struct {
	Kind bridge.PermissionKind
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("permission: %s denied", e.Kind)
}

// Gate requests every grant the alert pipeline needs, in order, stopping at
// the first refusal. Grants are never cached across cycles; they can be
// revoked between triggers.
type Gate struct {
	broker Broker
	logger Logger
}

// NewGate constructs a Gate.
func NewGate(broker Broker, logger Logger) *Gate {
	return &Gate{broker: broker, logger: logger}
}

// Check runs the full request sequence. A broker error on a request counts as
// a denial of that grant: the pipeline must not proceed on unknown state.
func (g *Gate) Check(ctx context.Context) error {
	return g.check(ctx, requestOrder)
}

// CheckRead requests only the read-messages grant, for the ride preview flow.
func (g *Gate) CheckRead(ctx context.Context) error {
	return g.check(ctx, []bridge.PermissionKind{bridge.PermissionReadMessages})
}

func (g *Gate) check(ctx context.Context, kinds []bridge.PermissionKind) error {
	for _, kind := range kinds {
		granted, err := g.broker.RequestPermission(ctx, kind)
		if err != nil {
			g.logger.Errorf("permission: request %s failed: %v", kind, err)
			return &DeniedError{Kind: kind}
		}
		if !granted {
			g.logger.Infof("permission: %s refused by user", kind)
			return &DeniedError{Kind: kind}
		}
	}
	return nil
}
