package alert

import (
	"context"
	"errors"

	"shesafeBack/internal/alert/dispatch"
	"shesafeBack/internal/alert/tracking"
	"shesafeBack/internal/bridge"
	"shesafeBack/internal/config"
	"shesafeBack/internal/models"
)

// Logger provides minimal logging required by the alert module.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ProfileSource resolves profile-owned inputs of a cycle.
type ProfileSource interface {
	Identifier(ctx context.Context, userID int) (string, error)
	Preference(ctx context.Context, userID int) (models.SafetyPreference, error)
}

// ContactSource loads the validated emergency contact list.
type ContactSource interface {
	List(ctx context.Context, userID int) ([]models.Contact, error)
}

// ResultPublisher receives the cycle result for display.
type ResultPublisher interface {
	PublishResult(result models.CycleResult)
}

// Notifier pushes the cycle result to the user's own devices.
type Notifier interface {
	PushCycleResult(ctx context.Context, userID int, result models.CycleResult) error
}

// Auditor retains a snapshot of the cycle for evidence.
type Auditor interface {
	StoreCycle(ctx context.Context, result models.CycleResult) error
}

// Deps groups external dependencies needed by the alert module.
type Deps struct {
	Bridge   *bridge.Client
	Profile  ProfileSource
	Contacts ContactSource
	Sink     tracking.Sink
	Texts    dispatch.TextSender // overrides the bridge SMS channel when set
	Results  ResultPublisher
	Notifier Notifier
	Auditor  Auditor
	Logger   Logger
	Config   config.AlertConfig

	module *moduleState
}

// Validate ensures required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Bridge == nil {
		return errors.New("alert deps: Bridge is required")
	}
	if d.Profile == nil {
		return errors.New("alert deps: Profile is required")
	}
	if d.Contacts == nil {
		return errors.New("alert deps: Contacts is required")
	}
	if d.Sink == nil {
		return errors.New("alert deps: Sink is required")
	}
	if d.Logger == nil {
		return errors.New("alert deps: Logger is required")
	}
	return nil
}
