package location

import (
	"context"
	"time"

	"shesafeBack/internal/models"
)

// Provider produces a single position fix.
type Provider interface {
	CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error)
}

// Logger is the minimal logger required by the acquirer.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// Config bounds one acquisition attempt.
type Config struct {
	// Timeout is the maximum wait for a fix.
	Timeout time.Duration
	// MaxAge allows a cached fix this old instead of re-polling the radio.
	MaxAge time.Duration
}

// Acquirer wraps a single high-accuracy position request. Failure is an
// explicit "unavailable" outcome, never an error that aborts the cycle.
type Acquirer struct {
	provider Provider
	logger   Logger
	cfg      Config
}

// NewAcquirer constructs an Acquirer.
func NewAcquirer(provider Provider, logger Logger, cfg Config) *Acquirer {
	return &Acquirer{provider: provider, logger: logger, cfg: cfg}
}

// Acquire requests one fix. ok is false when the provider timed out or
// errored; callers substitute a placeholder downstream.
func (a *Acquirer) Acquire(ctx context.Context) (coords models.Coordinates, ok bool) {
	coords, err := a.provider.CurrentPosition(ctx, true, a.cfg.Timeout, a.cfg.MaxAge)
	if err != nil {
		a.logger.Errorf("location: acquisition failed: %v", err)
		return models.Coordinates{}, false
	}
	return coords, true
}
