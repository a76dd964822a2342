package tracking

import (
	"context"
	"sync"
	"time"

	"shesafeBack/internal/models"
)

// Provider produces a single position fix.
type Provider interface {
	CurrentPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (models.Coordinates, error)
}

// Sink receives published points. Writes overwrite the prior value for the
// identifier; no history is retained by this core.
type Sink interface {
	PublishLocation(ctx context.Context, loc models.LiveLocation) error
}

// Logger is the minimal logger required by the publisher.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Config holds publisher timing parameters.
type Config struct {
	// Interval is the tick period between publishes.
	Interval time.Duration
	// LocationTimeout bounds each per-tick fix request.
	LocationTimeout time.Duration
	// LocationMaxAge allows a cached fix this old on a tick.
	LocationMaxAge time.Duration
	// FailureWarnStreak is the consecutive-failure count that raises a
	// visible warning. The timer keeps running regardless.
	FailureWarnStreak int
}

type session struct {
	cancel context.CancelFunc
}

// Publisher owns live-tracking sessions, one active timer per identifier.
// Starting a session for an identifier that already has one replaces it;
// stopping is explicit and idempotent.
type Publisher struct {
	mu       sync.Mutex
	sessions map[string]*session

	provider Provider
	sink     Sink
	logger   Logger
	cfg      Config
}

// NewPublisher constructs a Publisher.
func NewPublisher(provider Provider, sink Sink, logger Logger, cfg Config) *Publisher {
	return &Publisher{
		sessions: make(map[string]*session),
		provider: provider,
		sink:     sink,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start begins publishing for phone. An existing session for the same phone
// is canceled first so timers never stack.
func (p *Publisher) Start(phone string) {
	p.mu.Lock()
	if old, ok := p.sessions[phone]; ok {
		old.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.sessions[phone] = &session{cancel: cancel}
	p.mu.Unlock()

	p.logger.Infof("tracking: started for %s", phone)
	go p.run(ctx, phone)
}

// Stop ends the session for phone. Stopping a phone with no active session
// is a no-op.
func (p *Publisher) Stop(phone string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.sessions[phone]; ok {
		s.cancel()
		delete(p.sessions, phone)
		p.logger.Infof("tracking: stopped for %s", phone)
	}
}

// StopAll cancels every session. Called on process teardown.
func (p *Publisher) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for phone, s := range p.sessions {
		s.cancel()
		delete(p.sessions, phone)
	}
}

// Active reports whether a session exists for phone.
func (p *Publisher) Active(phone string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.sessions[phone]
	return ok
}

func (p *Publisher) run(ctx context.Context, phone string) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.tick(ctx, phone); err != nil {
				failures++
				p.logger.Errorf("tracking: tick for %s failed: %v", phone, err)
				if failures == p.cfg.FailureWarnStreak {
					p.logger.Errorf("tracking: %d consecutive failures for %s, coverage degraded", failures, phone)
				}
				continue
			}
			failures = 0
		}
	}
}

func (p *Publisher) tick(ctx context.Context, phone string) error {
	coords, err := p.provider.CurrentPosition(ctx, true, p.cfg.LocationTimeout, p.cfg.LocationMaxAge)
	if err != nil {
		return err
	}
	loc := models.LiveLocation{
		Phone:     phone,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Timestamp: time.Now().UnixMilli(),
	}
	return p.sink.PublishLocation(ctx, loc)
}
