package alert

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"shesafeBack/internal/alert/compose"
	"shesafeBack/internal/alert/dispatch"
	"shesafeBack/internal/alert/location"
	"shesafeBack/internal/alert/permission"
	"shesafeBack/internal/alert/ride"
	"shesafeBack/internal/alert/tracking"
	"shesafeBack/internal/alert/trigger"
	"shesafeBack/internal/config"
	"shesafeBack/internal/models"
)

// Orchestrator runs the trigger cycle: permission gate, concurrent location
// and trip-context acquisition, composition, two-channel dispatch and live
// tracking start. It owns one trigger detector per user.
type Orchestrator struct {
	gate      *permission.Gate
	acquirer  *location.Acquirer
	extractor *ride.Extractor
	engine    *dispatch.Engine
	publisher *tracking.Publisher

	profile  ProfileSource
	contacts ContactSource
	results  ResultPublisher
	notifier Notifier
	auditor  Auditor
	logger   Logger
	cfg      config.AlertConfig

	mu        sync.Mutex
	detectors map[int]*trigger.Detector
}

func newOrchestrator(deps *Deps, gate *permission.Gate, acquirer *location.Acquirer, extractor *ride.Extractor, engine *dispatch.Engine, publisher *tracking.Publisher) *Orchestrator {
	return &Orchestrator{
		gate:      gate,
		acquirer:  acquirer,
		extractor: extractor,
		engine:    engine,
		publisher: publisher,
		profile:   deps.Profile,
		contacts:  deps.Contacts,
		results:   deps.Results,
		notifier:  deps.Notifier,
		auditor:   deps.Auditor,
		logger:    deps.Logger,
		cfg:       deps.Config,
		detectors: make(map[int]*trigger.Detector),
	}
}

func (o *Orchestrator) detector(userID int) *trigger.Detector {
	o.mu.Lock()
	defer o.mu.Unlock()
	d, ok := o.detectors[userID]
	if !ok {
		d = trigger.NewDetector(trigger.Config{
			HoldDuration:  o.cfg.HoldDuration,
			ShakeCooldown: o.cfg.ShakeCooldown,
		}, o.fireFunc(userID))
		o.detectors[userID] = d
	}
	return d
}

func (o *Orchestrator) fireFunc(userID int) trigger.FireFunc {
	return func(source string) {
		defer o.detector(userID).CycleDone()
		result := o.RunCycle(context.Background(), userID, source)
		o.publishResult(userID, result)
	}
}

// Arm starts the hold-to-trigger countdown for a user.
func (o *Orchestrator) Arm(userID int) error {
	err := o.detector(userID).Arm()
	if errors.Is(err, trigger.ErrCycleInFlight) {
		return models.ErrCycleInFlight
	}
	return err
}

// CancelArming discards a running countdown before it fires.
func (o *Orchestrator) CancelArming(userID int) error {
	err := o.detector(userID).Cancel()
	if errors.Is(err, trigger.ErrNotArming) {
		return models.ErrNotArming
	}
	return err
}

// Progress reports the arming countdown ratio for UI display.
func (o *Orchestrator) Progress(userID int) float64 {
	return o.detector(userID).Progress()
}

// Shake fires immediately from a shake gesture, debounced.
func (o *Orchestrator) Shake(userID int) error {
	err := o.detector(userID).Shake()
	if errors.Is(err, trigger.ErrCycleInFlight) {
		return models.ErrCycleInFlight
	}
	return err
}

// Trigger fires immediately on behalf of an external signal.
func (o *Orchestrator) Trigger(userID int) error {
	err := o.detector(userID).Trigger()
	if errors.Is(err, trigger.ErrCycleInFlight) {
		return models.ErrCycleInFlight
	}
	return err
}

// RunCycle executes one full trigger cycle. Once started it runs to
// completion; only a permission denial aborts it, before any side effect.
func (o *Orchestrator) RunCycle(ctx context.Context, userID int, source string) models.CycleResult {
	result := models.CycleResult{
		CycleID:   uuid.NewString(),
		UserID:    userID,
		StartedAt: time.Now(),
		Trip:      models.EmptyTripContext(),
	}
	o.logger.Infof("alert: cycle %s fired by %s for user %d", result.CycleID, source, userID)

	if err := o.gate.Check(ctx); err != nil {
		var denied *permission.DeniedError
		if errors.As(err, &denied) {
			result.Denied = string(denied.Kind)
		} else {
			result.Denied = err.Error()
		}
		result.FinishedAt = time.Now()
		o.logger.Errorf("alert: cycle %s aborted: %v", result.CycleID, err)
		return result
	}

	// Location and trip context are independent; acquire them concurrently.
	var (
		wg     sync.WaitGroup
		coords models.Coordinates
		hasLoc bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		coords, hasLoc = o.acquirer.Acquire(ctx)
	}()
	go func() {
		defer wg.Done()
		result.Trip = o.extractor.Extract(ctx)
	}()
	wg.Wait()

	phone := o.resolveIdentifier(ctx, userID)
	pref := o.resolvePreference(ctx, userID)

	result.Message = compose.Alert(compose.Input{
		Preference:   pref,
		Coordinates:  coords,
		HasLocation:  hasLoc,
		Trip:         result.Trip,
		Phone:        phone,
		TrackingBase: o.cfg.TrackingLinkBaseURL,
	})

	contacts := o.loadContacts(ctx, userID)
	result.Results = o.engine.Dispatch(ctx, contacts, result.Message)
	result.FinishedAt = time.Now()

	if phone != "" {
		o.publisher.Start(phone)
	}
	return result
}

// MarkSafe sends the short safe message over the text channel only and stops
// live tracking for the user.
func (o *Orchestrator) MarkSafe(ctx context.Context, userID int) (models.CycleResult, error) {
	result := models.CycleResult{
		CycleID:   uuid.NewString(),
		UserID:    userID,
		StartedAt: time.Now(),
		Trip:      models.EmptyTripContext(),
	}
	phone := o.resolveIdentifier(ctx, userID)
	pref := o.resolvePreference(ctx, userID)

	result.Message = compose.Safe(compose.Input{
		Preference:   pref,
		Phone:        phone,
		TrackingBase: o.cfg.TrackingLinkBaseURL,
	})
	contacts := o.loadContacts(ctx, userID)
	if len(contacts) == 0 {
		return result, models.ErrNoContacts
	}
	result.Results = o.engine.TextOnly(ctx, contacts, result.Message)
	result.FinishedAt = time.Now()

	if phone != "" {
		o.publisher.Stop(phone)
	}
	o.publishResult(userID, result)
	return result, nil
}

// RideDetails runs the read-only preview: permission for reading messages,
// then extraction plus a single fix. Nothing is dispatched.
func (o *Orchestrator) RideDetails(ctx context.Context, userID int) (models.TripContext, models.Coordinates, bool, error) {
	if err := o.gate.CheckRead(ctx); err != nil {
		return models.EmptyTripContext(), models.Coordinates{}, false, err
	}
	trip := o.extractor.Extract(ctx)
	coords, ok := o.acquirer.Acquire(ctx)
	return trip, coords, ok, nil
}

// StartTracking begins live publishing for the user's identifier.
func (o *Orchestrator) StartTracking(ctx context.Context, userID int) (string, error) {
	phone, err := o.profile.Identifier(ctx, userID)
	if err != nil {
		return "", err
	}
	o.publisher.Start(phone)
	return phone, nil
}

// StopTracking ends live publishing for the user's identifier. Idempotent.
func (o *Orchestrator) StopTracking(ctx context.Context, userID int) error {
	phone, err := o.profile.Identifier(ctx, userID)
	if err != nil {
		return err
	}
	o.publisher.Stop(phone)
	return nil
}

// TrackingActive reports whether a session exists for the identifier.
func (o *Orchestrator) TrackingActive(phone string) bool {
	return o.publisher.Active(phone)
}

// Shutdown cancels every live-tracking session.
func (o *Orchestrator) Shutdown() {
	o.publisher.StopAll()
}

func (o *Orchestrator) resolveIdentifier(ctx context.Context, userID int) string {
	phone, err := o.profile.Identifier(ctx, userID)
	if err != nil {
		o.logger.Errorf("alert: identifier for user %d unavailable: %v", userID, err)
		return ""
	}
	return phone
}

func (o *Orchestrator) resolvePreference(ctx context.Context, userID int) models.SafetyPreference {
	pref, err := o.profile.Preference(ctx, userID)
	if err != nil {
		o.logger.Errorf("alert: preference for user %d unavailable: %v", userID, err)
		return models.SafetyPreference{Mode: models.SafetyModeNone}
	}
	return pref
}

func (o *Orchestrator) loadContacts(ctx context.Context, userID int) []models.Contact {
	contacts, err := o.contacts.List(ctx, userID)
	if err != nil {
		o.logger.Errorf("alert: contacts for user %d unavailable: %v", userID, err)
		return nil
	}
	return models.ValidContacts(contacts)
}

func (o *Orchestrator) publishResult(userID int, result models.CycleResult) {
	if o.results != nil {
		o.results.PublishResult(result)
	}
	if o.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := o.notifier.PushCycleResult(ctx, userID, result); err != nil {
			o.logger.Errorf("alert: push result for user %d failed: %v", userID, err)
		}
		cancel()
	}
	if o.auditor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := o.auditor.StoreCycle(ctx, result); err != nil {
			o.logger.Errorf("alert: audit store for cycle %s failed: %v", result.CycleID, err)
		}
		cancel()
	}
}
