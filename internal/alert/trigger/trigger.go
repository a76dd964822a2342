package trigger

import (
	"errors"
	"sync"
	"time"
)

// Detector states.
const (
	StateIdle   = "idle"
	StateArming = "arming"
	StateFired  = "fired"
)

var transitions = map[string]map[string]struct{}{
	StateIdle:   {StateArming: {}, StateFired: {}},
	StateArming: {StateIdle: {}, StateFired: {}},
	StateFired:  {StateIdle: {}},
}

// CanTransition returns whether the detector may move between two states.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

var (
	ErrAlreadyArming = errors.New("trigger: countdown already running")
	ErrNotArming     = errors.New("trigger: no countdown in progress")
	ErrCycleInFlight = errors.New("trigger: cycle already in flight")
	ErrDebounced     = errors.New("trigger: shake ignored during cooldown")
)

// FireFunc is the orchestrator entry point. The detector guarantees it is
// invoked at most once per completed arm and never while a previous cycle is
// still running.
type FireFunc func(source string)

// Fire sources.
const (
	SourceHold  = "hold"
	SourceShake = "shake"
	SourceAPI   = "api"
)

// Config holds detector timing parameters.
type Config struct {
	// HoldDuration is the press-and-hold countdown before firing.
	HoldDuration time.Duration
	// ShakeCooldown is the minimum gap between two shake fires.
	ShakeCooldown time.Duration
}

// Detector turns hold gestures, shakes and external signals into a single
// fire event. One cycle may be in flight at a time; triggers arriving while
// dispatch is still running are rejected, not queued.
type Detector struct {
	mu        sync.Mutex
	cfg       Config
	fire      FireFunc
	state     string
	armedAt   time.Time
	countdown *time.Timer
	inFlight  bool
	lastShake time.Time
}

// NewDetector constructs a detector in the idle state.
func NewDetector(cfg Config, fire FireFunc) *Detector {
	return &Detector{cfg: cfg, fire: fire, state: StateIdle}
}

// State returns the current detector state.
func (d *Detector) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Progress reports the arming countdown ratio in [0,1]. Zero when idle.
func (d *Detector) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateArming {
		return 0
	}
	ratio := float64(time.Since(d.armedAt)) / float64(d.cfg.HoldDuration)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// Arm starts the hold countdown. The countdown fires unless Cancel is called
// before it elapses.
func (d *Detector) Arm() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight {
		return ErrCycleInFlight
	}
	if d.state == StateArming {
		return ErrAlreadyArming
	}
	if !CanTransition(d.state, StateArming) {
		d.state = StateIdle
	}
	d.state = StateArming
	d.armedAt = time.Now()
	d.countdown = time.AfterFunc(d.cfg.HoldDuration, d.countdownElapsed)
	return nil
}

// Cancel discards a running countdown. Pure cancellation: no side effects,
// calling it with no countdown running is an error the UI can ignore.
func (d *Detector) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateArming {
		return ErrNotArming
	}
	d.countdown.Stop()
	d.countdown = nil
	d.state = StateIdle
	return nil
}

// Shake fires immediately, skipping the arming phase, with a cooldown so one
// physical shake cannot dispatch twice.
func (d *Detector) Shake() error {
	d.mu.Lock()
	if !d.lastShake.IsZero() && time.Since(d.lastShake) < d.cfg.ShakeCooldown {
		d.mu.Unlock()
		return ErrDebounced
	}
	d.lastShake = time.Now()
	return d.fireLocked(SourceShake)
}

// Trigger fires immediately on behalf of an external signal.
func (d *Detector) Trigger() error {
	d.mu.Lock()
	return d.fireLocked(SourceAPI)
}

func (d *Detector) countdownElapsed() {
	d.mu.Lock()
	if d.state != StateArming {
		// canceled between timer fire and lock acquisition
		d.mu.Unlock()
		return
	}
	d.countdown = nil
	_ = d.fireLocked(SourceHold)
}

// fireLocked assumes d.mu is held and releases it.
func (d *Detector) fireLocked(source string) error {
	if d.inFlight {
		d.state = StateIdle
		d.mu.Unlock()
		return ErrCycleInFlight
	}
	if !CanTransition(d.state, StateFired) {
		d.mu.Unlock()
		return ErrCycleInFlight
	}
	d.state = StateFired
	d.inFlight = true
	fire := d.fire
	d.mu.Unlock()

	go func() {
		fire(source)
	}()
	return nil
}

// CycleDone must be called by the orchestrator when the fired cycle finishes,
// successfully or not. It returns the detector to idle.
func (d *Detector) CycleDone() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight = false
	if d.state == StateFired {
		d.state = StateIdle
	}
}
