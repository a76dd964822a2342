package dispatch

import (
	"context"
	"sync"
	"time"

	"shesafeBack/internal/models"
)

// Logger is the minimal logger interface required by the engine.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Config holds the required configuration subset.
type Config interface {
	GetCallGap() time.Duration
}

// TextSender delivers one SMS.
type TextSender interface {
	SendText(ctx context.Context, phone, body string) error
}

// CallPlacer dials one number.
type CallPlacer interface {
	PlaceCall(ctx context.Context, phone string) error
}

// Engine fans an alert out over two independent channels: a concurrent text
// blast and a strictly sequential, time-spaced call sweep.
type Engine struct {
	texts  TextSender
	calls  CallPlacer
	logger Logger
	cfg    Config
}

// New creates an engine instance.
func New(texts TextSender, calls CallPlacer, logger Logger, cfg Config) *Engine {
	return &Engine{texts: texts, calls: calls, logger: logger, cfg: cfg}
}

// Dispatch sends body to every contact over both channels and returns one
// result per contact per channel. Both sub-phases start together; only the
// calls are ordered and spaced. Failures are isolated: one contact's failure
// never blocks another contact or the other channel.
func (e *Engine) Dispatch(ctx context.Context, contacts []models.Contact, body string) []models.DispatchResult {
	textResults := make([]models.DispatchResult, len(contacts))
	callResults := make([]models.DispatchResult, len(contacts))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.fanOutTexts(ctx, contacts, body, textResults)
	}()

	e.sweepCalls(ctx, contacts, callResults)
	wg.Wait()

	results := make([]models.DispatchResult, 0, 2*len(contacts))
	results = append(results, textResults...)
	results = append(results, callResults...)
	return results
}

// TextOnly runs just the text fan-out. Used by the mark-safe flow.
func (e *Engine) TextOnly(ctx context.Context, contacts []models.Contact, body string) []models.DispatchResult {
	results := make([]models.DispatchResult, len(contacts))
	e.fanOutTexts(ctx, contacts, body, results)
	return results
}

func (e *Engine) fanOutTexts(ctx context.Context, contacts []models.Contact, body string, results []models.DispatchResult) {
	var wg sync.WaitGroup
	for i, contact := range contacts {
		wg.Add(1)
		go func(i int, contact models.Contact) {
			defer wg.Done()
			res := models.DispatchResult{Contact: contact, Channel: models.ChannelText, Status: models.DispatchSent}
			if err := e.texts.SendText(ctx, contact.Phone, body); err != nil {
				e.logger.Errorf("dispatch: text to %s failed: %v", contact.Phone, err)
				res.Status = models.DispatchFailed
				res.Reason = err.Error()
			}
			results[i] = res
		}(i, contact)
	}
	wg.Wait()
}

// sweepCalls dials contacts in registry order with a fixed gap between
// attempts, success or failure. Sequential ringing gives each contact a
// window to answer before the next phone rings. No retry within a cycle.
func (e *Engine) sweepCalls(ctx context.Context, contacts []models.Contact, results []models.DispatchResult) {
	for i, contact := range contacts {
		res := models.DispatchResult{Contact: contact, Channel: models.ChannelCall, Status: models.DispatchSent}
		select {
		case <-ctx.Done():
			res.Status = models.DispatchSkipped
			res.Reason = ctx.Err().Error()
			results[i] = res
			continue
		default:
		}
		if err := e.calls.PlaceCall(ctx, contact.Phone); err != nil {
			e.logger.Errorf("dispatch: call to %s failed: %v", contact.Phone, err)
			res.Status = models.DispatchFailed
			res.Reason = err.Error()
		}
		results[i] = res

		if i < len(contacts)-1 {
			timer := time.NewTimer(e.cfg.GetCallGap())
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}
}

// ConfigAdapter allows a plain config struct to satisfy Config.
type ConfigAdapter struct {
	CallGap time.Duration
}

func (c ConfigAdapter) GetCallGap() time.Duration { return c.CallGap }
