package alert

import (
	"shesafeBack/internal/alert/dispatch"
	"shesafeBack/internal/alert/location"
	"shesafeBack/internal/alert/permission"
	"shesafeBack/internal/alert/ride"
	"shesafeBack/internal/alert/tracking"
)

type moduleState struct {
	gate         *permission.Gate
	acquirer     *location.Acquirer
	extractor    *ride.Extractor
	engine       *dispatch.Engine
	publisher    *tracking.Publisher
	orchestrator *Orchestrator
}

func ensureModule(deps *Deps) (*moduleState, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if deps.module != nil {
		return deps.module, nil
	}

	gate := permission.NewGate(deps.Bridge, deps.Logger)
	acquirer := location.NewAcquirer(deps.Bridge, deps.Logger, location.Config{
		Timeout: deps.Config.LocationTimeout,
		MaxAge:  deps.Config.LocationMaxAge,
	})
	extractor := ride.NewExtractor(deps.Bridge, deps.Logger, deps.Config.InboxMaxCount)

	texts := dispatch.TextSender(deps.Bridge)
	if deps.Texts != nil {
		texts = deps.Texts
	}
	engine := dispatch.New(texts, deps.Bridge, deps.Logger, dispatch.ConfigAdapter{CallGap: deps.Config.CallGap})

	publisher := tracking.NewPublisher(deps.Bridge, deps.Sink, deps.Logger, tracking.Config{
		Interval:          deps.Config.TrackingInterval,
		LocationTimeout:   deps.Config.LocationTimeout,
		LocationMaxAge:    deps.Config.LocationMaxAge,
		FailureWarnStreak: deps.Config.FailureWarnStreak,
	})

	orchestrator := newOrchestrator(deps, gate, acquirer, extractor, engine, publisher)

	deps.module = &moduleState{
		gate:         gate,
		acquirer:     acquirer,
		extractor:    extractor,
		engine:       engine,
		publisher:    publisher,
		orchestrator: orchestrator,
	}
	return deps.module, nil
}

// EnsureOrchestrator wires the module once and returns its orchestrator.
func EnsureOrchestrator(deps *Deps) (*Orchestrator, error) {
	module, err := ensureModule(deps)
	if err != nil {
		return nil, err
	}
	return module.orchestrator, nil
}
