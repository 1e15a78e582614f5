package transition

import (
	"time"

	"github.com/milk9111/cyberfolio/easing"
	"go.uber.org/zap"
)

// DropReason explains why a navigation request did not start a transition.
type DropReason string

const (
	// DropNoAnchor: the target section has no registered camera anchor.
	DropNoAnchor DropReason = "no_anchor"
	// DropDuplicate: the target is already being transitioned to.
	DropDuplicate DropReason = "duplicate"
	// DropInFlight: another target is in flight; there is no queue or abort.
	DropInFlight DropReason = "in_flight"
)

// Observer receives transition lifecycle notifications on the render
// goroutine.
type Observer interface {
	TransitionStarted(id string, from, to Section, cfg Config)
	TransitionCompleted(id string, to Section, elapsed time.Duration)
	TransitionDropped(to Section, reason DropReason)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) TransitionStarted(string, Section, Section, Config) {}
func (NopObserver) TransitionCompleted(string, Section, time.Duration) {}
func (NopObserver) TransitionDropped(Section, DropReason)              {}

// Engine owns the store and driver for one scene. It is constructed by the
// scene owner and handed to the consumers that need it.
type Engine struct {
	store    *Store
	driver   *Driver
	easings  *easing.Registry
	log      *zap.Logger
	observer Observer

	startedAt float64
	pending   bool
}

type engineOptions struct {
	log       *zap.Logger
	scheduler Scheduler
	easings   *easing.Registry
	observer  Observer
}

type EngineOption func(*engineOptions)

func WithLogger(log *zap.Logger) EngineOption {
	return func(o *engineOptions) { o.log = log }
}

func WithScheduler(s Scheduler) EngineOption {
	return func(o *engineOptions) { o.scheduler = s }
}

func WithEasings(r *easing.Registry) EngineOption {
	return func(o *engineOptions) { o.easings = r }
}

func WithObserver(obs Observer) EngineOption {
	return func(o *engineOptions) { o.observer = obs }
}

func NewEngine(camera Camera, opts ...EngineOption) *Engine {
	o := engineOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.easings == nil {
		o.easings = easing.NewRegistry()
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}

	store := NewStore(o.scheduler)
	return &Engine{
		store:    store,
		driver:   NewDriver(store, camera, o.easings, o.log),
		easings:  o.easings,
		log:      o.log,
		observer: o.observer,
	}
}

// StartTransition requests a flight to `to` and arms the driver. It reports
// whether a new transition started; every rejection is logged and leaves the
// state untouched.
func (e *Engine) StartTransition(to Section, opts ...Option) bool {
	state := e.store.Snapshot()

	if _, ok := e.store.SectionCameraPosition(to); !ok {
		e.log.Warn("transition: ignoring navigation to section without camera anchor",
			zap.String("section", to.String()))
		e.observer.TransitionDropped(to, DropNoAnchor)
		return false
	}
	if state.IsTransitioning {
		if state.TargetSection == to {
			e.log.Debug("transition: already heading to section",
				zap.String("section", to.String()),
				zap.String("transition_id", state.ID))
			e.observer.TransitionDropped(to, DropDuplicate)
			return false
		}
		// No queueing and no retargeting mid-flight.
		e.log.Info("transition: dropping navigation while another transition is in flight",
			zap.String("requested", to.String()),
			zap.String("target", state.TargetSection.String()),
			zap.String("transition_id", state.ID))
		e.observer.TransitionDropped(to, DropInFlight)
		return false
	}

	e.store.StartTransition(to, opts...)
	e.driver.Arm()
	e.pending = true

	next := e.store.Snapshot()
	cfg := e.store.Config()
	e.log.Info("transition: started",
		zap.String("transition_id", next.ID),
		zap.String("from", state.CurrentSection.String()),
		zap.String("to", to.String()),
		zap.Duration("duration", cfg.Duration),
		zap.String("easing", cfg.Easing))
	e.observer.TransitionStarted(next.ID, state.CurrentSection, to, cfg)
	return true
}

// Tick drives one rendered frame at render time now (seconds).
func (e *Engine) Tick(now float64) {
	if e.pending && e.driver.Phase() == Armed {
		e.startedAt = now
		e.pending = false
	}

	before := e.store.Snapshot()
	if !e.driver.Tick(now) {
		return
	}

	elapsed := time.Duration((now - e.startedAt) * float64(time.Second))
	e.log.Info("transition: completed",
		zap.String("transition_id", before.ID),
		zap.String("section", before.TargetSection.String()),
		zap.Duration("elapsed", elapsed))
	e.observer.TransitionCompleted(before.ID, before.TargetSection, elapsed)
}

func (e *Engine) State() State {
	return e.store.Snapshot()
}

func (e *Engine) Store() *Store {
	return e.store
}

func (e *Engine) Driver() *Driver {
	return e.driver
}

func (e *Engine) Easings() *easing.Registry {
	return e.easings
}

// Close stops the loading simulation of any in-flight transition.
func (e *Engine) Close() {
	e.store.Close()
}
