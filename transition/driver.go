package transition

import (
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/easing"
	"go.uber.org/zap"
)

// Phase is the driver's state.
type Phase int

const (
	// Idle: no transition; Tick does nothing.
	Idle Phase = iota
	// Armed: a transition was requested; the next Tick captures poses.
	Armed
	// Running: per-frame interpolation toward the captured target.
	Running
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Driver turns render-clock time into eased camera motion for one transition
// at a time.
type Driver struct {
	store   *Store
	camera  Camera
	easings *easing.Registry
	log     *zap.Logger

	phase Phase

	// captured on arm, cleared on completion
	startTime float64
	from      Anchor
	to        Anchor
	config    Config
	ease      easing.Func
}

func NewDriver(store *Store, camera Camera, easings *easing.Registry, log *zap.Logger) *Driver {
	if easings == nil {
		easings = easing.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{store: store, camera: camera, easings: easings, log: log}
}

func (d *Driver) Phase() Phase {
	return d.phase
}

// Arm marks a freshly started transition for capture on the next Tick. It is
// ignored unless the store has a transition in flight and the driver is idle,
// so a running transition is never re-armed.
func (d *Driver) Arm() {
	if d.phase != Idle {
		return
	}
	if !d.store.Snapshot().IsTransitioning {
		return
	}
	d.phase = Armed
}

// Tick advances the driver to render time now (seconds). It reports whether
// the transition completed on this frame.
func (d *Driver) Tick(now float64) bool {
	switch d.phase {
	case Idle:
		return false
	case Armed:
		if !d.capture(now) {
			d.reset()
			return false
		}
		d.phase = Running
	}
	return d.step(now)
}

func (d *Driver) capture(now float64) bool {
	state := d.store.Snapshot()
	if !state.IsTransitioning || state.TargetSection == "" {
		return false
	}
	target, ok := d.store.SectionCameraPosition(state.TargetSection)
	if !ok {
		d.log.Warn("transition: no camera anchor for target, cannot arm",
			zap.String("section", state.TargetSection.String()),
			zap.String("transition_id", state.ID))
		return false
	}

	cfg := d.store.Config()
	ease, ok := d.easings.Lookup(cfg.Easing)
	if !ok {
		d.log.Warn("transition: unknown easing, using default",
			zap.String("easing", cfg.Easing),
			zap.String("default", easing.Default))
		ease = easing.EaseInOut
	}

	d.startTime = now
	d.from = poseOf(d.camera)
	d.to = target
	d.config = cfg
	d.ease = ease

	d.log.Debug("transition: armed",
		zap.String("transition_id", state.ID),
		zap.String("target", state.TargetSection.String()),
		zap.Duration("duration", cfg.Duration),
		zap.String("easing", cfg.Easing))
	return true
}

func (d *Driver) step(now float64) bool {
	raw := 1.0
	if dur := d.config.Duration.Seconds(); dur > 0 {
		raw = common.Clamp01((now - d.startTime) / dur)
	}
	eased := d.ease(raw)

	pose := d.from.Lerp(d.to, eased)
	if raw >= 1 {
		pose = d.to
	}
	d.camera.SetPosition(pose.Position)
	d.camera.LookAt(pose.Target)

	d.store.UpdateTransitionProgress(common.Clamp01(eased))
	if d.config.FadeOverlay {
		d.store.SetFadeOpacity(fadeProfile(raw) * d.config.FadeOverlayOpacity)
	}

	if raw < 1 {
		return false
	}
	d.store.CompleteTransition()
	d.reset()
	return true
}

func (d *Driver) reset() {
	d.phase = Idle
	d.startTime = 0
	d.from = Anchor{}
	d.to = Anchor{}
	d.config = Config{}
	d.ease = nil
}

// fadeProfile rises 0->1 over the first half of raw progress and falls back
// to 0 over the second half.
func fadeProfile(raw float64) float64 {
	if raw < 0.5 {
		return raw * 2
	}
	return (1 - raw) * 2
}
