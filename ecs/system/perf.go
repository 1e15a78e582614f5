package system

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/transition"
)

// FrameObserver receives per-tick performance samples.
type FrameObserver interface {
	ObserveFrame(dt time.Duration, tps float64)
	ObserveState(s transition.State)
}

// PerfSystem samples tick timing and transition state for monitoring.
type PerfSystem struct {
	engine   *transition.Engine
	observer FrameObserver
	now      func() time.Time
	tps      func() float64

	last time.Time
}

func NewPerfSystem(engine *transition.Engine, observer FrameObserver) *PerfSystem {
	return &PerfSystem{
		engine:   engine,
		observer: observer,
		now:      time.Now,
		tps:      ebiten.ActualTPS,
	}
}

func (p *PerfSystem) Update(w *ecs.World) {
	if p.observer == nil {
		return
	}
	now := p.now()
	var dt time.Duration
	if !p.last.IsZero() {
		dt = now.Sub(p.last)
	}
	p.last = now

	p.observer.ObserveFrame(dt, p.tps())
	p.observer.ObserveState(p.engine.State())
}
