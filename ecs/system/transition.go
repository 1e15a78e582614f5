package system

import (
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/transition"
)

// TransitionSystem drives the engine once per tick from the render clock.
type TransitionSystem struct {
	engine *transition.Engine
	clock  transition.Clock
}

func NewTransitionSystem(engine *transition.Engine, clock transition.Clock) *TransitionSystem {
	if clock == nil {
		clock = transition.NewWallClock()
	}
	return &TransitionSystem{engine: engine, clock: clock}
}

func (ts *TransitionSystem) Update(w *ecs.World) {
	ts.engine.Tick(ts.clock.Now())
}
