package system

import (
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/transition"
	"go.uber.org/zap"
)

// NavigationSystem is the only caller of Engine.StartTransition. It applies
// the scene defaults and per-section overrides to every request.
type NavigationSystem struct {
	engine *transition.Engine
	scene  func() *prefabs.SceneSpec
	log    *zap.Logger
}

func NewNavigationSystem(engine *transition.Engine, scene func() *prefabs.SceneSpec, log *zap.Logger) *NavigationSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &NavigationSystem{engine: engine, scene: scene, log: log}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().DrainType(ecs.EventNavigate) {
		nav, ok := evt.Data.(ecs.NavigateEvent)
		if !ok {
			continue
		}
		ns.navigate(nav)
	}
}

func (ns *NavigationSystem) navigate(nav ecs.NavigateEvent) {
	var opts []transition.Option
	if scene := ns.scene(); scene != nil {
		opts = scene.TransitionOptions(nav.Section)
	}
	started := ns.engine.StartTransition(nav.Section, opts...)
	ns.log.Debug("navigation: request",
		zap.String("section", nav.Section.String()),
		zap.String("source", string(nav.Source)),
		zap.Bool("started", started))
}
