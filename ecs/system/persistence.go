package system

import (
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/transition"
	"go.uber.org/zap"
)

// SectionRecorder stores the section the camera settled on.
type SectionRecorder interface {
	Record(section transition.Section) error
}

// PersistenceSystem records every section the camera comes to rest at.
type PersistenceSystem struct {
	engine   *transition.Engine
	recorder SectionRecorder
	log      *zap.Logger

	last transition.Section
}

func NewPersistenceSystem(engine *transition.Engine, recorder SectionRecorder, log *zap.Logger) *PersistenceSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersistenceSystem{engine: engine, recorder: recorder, log: log}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p.recorder == nil {
		return
	}
	state := p.engine.State()
	if state.IsTransitioning || state.CurrentSection == "" || state.CurrentSection == p.last {
		return
	}
	p.last = state.CurrentSection
	if err := p.recorder.Record(state.CurrentSection); err != nil {
		p.log.Warn("persistence: failed to record section",
			zap.String("section", state.CurrentSection.String()),
			zap.Error(err))
	}
}
