package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/transition"
)

// Picker hit-tests screen points against marker hotspots. Hotspots are
// mirrored into a chipmunk space as static circles so overlapping markers
// resolve to the nearest shape.
type Picker struct {
	space  *cp.Space
	shapes []*cp.Shape
}

func NewPicker() *Picker {
	return &Picker{space: cp.NewSpace()}
}

// Sync replaces the pick shapes with the visible hotspots in w.
func (p *Picker) Sync(w *ecs.World) {
	for _, shape := range p.shapes {
		p.space.RemoveShape(shape)
	}
	p.shapes = p.shapes[:0]

	ecs.ForEach2(w, component.SectionMarkerComponent.Kind(), component.HotspotComponent.Kind(),
		func(_ ecs.Entity, m *component.SectionMarker, h *component.Hotspot) {
			if !h.Visible || h.Radius <= 0 {
				return
			}
			p.add(m.Section, h.X, h.Y, h.Radius)
		})
}

func (p *Picker) add(section transition.Section, x, y, radius float64) {
	shape := cp.NewCircle(p.space.StaticBody, radius, cp.Vector{X: x, Y: y})
	shape.UserData = section
	p.space.AddShape(shape)
	p.shapes = append(p.shapes, shape)
}

// Pick returns the section whose hotspot contains (x, y), nearest first.
func (p *Picker) Pick(x, y float64) (transition.Section, bool) {
	info := p.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return "", false
	}
	section, ok := info.Shape.UserData.(transition.Section)
	return section, ok
}
