package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/prefabs"
	"golang.org/x/image/colornames"
)

var (
	defaultMarkerColor color.Color = colornames.Magenta
	defaultGridColor   color.Color = color.NRGBA{R: 0x00, G: 0xf0, B: 0xff, A: 0x55}
)

// BuildScene replaces every marker and grid entity with ones built from spec.
// The camera is left untouched so a reload never jumps the view.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) error {
	if spec == nil {
		return fmt.Errorf("scene: nil spec")
	}
	clearScene(w)

	grid := ecs.CreateEntity(w)
	halfExtent := spec.Grid.HalfExtent
	if halfExtent <= 0 {
		halfExtent = 20
	}
	spacing := spec.Grid.Spacing
	if spacing <= 0 {
		spacing = 2
	}
	if err := ecs.Add(w, grid, component.GridComponent.Kind(), &component.Grid{
		HalfExtent: halfExtent,
		Spacing:    spacing,
		Color:      spec.Grid.Color.Or(defaultGridColor),
	}); err != nil {
		return fmt.Errorf("scene: add grid: %w", err)
	}

	for _, sec := range spec.Sections {
		if _, err := NewSectionMarker(w, sec); err != nil {
			return err
		}
	}
	return nil
}

func NewSectionMarker(w *ecs.World, sec prefabs.SectionSpec) (ecs.Entity, error) {
	marker := ecs.CreateEntity(w)
	if err := ecs.Add(w, marker, component.SectionMarkerComponent.Kind(), &component.SectionMarker{
		Section:  sec.Section(),
		Label:    sec.Label,
		Key:      sec.Key,
		Position: sec.Marker.Vec3(),
		Radius:   sec.Radius,
		Color:    sec.Color.Or(defaultMarkerColor),
	}); err != nil {
		return 0, fmt.Errorf("marker %s: add marker: %w", sec.ID, err)
	}
	if err := ecs.Add(w, marker, component.HotspotComponent.Kind(), &component.Hotspot{}); err != nil {
		return 0, fmt.Errorf("marker %s: add hotspot: %w", sec.ID, err)
	}
	return marker, nil
}

func clearScene(w *ecs.World) {
	var stale []ecs.Entity
	ecs.ForEach(w, component.SectionMarkerComponent.Kind(), func(e ecs.Entity, _ *component.SectionMarker) {
		stale = append(stale, e)
	})
	ecs.ForEach(w, component.GridComponent.Kind(), func(e ecs.Entity, _ *component.Grid) {
		stale = append(stale, e)
	})
	for _, e := range stale {
		ecs.DestroyEntity(w, e)
	}
}
