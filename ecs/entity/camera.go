package entity

import (
	"fmt"

	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/prefabs"
)

// NewCamera spawns the render camera at the pose from camera.yaml.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.CameraPoseComponent.Kind(), &component.CameraPose{
		Position: spec.Position.Vec3(),
		Target:   spec.Target.Vec3(),
		FOV:      spec.FOV,
		Near:     spec.Near,
		Far:      spec.Far,
	}); err != nil {
		return 0, fmt.Errorf("camera: add pose: %w", err)
	}

	return camera, nil
}
