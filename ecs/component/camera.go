package component

import "github.com/go-gl/mathgl/mgl64"

// CameraPose is the render camera. The transition engine writes Position and
// Target through the ecs camera adapter; FOV and clip planes come from
// camera.yaml.
type CameraPose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FOV      float64
	Near     float64
	Far      float64
}

var CameraPoseComponent = NewComponent[CameraPose]()
