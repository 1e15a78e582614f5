package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Projector maps world points to screen pixels for one camera pose.
type Projector struct {
	viewProj mgl64.Mat4
	width    float64
	height   float64
	focal    float64
	near     float64
}

func NewProjector(pose component.CameraPose, width, height float64) Projector {
	fov := pose.FOV
	if fov <= 0 {
		fov = 60
	}
	near, far := pose.Near, pose.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 500
	}

	up := worldUp
	if dir := pose.Target.Sub(pose.Position); dir.Len() > 0 && math.Abs(dir.Normalize().Dot(worldUp)) > 0.999 {
		// looking straight down the up axis
		up = mgl64.Vec3{0, 0, -1}
	}

	proj := mgl64.Perspective(mgl64.DegToRad(fov), width/height, near, far)
	view := mgl64.LookAtV(pose.Position, pose.Target, up)
	return Projector{
		viewProj: proj.Mul4(view),
		width:    width,
		height:   height,
		focal:    (height / 2) / math.Tan(mgl64.DegToRad(fov)/2),
		near:     near,
	}
}

// Project returns screen coordinates and view depth. ok is false for points
// at or behind the near plane.
func (p Projector) Project(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w < p.near {
		return 0, 0, w, false
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	x = (ndcX + 1) / 2 * p.width
	y = (1 - ndcY) / 2 * p.height
	return x, y, w, true
}

// ScaleAt converts a world length at view depth into pixels.
func (p Projector) ScaleAt(length, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return length * p.focal / depth
}

// ProjectionSystem refreshes marker hotspots from the current camera pose so
// picking and drawing agree on where each marker is.
type ProjectionSystem struct {
	camEntity ecs.Entity
}

func NewProjectionSystem() *ProjectionSystem {
	return &ProjectionSystem{}
}

func (ps *ProjectionSystem) Update(w *ecs.World) {
	pose, ok := cameraPose(w, &ps.camEntity)
	if !ok {
		return
	}
	proj := NewProjector(*pose, common.BaseWidth, common.BaseHeight)

	ecs.ForEach2(w, component.SectionMarkerComponent.Kind(), component.HotspotComponent.Kind(),
		func(_ ecs.Entity, m *component.SectionMarker, h *component.Hotspot) {
			x, y, depth, visible := proj.Project(m.Position)
			h.X, h.Y, h.Depth, h.Visible = x, y, depth, visible
			h.Radius = 0
			if visible {
				h.Radius = proj.ScaleAt(m.Radius, depth)
			}
		})
}

// cameraPose resolves the camera entity, caching it in cached.
func cameraPose(w *ecs.World, cached *ecs.Entity) (*component.CameraPose, bool) {
	if !ecs.IsAlive(w, *cached) {
		e, ok := ecs.First(w, component.CameraTagComponent.Kind())
		if !ok {
			return nil, false
		}
		*cached = e
	}
	return ecs.Get(w, *cached, component.CameraPoseComponent.Kind())
}
