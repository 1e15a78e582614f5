package transition

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/common"
)

// Camera is the render camera the driver writes to every frame.
type Camera interface {
	Position() mgl64.Vec3
	Target() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	LookAt(p mgl64.Vec3)
}

// Clock reports monotonically increasing seconds since the scene started.
type Clock interface {
	Now() float64
}

// WallClock is a Clock backed by the monotonic wall clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// Anchor is the resting camera pose for a section.
type Anchor struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	// Rotation is carried for consumers that orient by euler angles; the
	// driver positions the camera by Position and Target only.
	Rotation *mgl64.Vec3
}

// Lerp interpolates position and look-at toward b. t=0 yields a and t=1
// yields b exactly.
func (a Anchor) Lerp(b Anchor, t float64) Anchor {
	return Anchor{
		Position: common.LerpVec3(a.Position, b.Position, t),
		Target:   common.LerpVec3(a.Target, b.Target, t),
	}
}

// poseOf clones the camera's current pose.
func poseOf(c Camera) Anchor {
	return Anchor{Position: c.Position(), Target: c.Target()}
}
