package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/transition"
)

// Camera adapts the camera entity's pose to transition.Camera. Reads of a
// missing entity yield the zero pose and writes are dropped.
type Camera struct {
	w *World
	e Entity
}

var _ transition.Camera = Camera{}

func NewCamera(w *World, e Entity) Camera {
	return Camera{w: w, e: e}
}

func (c Camera) Entity() Entity {
	return c.e
}

func (c Camera) pose() *component.CameraPose {
	pose, ok := Get(c.w, c.e, component.CameraPoseComponent.Kind())
	if !ok {
		return nil
	}
	return pose
}

func (c Camera) Position() mgl64.Vec3 {
	if p := c.pose(); p != nil {
		return p.Position
	}
	return mgl64.Vec3{}
}

func (c Camera) Target() mgl64.Vec3 {
	if p := c.pose(); p != nil {
		return p.Target
	}
	return mgl64.Vec3{}
}

func (c Camera) SetPosition(pos mgl64.Vec3) {
	if p := c.pose(); p != nil {
		p.Position = pos
	}
}

func (c Camera) LookAt(target mgl64.Vec3) {
	if p := c.pose(); p != nil {
		p.Target = target
	}
}
