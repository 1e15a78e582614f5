package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/transition"
)

// SectionMarker is the world-space beacon for one section.
type SectionMarker struct {
	Section  transition.Section
	Label    string
	Key      string
	Position mgl64.Vec3
	Radius   float64
	Color    color.Color
}

var SectionMarkerComponent = NewComponent[SectionMarker]()

// Hotspot is a marker's projected pick circle in screen space, refreshed
// every tick. Visible is false when the marker is behind the camera.
type Hotspot struct {
	X, Y    float64
	Radius  float64
	Depth   float64
	Visible bool
}

var HotspotComponent = NewComponent[Hotspot]()
