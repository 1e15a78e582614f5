package component

import "image/color"

// Grid is the neon ground plane drawn at y=0.
type Grid struct {
	HalfExtent int
	Spacing    float64
	Color      color.Color
}

var GridComponent = NewComponent[Grid]()
