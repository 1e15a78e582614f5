package common

import "github.com/go-gl/mathgl/mgl64"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Lerp blends a toward b. The endpoints are exact: t=0 is a, t=1 is b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
