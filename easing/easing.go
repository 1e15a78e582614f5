// Package easing holds the curves that shape transition progress.
//
// Every curve maps linear progress t in [0,1] to eased progress. The
// built-ins are pure and safe to share.
package easing

// Func remaps linear progress to eased progress.
type Func func(t float64) float64

const (
	NameLinear    = "linear"
	NameEaseIn    = "easeIn"
	NameEaseOut   = "easeOut"
	NameEaseInOut = "easeInOut"
	NameBounce    = "bounce"
)

// Default is the curve used when a transition does not name one.
const Default = NameEaseInOut

func Linear(t float64) float64 {
	return t
}

// EaseIn accelerates from zero velocity.
func EaseIn(t float64) float64 {
	return t * t
}

// EaseOut decelerates to zero velocity.
func EaseOut(t float64) float64 {
	return t * (2 - t)
}

// EaseInOut accelerates until halfway, then decelerates.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

const (
	bounceN = 7.5625
	bounceD = 2.75
)

// Bounce is the four segment bounce-out curve. It stays within [0,1].
func Bounce(t float64) float64 {
	switch {
	case t < 1/bounceD:
		return bounceN * t * t
	case t < 2/bounceD:
		t -= 1.5 / bounceD
		return bounceN*t*t + 0.75
	case t < 2.5/bounceD:
		t -= 2.25 / bounceD
		return bounceN*t*t + 0.9375
	default:
		t -= 2.625 / bounceD
		return bounceN*t*t + 0.984375
	}
}
