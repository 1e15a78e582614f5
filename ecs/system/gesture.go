package system

import (
	"math"
	"time"
)

type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
)

const (
	defaultSwipeDistance = 80.0
	defaultTapSlop       = 12.0
	defaultSwipeDuration = 600 * time.Millisecond
)

type touchStart struct {
	x, y float64
	at   time.Time
}

// SwipeRecognizer classifies completed touches as taps or horizontal swipes.
type SwipeRecognizer struct {
	MinDistance float64
	TapSlop     float64
	MaxDuration time.Duration

	active map[int]touchStart
}

func NewSwipeRecognizer() *SwipeRecognizer {
	return &SwipeRecognizer{
		MinDistance: defaultSwipeDistance,
		TapSlop:     defaultTapSlop,
		MaxDuration: defaultSwipeDuration,
		active:      map[int]touchStart{},
	}
}

func (r *SwipeRecognizer) Begin(id int, x, y float64, at time.Time) {
	r.active[id] = touchStart{x: x, y: y, at: at}
}

// End finishes touch id at (x, y). Taps report the starting point.
func (r *SwipeRecognizer) End(id int, x, y float64, at time.Time) (Gesture, float64, float64) {
	start, ok := r.active[id]
	if !ok {
		return GestureNone, 0, 0
	}
	delete(r.active, id)

	dx, dy := x-start.x, y-start.y
	if math.Hypot(dx, dy) <= r.TapSlop {
		return GestureTap, start.x, start.y
	}
	if at.Sub(start.at) > r.MaxDuration {
		return GestureNone, 0, 0
	}
	if math.Abs(dx) < r.MinDistance || math.Abs(dx) < math.Abs(dy) {
		return GestureNone, 0, 0
	}
	if dx < 0 {
		return GestureSwipeLeft, start.x, start.y
	}
	return GestureSwipeRight, start.x, start.y
}

// Active reports how many touches are being tracked.
func (r *SwipeRecognizer) Active() int {
	return len(r.active)
}
