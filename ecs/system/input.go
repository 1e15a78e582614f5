package system

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/transition"
)

var digitKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.Key1, "1"}, {ebiten.Key2, "2"}, {ebiten.Key3, "3"},
	{ebiten.Key4, "4"}, {ebiten.Key5, "5"}, {ebiten.Key6, "6"},
	{ebiten.Key7, "7"}, {ebiten.Key8, "8"}, {ebiten.Key9, "9"},
}

// InputSystem turns keyboard, mouse and touch input into navigate events.
// It never touches the engine directly.
type InputSystem struct {
	engine *transition.Engine
	scene  func() *prefabs.SceneSpec
	picker *Picker
	swipes *SwipeRecognizer
	now    func() time.Time

	touchIDs []ebiten.TouchID
}

func NewInputSystem(engine *transition.Engine, scene func() *prefabs.SceneSpec) *InputSystem {
	return &InputSystem{
		engine: engine,
		scene:  scene,
		picker: NewPicker(),
		swipes: NewSwipeRecognizer(),
		now:    time.Now,
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	scene := i.scene()
	if scene == nil {
		return
	}
	i.picker.Sync(w)

	for _, dk := range digitKeys {
		if !inpututil.IsKeyJustPressed(dk.key) {
			continue
		}
		if sec, ok := scene.SectionForKey(dk.name); ok {
			ecs.PushNavigate(w, sec.Section(), ecs.SourceKey)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		i.pushRelative(w, scene, 1, ecs.SourceArrow)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		i.pushRelative(w, scene, -1, ecs.SourceArrow)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		i.pick(w, float64(x), float64(y))
	}

	i.updateTouches(w, scene)
}

func (i *InputSystem) updateTouches(w *ecs.World, scene *prefabs.SceneSpec) {
	now := i.now()
	i.touchIDs = inpututil.AppendJustPressedTouchIDs(i.touchIDs[:0])
	for _, id := range i.touchIDs {
		x, y := ebiten.TouchPosition(id)
		i.swipes.Begin(int(id), float64(x), float64(y), now)
	}

	i.touchIDs = inpututil.AppendJustReleasedTouchIDs(i.touchIDs[:0])
	for _, id := range i.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		gesture, sx, sy := i.swipes.End(int(id), float64(x), float64(y), now)
		switch gesture {
		case GestureTap:
			i.pick(w, sx, sy)
		case GestureSwipeLeft:
			i.pushRelative(w, scene, 1, ecs.SourceSwipe)
		case GestureSwipeRight:
			i.pushRelative(w, scene, -1, ecs.SourceSwipe)
		}
	}
}

func (i *InputSystem) pick(w *ecs.World, x, y float64) {
	if sec, ok := i.picker.Pick(x, y); ok {
		ecs.PushNavigate(w, sec, ecs.SourcePick)
	}
}

func (i *InputSystem) pushRelative(w *ecs.World, scene *prefabs.SceneSpec, delta int, source ecs.NavigateSource) {
	if next, ok := Neighbor(scene.IDs(), referenceSection(i.engine.State()), delta); ok {
		ecs.PushNavigate(w, next, source)
	}
}

// referenceSection is where relative navigation counts from: the section
// being flown to, else the one the camera rests at.
func referenceSection(s transition.State) transition.Section {
	if s.IsTransitioning && s.TargetSection != "" {
		return s.TargetSection
	}
	return s.CurrentSection
}

// Neighbor steps delta places through order with wraparound. With no
// reference section it starts from the first entry.
func Neighbor(order []transition.Section, from transition.Section, delta int) (transition.Section, bool) {
	n := len(order)
	if n == 0 {
		return "", false
	}
	idx := -1
	for i, s := range order {
		if s == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return order[0], true
	}
	next := ((idx+delta)%n + n) % n
	return order[next], true
}
