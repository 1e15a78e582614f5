package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/transition"
	"golang.org/x/image/font/basicfont"
)

var defaultBackground = color.NRGBA{R: 0x05, G: 0x01, B: 0x0d, A: 0xff}

// RenderSystem draws the neon grid, the section beacons and the fade
// overlay. It has no per-tick work.
type RenderSystem struct {
	engine     *transition.Engine
	background color.Color
	face       ebtext.Face
	camEntity  ecs.Entity

	overlayHex   string
	overlayColor color.NRGBA
}

func NewRenderSystem(engine *transition.Engine, background color.Color) *RenderSystem {
	if background == nil {
		background = defaultBackground
	}
	return &RenderSystem{
		engine:     engine,
		background: background,
		face:       ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) SetBackground(c color.Color) {
	if c != nil {
		r.background = c
	}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(r.background)

	if pose, ok := cameraPose(w, &r.camEntity); ok {
		proj := NewProjector(*pose, common.BaseWidth, common.BaseHeight)
		ecs.ForEach(w, component.GridComponent.Kind(), func(_ ecs.Entity, g *component.Grid) {
			drawGrid(screen, proj, g)
		})
		ecs.ForEach2(w, component.SectionMarkerComponent.Kind(), component.HotspotComponent.Kind(),
			func(_ ecs.Entity, m *component.SectionMarker, h *component.Hotspot) {
				r.drawMarker(screen, m, h)
			})
	}

	r.drawFade(screen)
}

func drawGrid(screen *ebiten.Image, proj Projector, g *component.Grid) {
	extent := float64(g.HalfExtent) * g.Spacing
	for i := -g.HalfExtent; i <= g.HalfExtent; i++ {
		offset := float64(i) * g.Spacing
		drawWorldLine(screen, proj, mgl64.Vec3{offset, 0, -extent}, mgl64.Vec3{offset, 0, extent}, g.HalfExtent*2, g.Color)
		drawWorldLine(screen, proj, mgl64.Vec3{-extent, 0, offset}, mgl64.Vec3{extent, 0, offset}, g.HalfExtent*2, g.Color)
	}
}

// drawWorldLine draws a segmented line, skipping pieces behind the camera.
func drawWorldLine(screen *ebiten.Image, proj Projector, a, b mgl64.Vec3, segments int, clr color.Color) {
	if segments < 1 {
		segments = 1
	}
	px, py, _, prevOK := proj.Project(a)
	for s := 1; s <= segments; s++ {
		p := common.LerpVec3(a, b, float64(s)/float64(segments))
		x, y, _, ok := proj.Project(p)
		if ok && prevOK {
			vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1, clr, true)
		}
		px, py, prevOK = x, y, ok
	}
}

func (r *RenderSystem) drawMarker(screen *ebiten.Image, m *component.SectionMarker, h *component.Hotspot) {
	if !h.Visible || h.Radius <= 0 {
		return
	}
	x, y, radius := float32(h.X), float32(h.Y), float32(h.Radius)
	vector.StrokeCircle(screen, x, y, radius, 2, m.Color, true)
	vector.DrawFilledCircle(screen, x, y, radius*0.35, m.Color, true)

	label := m.Label
	if m.Key != "" {
		label = m.Key + " " + label
	}
	tw, _ := ebtext.Measure(label, r.face, 0)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(h.X-tw/2, h.Y-h.Radius-18)
	op.ColorScale.ScaleWithColor(m.Color)
	ebtext.Draw(screen, label, r.face, op)
}

func (r *RenderSystem) drawFade(screen *ebiten.Image) {
	state := r.engine.State()
	if state.FadeOpacity <= 0 {
		return
	}
	hex := r.engine.Store().Config().FadeOverlayColor
	if hex != r.overlayHex {
		r.overlayHex = hex
		r.overlayColor = parseOverlayColor(hex)
	}
	vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, OverlayColor(r.overlayColor, state.FadeOpacity), false)
}

func parseOverlayColor(hex string) color.NRGBA {
	c, err := prefabs.ParseColor(hex)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// OverlayColor applies the fade opacity to base's own alpha.
func OverlayColor(base color.NRGBA, opacity float64) color.NRGBA {
	a := float64(base.A) * common.Clamp01(opacity)
	base.A = uint8(a + 0.5)
	return base
}
