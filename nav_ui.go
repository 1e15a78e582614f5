package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/transition"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor   = color.NRGBA{R: 0x05, G: 0x01, B: 0x0d, A: 200}
	pressedColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
)

// navUI is the section button bar and the loading indicator drawn over the
// scene.
type navUI struct {
	ui   *ebitenui.UI
	face ebtext.Face
	push func(transition.Section)

	buttons *widget.Container
	loading *widget.Container
	title   *widget.Text
	detail  *widget.Text
	shown   bool
}

func newNavUI(scene *prefabs.SceneSpec, push func(transition.Section)) *navUI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	n := &navUI{face: face, push: push}

	n.buttons = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	n.setSections(scene)

	n.title = widget.NewText(
		widget.TextOpts.Text("", &n.face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	n.detail = widget.NewText(
		widget.TextOpts.Text("", &n.face, colornames.Cyan),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	n.loading = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	n.loading.AddChild(n.title)
	n.loading.AddChild(n.detail)
	n.loading.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(n.buttons)
	root.AddChild(n.loading)

	n.ui = &ebitenui.UI{Container: root}
	return n
}

// setSections rebuilds the button bar, one button per section in scene
// order.
func (n *navUI) setSections(scene *prefabs.SceneSpec) {
	n.buttons.RemoveChildren()
	if scene == nil {
		return
	}
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	for _, sec := range scene.Sections {
		id := sec.Section()
		idle := imageui.NewNineSliceColor(dim(sec.Color.Or(colornames.Magenta)))
		n.buttons.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Pressed: imageui.NewNineSliceColor(pressedColor)}),
			widget.ButtonOpts.Text(buttonLabel(sec), &n.face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 30)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				n.push(id)
			}),
		))
	}
}

func (n *navUI) Update(state transition.State) {
	if state.IsTransitioning {
		n.title.Label, n.detail.Label = loadingText(state)
		if !n.shown {
			n.loading.GetWidget().Visibility = widget.Visibility_Show
			n.shown = true
		}
	} else if n.shown {
		n.loading.GetWidget().Visibility = widget.Visibility_Hide
		n.shown = false
	}
	n.ui.Update()
}

func (n *navUI) Draw(screen *ebiten.Image) {
	n.ui.Draw(screen)
}

// loadingText formats the indicator lines for an in-flight transition.
func loadingText(state transition.State) (title, detail string) {
	title = "LOADING " + state.TargetSection.Label()
	detail = fmt.Sprintf("assets %3d%%   flight %3d%%", percent(state.LoadingProgress), percent(state.Progress))
	return title, detail
}

func percent(v float64) int {
	return int(math.Round(common.Clamp01(v) * 100))
}

func buttonLabel(sec prefabs.SectionSpec) string {
	if sec.Key == "" {
		return sec.Label
	}
	return fmt.Sprintf("[%s] %s", sec.Key, sec.Label)
}

// dim darkens c to a translucent button fill.
func dim(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.NRGBA{R: n.R / 3, G: n.G / 3, B: n.B / 3, A: 0xd0}
}
