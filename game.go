package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/easing"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/ecs/entity"
	"github.com/milk9111/cyberfolio/ecs/system"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/save"
	"github.com/milk9111/cyberfolio/telemetry"
	"github.com/milk9111/cyberfolio/transition"
	"go.uber.org/zap"
)

type gameOptions struct {
	log     *zap.Logger
	debug   bool
	section transition.Section
	metrics *telemetry.Metrics
	saves   *save.Store
	changes <-chan prefabs.Change
}

type Game struct {
	log   *zap.Logger
	debug bool

	world  *ecs.World
	camera ecs.Entity
	engine *transition.Engine
	sched  *ecs.Scheduler
	render *system.RenderSystem

	// scene is swapped on hot reload; systems read it through sceneFn.
	scene   *prefabs.SceneSpec
	changes <-chan prefabs.Change

	scriptErrs map[string]bool

	ui *navUI
}

// NewGame builds the scene world, the transition engine and the overlay UI,
// then queues the boot flight to the start section.
func NewGame(opts gameOptions) (*Game, error) {
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	g.ui = newNavUI(g.scene, func(s transition.Section) {
		ecs.PushNavigate(g.world, s, ecs.SourceButton)
	})
	return g, nil
}

// newGame is NewGame without the ebitenui overlay.
func newGame(opts gameOptions) (*Game, error) {
	if opts.log == nil {
		opts.log = zap.NewNop()
	}
	g := &Game{
		log:        opts.log,
		debug:      opts.debug,
		world:      ecs.NewWorld(),
		changes:    opts.changes,
		scriptErrs: map[string]bool{},
	}

	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load scene: %w", err)
	}
	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, fmt.Errorf("game: load camera: %w", err)
	}
	g.scene = scene

	easings := easing.NewRegistry()
	names, err := prefabs.LoadEasings(easings, g.scriptError)
	if err != nil {
		g.log.Warn("game: some easing scripts failed to load", zap.Error(err))
	}
	g.log.Debug("game: scripted easings registered", zap.Strings("names", names))

	g.camera, err = entity.NewCamera(g.world, camSpec)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if err := entity.BuildScene(g.world, scene); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	engineOpts := []transition.EngineOption{
		transition.WithLogger(g.log),
		transition.WithEasings(easings),
	}
	if opts.metrics != nil {
		engineOpts = append(engineOpts, transition.WithObserver(opts.metrics))
	}
	g.engine = transition.NewEngine(ecs.NewCamera(g.world, g.camera), engineOpts...)
	scene.Register(g.engine.Store())

	var recorder system.SectionRecorder
	var saved transition.Section
	if opts.saves != nil {
		recorder = opts.saves
		saved, _ = opts.saves.LastSection()
	}
	var frames system.FrameObserver
	if opts.metrics != nil {
		frames = opts.metrics
	}

	g.render = system.NewRenderSystem(g.engine, scene.Background.Or(nil))
	sceneFn := func() *prefabs.SceneSpec { return g.scene }

	g.sched = ecs.NewScheduler(
		system.NewInputSystem(g.engine, sceneFn),
		system.NewNavigationSystem(g.engine, sceneFn, g.log),
		system.NewTransitionSystem(g.engine, nil),
		system.NewProjectionSystem(),
		system.NewPersistenceSystem(g.engine, recorder, g.log),
		system.NewPerfSystem(g.engine, frames),
	)
	if g.debug {
		g.sched.Add(system.NewClipboardSystem(g.log))
	}
	g.sched.Add(g.render)

	start := bootSection(scene, opts.section, saved, g.log)
	ecs.PushNavigate(g.world, start, ecs.SourceBoot)
	g.log.Info("game: booting", zap.String("section", start.String()))

	return g, nil
}

// bootSection picks the first known section among the requested one, the
// saved one and the scene's initial section.
func bootSection(scene *prefabs.SceneSpec, requested, saved transition.Section, log *zap.Logger) transition.Section {
	for _, candidate := range []transition.Section{requested, saved} {
		if candidate == "" {
			continue
		}
		if _, ok := scene.Section(candidate); ok {
			return candidate
		}
		log.Warn("game: unknown start section, falling back",
			zap.String("section", candidate.String()))
	}
	return transition.Section(scene.InitialSection)
}

func (g *Game) Update() error {
	g.pollChanges()
	if g.ui != nil {
		g.ui.Update(g.engine.State())
	}
	g.sched.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sched.Draw(g.world, screen)
	if g.ui != nil {
		g.ui.Draw(screen)
	}

	if g.debug {
		s := g.engine.State()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.2f    FPS: %.2f    section: %s    phase: %s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), s.CurrentSection, g.engine.Driver().Phase()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Engine() *transition.Engine {
	return g.engine
}

func (g *Game) Close() {
	g.engine.Close()
}

// pollChanges applies every pending prefab edit without blocking the frame.
func (g *Game) pollChanges() {
	for {
		select {
		case change, ok := <-g.changes:
			if !ok {
				g.changes = nil
				return
			}
			g.applyChange(change)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	g.log.Debug("game: prefab changed",
		zap.String("path", change.Path),
		zap.Stringer("kind", change.Kind))

	switch change.Kind {
	case prefabs.ChangeScene:
		g.reloadScene()
	case prefabs.ChangeCamera:
		g.reloadCamera()
	case prefabs.ChangeScript:
		g.reloadScripts()
	}
}

// reloadScene rebuilds markers and re-registers anchors. A broken file keeps
// the previous scene. Sections removed from the file keep their anchors
// until restart.
func (g *Game) reloadScene() {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		g.log.Warn("game: scene reload failed, keeping previous", zap.Error(err))
		return
	}
	if err := entity.BuildScene(g.world, scene); err != nil {
		g.log.Warn("game: scene rebuild failed", zap.Error(err))
		return
	}
	scene.Register(g.engine.Store())
	g.scene = scene
	g.render.SetBackground(scene.Background.Or(nil))
	if g.ui != nil {
		g.ui.setSections(scene)
	}
	g.log.Info("game: scene reloaded", zap.Int("sections", len(scene.Sections)))
}

// reloadCamera applies lens settings only; the pose belongs to the driver.
func (g *Game) reloadCamera() {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		g.log.Warn("game: camera reload failed", zap.Error(err))
		return
	}
	pose, ok := ecs.Get(g.world, g.camera, component.CameraPoseComponent.Kind())
	if !ok {
		return
	}
	pose.FOV, pose.Near, pose.Far = spec.FOV, spec.Near, spec.Far
	g.log.Info("game: camera lens reloaded", zap.Float64("fov", spec.FOV))
}

func (g *Game) reloadScripts() {
	names, err := prefabs.LoadEasings(g.engine.Easings(), g.scriptError)
	if err != nil {
		g.log.Warn("game: easing script reload failed", zap.Error(err))
	}
	clear(g.scriptErrs)
	g.log.Info("game: easing scripts reloaded", zap.Strings("names", names))
}

// scriptError reports each distinct evaluation failure once; a broken curve
// would otherwise log on every frame of a flight.
func (g *Game) scriptError(err error) {
	msg := err.Error()
	if g.scriptErrs[msg] {
		return
	}
	g.scriptErrs[msg] = true
	g.log.Warn("game: easing script failed, sample fell back to linear", zap.Error(err))
}
