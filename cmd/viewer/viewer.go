package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/zonegen/common"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/ecs/system"
	"github.com/milk9111/zonegen/levels"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const zoomStep = 1.1

type Viewer struct {
	session *session

	scheduler *ecs.Scheduler
	camera    *system.CameraSystem
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	panel     *controlPanel

	watcher      *levels.Watcher
	clipboardOK  bool
	showPhysics  bool
	debug        bool
	lastErr      string
	screenWidth  float64
	screenHeight float64
}

func NewViewer(s *session, watcher *levels.Watcher, debug bool) *Viewer {
	v := &Viewer{
		session:      s,
		camera:       system.NewCameraSystem(),
		physics:      system.NewPhysicsSystem(),
		render:       system.NewRenderSystem(),
		watcher:      watcher,
		debug:        debug,
		showPhysics:  debug,
		screenWidth:  common.BaseWidth,
		screenHeight: common.BaseHeight,
	}
	v.scheduler = ecs.NewScheduler(v.camera, v.physics)
	v.panel = newControlPanel(v)
	v.panel.setSeed(s.seedText())

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		v.clipboardOK = true
	}
	return v
}

// apply records the outcome of a session change for the status line.
func (v *Viewer) apply(err error) {
	if err != nil {
		log.Printf("viewer: %v", err)
		v.lastErr = err.Error()
		return
	}
	v.lastErr = ""
	v.panel.setSeed(v.session.seedText())
}

func (v *Viewer) copySeed() {
	if !v.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(v.session.seedText()))
}

func (v *Viewer) Update() error {
	v.pollWatcher()
	v.handleInput()

	v.camera.SetScreenSize(v.screenWidth, v.screenHeight)
	v.scheduler.Update(v.session.world)
	v.panel.ui.Update()
	return nil
}

func (v *Viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			if name != levels.PresetName(v.session.preset) {
				continue
			}
			log.Printf("preset %s changed, regenerating", name)
			v.apply(v.session.reloadPreset())
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("preset watcher: %v", err)
		default:
			return
		}
	}
}

func (v *Viewer) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.apply(v.session.step(1))
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.apply(v.session.step(-1))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.apply(v.session.reroll())
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copySeed()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.showPhysics = !v.showPhysics
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.apply(v.session.refit())
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		v.debug = !v.debug
	}

	_, wheel := ebiten.Wheel()
	if wheel == 0 {
		return
	}
	cam, ok := ecs.Get(v.session.world, v.session.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	if wheel > 0 {
		cam.Zoom *= zoomStep
	} else {
		cam.Zoom /= zoomStep
	}
	if err := ecs.Add(v.session.world, v.session.camEntity, component.CameraComponent, cam); err != nil {
		log.Printf("viewer: zoom: %v", err)
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	v.render.Draw(v.session.world, screen)
	if v.showPhysics {
		system.DrawPhysicsDebug(v.physics, v.session.world, screen)
	}
	if v.debug {
		cx, cy := ebiten.CursorPosition()
		system.DrawLevelDebug(v.session.world, v.physics, screen, cx, cy)
	}

	status := v.session.status()
	if v.lastErr != "" {
		status += "  error: " + v.lastErr
	}
	ebitenutil.DebugPrintAt(screen, status, 10, int(v.screenHeight)-20)
	v.panel.ui.Draw(screen)
}

func (v *Viewer) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return v.screenWidth, v.screenHeight
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
