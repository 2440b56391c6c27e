package system

import (
	"math"

	"github.com/milk9111/zonegen/common"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
)

const defaultCameraMargin = 0.1

type CameraSystem struct {
	camEntity    ecs.Entity
	screenWidth  float64
	screenHeight float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{screenWidth: common.BaseWidth, screenHeight: common.BaseHeight}
}

// SetScreenSize changes the viewport the camera fits the level into.
func (cs *CameraSystem) SetScreenSize(w, h float64) {
	if w > 0 && h > 0 {
		cs.screenWidth, cs.screenHeight = w, h
	}
}

// Update frames the level bounds when the camera asks for a fit.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok || !cam.Fit {
		return
	}
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent)

	cam = FitCamera(cam, bounds, cs.screenWidth, cs.screenHeight)
	if err := ecs.Add(w, cs.camEntity, component.CameraComponent, cam); err != nil {
		panic("camera system: update camera: " + err.Error())
	}
}

// FitCamera centers cam on bounds and zooms so the level fills the screen
// minus the camera margin.
func FitCamera(cam component.Camera, bounds component.LevelBounds, screenW, screenH float64) component.Camera {
	margin := cam.Margin
	if margin <= 0 || margin >= 0.5 {
		margin = defaultCameraMargin
	}
	cam.X = (bounds.MinX + bounds.MaxX) / 2
	cam.Z = (bounds.MinZ + bounds.MaxZ) / 2
	cam.Zoom = 1
	if bw, bd := bounds.Width(), bounds.Depth(); bw > 0 && bd > 0 {
		usableW := screenW * (1 - 2*margin)
		usableH := screenH * (1 - 2*margin)
		cam.Zoom = math.Min(usableW/bw, usableH/bd)
	}
	cam.Fit = false
	return cam
}

// WorldToScreen projects a level-space XZ point through cam.
func WorldToScreen(cam component.Camera, x, z, screenW, screenH float64) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (x-cam.X)*zoom + screenW/2, (z-cam.Z)*zoom + screenH/2
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(cam component.Camera, sx, sy, screenW, screenH float64) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (sx-screenW/2)/zoom + cam.X, (sy-screenH/2)/zoom + cam.Z
}
