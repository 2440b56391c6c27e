package system

import (
	"testing"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitCamera(t *testing.T) {
	bounds := component.LevelBounds{MinX: -100, MinZ: -50, MaxX: 300, MaxZ: 150}
	cam := FitCamera(component.Camera{Margin: 0.1, Fit: true}, bounds, 1000, 500)

	assert.False(t, cam.Fit)
	assert.Equal(t, 100.0, cam.X)
	assert.Equal(t, 50.0, cam.Z)
	// usable 800x400 over 400x200
	assert.InDelta(t, 2.0, cam.Zoom, 1e-9)

	x, y := WorldToScreen(cam, bounds.MinX, bounds.MinZ, 1000, 500)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	wx, wz := ScreenToWorld(cam, x, y, 1000, 500)
	assert.InDelta(t, bounds.MinX, wx, 1e-9)
	assert.InDelta(t, bounds.MinZ, wz, 1e-9)
}

func TestFitCameraDegenerateBounds(t *testing.T) {
	cam := FitCamera(component.Camera{Fit: true}, component.LevelBounds{}, 800, 600)
	assert.Equal(t, 1.0, cam.Zoom)
	assert.False(t, cam.Fit)
}

func TestCameraSystemFitsLoadedLevel(t *testing.T) {
	w, g := loadTestLevel(t, levelgen.DefaultConfig())
	camEntity := w.CreateEntity()
	require.NoError(t, ecs.Add(w, camEntity, component.CameraComponent, component.Camera{Fit: true}))

	cs := NewCameraSystem()
	cs.SetScreenSize(640, 480)
	cs.Update(w)

	cam, ok := ecs.Get(w, camEntity, component.CameraComponent)
	require.True(t, ok)
	assert.False(t, cam.Fit)

	minX, minZ, maxX, maxZ := g.Bounds()
	assert.InDelta(t, (minX+maxX)/2, cam.X, 1e-9)
	assert.InDelta(t, (minZ+maxZ)/2, cam.Z, 1e-9)
	assert.Greater(t, cam.Zoom, 0.0)

	// Fit is one-shot: a manual zoom survives later updates.
	cam.Zoom = 7
	require.NoError(t, ecs.Add(w, camEntity, component.CameraComponent, cam))
	cs.Update(w)
	cam, _ = ecs.Get(w, camEntity, component.CameraComponent)
	assert.Equal(t, 7.0, cam.Zoom)
}
