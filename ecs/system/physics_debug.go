package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

func DrawPhysicsDebug(physics *PhysicsSystem, w *ecs.World, screen *ebiten.Image) {
	space := physics.Space()
	if space == nil || w == nil || screen == nil {
		return
	}

	bounds := screen.Bounds()
	drawer := &physicsDebugDrawer{
		physics: physics,
		screen:  screen,
		cam:     debugCamera(w),
		screenW: float64(bounds.Dx()),
		screenH: float64(bounds.Dy()),
	}
	cp.DrawSpace(space, drawer)
}

// DrawLevelDebug prints the loaded level summary and the zone under the cursor.
func DrawLevelDebug(w *ecs.World, physics *PhysicsSystem, screen *ebiten.Image, cursorX, cursorY int) {
	if w == nil || screen == nil {
		return
	}
	levelEntity, ok := w.First(component.LevelLoadedComponent.Kind())
	if !ok {
		ebitenutil.DebugPrintAt(screen, "no level", 10, 10)
		return
	}
	loaded, _ := ecs.Get(w, levelEntity, component.LevelLoadedComponent)

	hover := "-"
	if physics != nil {
		bounds := screen.Bounds()
		x, z := ScreenToWorld(debugCamera(w), float64(cursorX), float64(cursorY), float64(bounds.Dx()), float64(bounds.Dy()))
		if id, ok := physics.ZoneAt(x, z); ok {
			hover = fmt.Sprintf("%d", id)
		}
	}

	text := fmt.Sprintf("Seed: %d\nFingerprint: %016x\nZones: %d\nColliders: %d\nShapes: %d\nZone under cursor: %s",
		loaded.Seed, loaded.Fingerprint, loaded.Zones, loaded.Colliders, physics.ShapeCount(), hover)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	physics *PhysicsSystem
	screen  *ebiten.Image
	cam     component.Camera
	screenW float64
	screenH float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// Walls draw red, floors green.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if _, floor := d.physics.floorZone(shape); !floor {
		return cp.FColor{R: 1, G: 0.3, B: 0.2, A: 0.9}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(color))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

// Space Y is level Z.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return WorldToScreen(d.cam, v.X, v.Y, d.screenW, d.screenH)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func debugCamera(w *ecs.World) component.Camera {
	cam := component.Camera{Zoom: 1}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return cam
	}
	if c, ok := ecs.Get(w, camEntity, component.CameraComponent); ok {
		cam = c
	}
	return cam
}
