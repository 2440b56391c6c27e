package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
	"golang.org/x/image/colornames"
)

const (
	doorMarkerLength = 6
	markerRadius     = 5
)

var zoneColors = map[levelgen.ZoneType]color.RGBA{
	levelgen.ZoneHub:        colornames.Steelblue,
	levelgen.ZoneCorridor:   colornames.Slategray,
	levelgen.ZoneUtility:    colornames.Darkkhaki,
	levelgen.ZoneIndustrial: colornames.Sienna,
	levelgen.ZoneObjective:  colornames.Gold,
	levelgen.ZoneStorage:    colornames.Olivedrab,
}

// ZoneColor returns the fill used for zones of type t.
func ZoneColor(t levelgen.ZoneType) color.RGBA {
	if c, ok := zoneColors[t]; ok {
		return c
	}
	return colornames.Gray
}

type RenderSystem struct {
	camEntity ecs.Entity
	// ShowLabels prints the zone id and type in each room.
	ShowLabels bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowLabels: true}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam := component.Camera{Zoom: 1}
	if c, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok {
		cam = c
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	project := func(x, z float64) (float32, float32) {
		px, py := WorldToScreen(cam, x, z, sw, sh)
		return float32(px), float32(py)
	}

	// Connections first so rooms draw over the line ends.
	centers := make(map[levelgen.ZoneID][2]float32)
	ecs.ForEach2(w, component.ZoneInfoComponent, component.TransformComponent, func(_ ecs.Entity, info component.ZoneInfo, t component.Transform) {
		x, y := project(t.X, t.Z)
		centers[info.ID] = [2]float32{x, y}
	})
	ecs.ForEach(w, component.DoorComponent, func(_ ecs.Entity, d component.Door) {
		a, okA := centers[d.From]
		b, okB := centers[d.To]
		if !okA || !okB {
			return
		}
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, colornames.Lightgray, true)
	})

	for _, e := range w.Query(component.ZoneInfoComponent.Kind(), component.TransformComponent.Kind()) {
		info, _ := ecs.Get(w, e, component.ZoneInfoComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)

		x, y := project(t.X-info.Width/2, t.Z-info.Depth/2)
		rw := float32(info.Width * zoom)
		rh := float32(info.Depth * zoom)
		c := ZoneColor(info.Type)
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xc0}
		vector.FillRect(screen, x, y, rw, rh, fill, false)
		vector.StrokeRect(screen, x, y, rw, rh, 1, colornames.White, false)

		cx, cy := project(t.X, t.Z)
		if ecs.Has(w, e, component.SpawnTagComponent) {
			vector.FillCircle(screen, cx, cy, markerRadius, colornames.Limegreen, true)
		}
		if ecs.Has(w, e, component.ObjectiveTagComponent) {
			vector.StrokeCircle(screen, cx, cy, markerRadius+2, 2, colornames.Red, true)
		}
		if r.ShowLabels && rw > 40 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d %s", info.ID, info.Type), int(x)+3, int(y)+2)
		}
	}

	ecs.ForEach2(w, component.DoorComponent, component.TransformComponent, func(_ ecs.Entity, _ component.Door, t component.Transform) {
		x, y := project(t.X, t.Z)
		dx := float32(math.Cos(t.Yaw) * doorMarkerLength)
		dy := float32(math.Sin(t.Yaw) * doorMarkerLength)
		vector.StrokeLine(screen, x-dy, y+dx, x+dy, y-dx, 3, colornames.Orange, true)
	})
}
