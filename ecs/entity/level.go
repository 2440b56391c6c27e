package entity

import (
	"fmt"

	"github.com/milk9111/zonegen/common"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
)

// LoadLevelToWorld spawns a generated level into the ECS world: a bounds
// entity, one entity per zone and door, and one static collider entity per
// slab produced by levelgen.BuildPhysics.
func LoadLevelToWorld(world *ecs.World, g *levelgen.Graph) (ecs.Entity, error) {
	if world == nil || g == nil {
		return 0, fmt.Errorf("load level: nil world or graph")
	}

	minX, minZ, maxX, maxZ := g.Bounds()
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent, component.LevelBounds{
		MinX: minX,
		MinZ: minZ,
		MaxX: maxX,
		MaxZ: maxZ,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, boundsEntity, component.LevelTagComponent, component.LevelTag{}); err != nil {
		return 0, err
	}

	depths := g.Depths()
	objectives := make(map[levelgen.ZoneID]bool, len(g.ObjectiveZones))
	for _, id := range g.ObjectiveZones {
		objectives[id] = true
	}

	for _, id := range g.ZoneIDs() {
		z := g.Zones[id]
		if _, err := newZoneEntity(world, z, depths[id], id == g.SpawnZone, objectives[id]); err != nil {
			return 0, fmt.Errorf("zone %d: %w", id, err)
		}
	}

	for _, c := range g.Connections {
		if _, err := newDoorEntity(world, c); err != nil {
			return 0, fmt.Errorf("door %d->%d: %w", c.From, c.To, err)
		}
	}

	sink := &worldSink{world: world}
	colliders := levelgen.BuildPhysics(g, sink)
	if sink.err != nil {
		return 0, sink.err
	}

	loaded := component.LevelLoaded{
		Seed:        g.Config.Seed,
		Fingerprint: g.Fingerprint(),
		Zones:       len(g.Zones),
		Colliders:   colliders,
	}
	if err := ecs.Add(world, boundsEntity, component.LevelLoadedComponent, loaded); err != nil {
		return 0, err
	}
	world.Events().Push(ecs.Event{Type: ecs.EventLevelLoaded, Data: loaded})
	return boundsEntity, nil
}

// UnloadLevel destroys every entity spawned by LoadLevelToWorld.
func UnloadLevel(world *ecs.World) int {
	if world == nil {
		return 0
	}
	n := 0
	for _, e := range world.Query(component.LevelTagComponent.Kind()) {
		if world.DestroyEntity(e) {
			n++
		}
	}
	if n > 0 {
		world.Events().Push(ecs.Event{Type: ecs.EventLevelUnloaded, Data: n})
	}
	return n
}

func newZoneEntity(world *ecs.World, z *levelgen.Zone, hops int, spawn, objective bool) (ecs.Entity, error) {
	e := world.CreateEntity()
	if err := ecs.Add(world, e, component.TransformComponent, component.Transform{
		X: z.Position.X,
		Y: z.Position.Y,
		Z: z.Position.Z,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.ZoneInfoComponent, component.ZoneInfo{
		ID:          z.ID,
		Type:        z.Type,
		Width:       z.Size.X,
		Height:      z.Size.Y,
		Depth:       z.Size.Z,
		Hops:        hops,
		Connections: append([]levelgen.ZoneID(nil), z.Connections...),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.LevelTagComponent, component.LevelTag{}); err != nil {
		return 0, err
	}
	if spawn {
		if err := ecs.Add(world, e, component.SpawnTagComponent, component.SpawnTag{}); err != nil {
			return 0, err
		}
	}
	if objective {
		if err := ecs.Add(world, e, component.ObjectiveTagComponent, component.ObjectiveTag{}); err != nil {
			return 0, err
		}
	}
	return e, nil
}

func newDoorEntity(world *ecs.World, c levelgen.ZoneConnection) (ecs.Entity, error) {
	e := world.CreateEntity()
	facing := c.DoorOrientation.Rotate(common.Forward)
	if err := ecs.Add(world, e, component.TransformComponent, component.Transform{
		X:   c.DoorPosition.X,
		Y:   c.DoorPosition.Y,
		Z:   c.DoorPosition.Z,
		Yaw: common.YawXZ(facing),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.DoorComponent, component.Door{From: c.From, To: c.To}); err != nil {
		return 0, err
	}
	if err := ecs.Add(world, e, component.LevelTagComponent, component.LevelTag{}); err != nil {
		return 0, err
	}
	return e, nil
}

// worldSink turns colliders into static collider entities. The first error
// stops further spawning.
type worldSink struct {
	world *ecs.World
	err   error
}

func (s *worldSink) AddStaticCollider(c levelgen.Collider) {
	if s.err != nil {
		return
	}
	e := s.world.CreateEntity()
	if err := ecs.Add(s.world, e, component.TransformComponent, component.Transform{
		X: c.Center.X,
		Y: c.Center.Y,
		Z: c.Center.Z,
	}); err != nil {
		s.err = err
		return
	}
	if err := ecs.Add(s.world, e, component.StaticColliderComponent, component.StaticCollider{
		Zone:   c.Zone,
		Part:   c.Part,
		Width:  c.Extents.X,
		Height: c.Extents.Y,
		Depth:  c.Extents.Z,
		Sensor: c.Part == levelgen.PartFloor,
	}); err != nil {
		s.err = err
		return
	}
	if err := ecs.Add(s.world, e, component.LevelTagComponent, component.LevelTag{}); err != nil {
		s.err = err
	}
}
