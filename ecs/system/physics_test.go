package system

import (
	"testing"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/ecs/entity"
	"github.com/milk9111/zonegen/levelgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestLevel(t *testing.T, cfg levelgen.Config) (*ecs.World, *levelgen.Graph) {
	t.Helper()
	g := levelgen.Generate(cfg)
	w := ecs.NewWorld()
	_, err := entity.LoadLevelToWorld(w, g)
	require.NoError(t, err)
	return w, g
}

func TestPhysicsSystemMirrorsColliders(t *testing.T) {
	w, g := loadTestLevel(t, levelgen.DefaultConfig())

	ps := NewPhysicsSystem()
	ps.Update(w)
	assert.Equal(t, 5*len(g.Zones), ps.ShapeCount())

	ecs.ForEach(w, component.StaticColliderComponent, func(_ ecs.Entity, c component.StaticCollider) {
		assert.NotNil(t, c.Shape, "zone %d %s has no shape", c.Zone, c.Part)
	})

	// A second update must not duplicate shapes.
	ps.Update(w)
	assert.Equal(t, 5*len(g.Zones), ps.ShapeCount())
}

func TestPhysicsSystemZoneAt(t *testing.T) {
	w, g := loadTestLevel(t, levelgen.Config{Seed: 9, TargetZoneCount: 12, MinZoneSpacing: 60, MaxDepth: 6})
	ps := NewPhysicsSystem()
	ps.Update(w)

	_, ok := ps.ZoneAt(0, 0)
	require.True(t, ok, "spawn floor must cover the origin")

	checked := 0
	for _, zid := range g.ZoneIDs() {
		z := g.Zones[zid]
		if !footprintIsolated(g, z) {
			continue
		}
		checked++
		got, ok := ps.ZoneAt(z.Position.X, z.Position.Z)
		require.True(t, ok, "zone %d center not covered", zid)
		assert.Equal(t, zid, got)
	}
	assert.NotZero(t, checked)

	minX, minZ, _, _ := g.Bounds()
	_, ok = ps.ZoneAt(minX-100, minZ-100)
	assert.False(t, ok)
}

func TestPhysicsSystemRemovesUnloadedColliders(t *testing.T) {
	w, _ := loadTestLevel(t, levelgen.DefaultConfig())
	ps := NewPhysicsSystem()
	ps.Update(w)
	require.NotZero(t, ps.ShapeCount())

	entity.UnloadLevel(w)
	ps.Update(w)
	assert.Zero(t, ps.ShapeCount())
	_, ok := ps.ZoneAt(0, 0)
	assert.False(t, ok)
}

func TestPhysicsSystemSkipsDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	ps.Update(w)

	e := w.CreateEntity()
	require.True(t, w.DestroyEntity(e))
	floor := component.StaticCollider{Zone: 3, Part: levelgen.PartFloor, Width: 10, Depth: 10, Sensor: true}
	err := ps.addCollider(w, e, component.Transform{}, floor)
	require.ErrorIs(t, err, component.ErrEntityNotAlive)

	assert.Zero(t, ps.ShapeCount())
	_, ok := ps.ZoneAt(0, 0)
	assert.False(t, ok, "withdrawn floor still answers queries")
}

func TestPhysicsSystemNil(t *testing.T) {
	var ps *PhysicsSystem
	ps.Update(ecs.NewWorld())
	assert.Nil(t, ps.Space())
	assert.Zero(t, ps.ShapeCount())
	_, ok := ps.ZoneAt(0, 0)
	assert.False(t, ok)
}

// footprintIsolated reports whether no other zone footprint covers z's center.
func footprintIsolated(g *levelgen.Graph, z *levelgen.Zone) bool {
	for _, other := range g.Zones {
		if other.ID == z.ID {
			continue
		}
		if abs(other.Position.X-z.Position.X) <= other.Size.X/2 && abs(other.Position.Z-z.Position.Z) <= other.Size.Z/2 {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
