package levelgen

import (
	"testing"

	"github.com/milk9111/zonegen/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPhysicsEmitsFivePerZone(t *testing.T) {
	for _, seed := range []uint64{1, 42, 12345} {
		g := Generate(DefaultConfig().WithSeed(seed))

		var colliders ColliderList
		n := BuildPhysics(g, &colliders)

		require.Equal(t, 5*len(g.Zones), n)
		require.Len(t, colliders, n)

		perZone := make(map[ZoneID]int)
		for _, c := range colliders {
			perZone[c.Zone]++
		}
		for id := range g.Zones {
			assert.Equal(t, 5, perZone[id], "zone %d", id)
		}
	}
}

func TestZoneCollidersGeometry(t *testing.T) {
	pos := common.Vec3{X: 100, Z: -50}
	z := NewZone(3, ZoneHub, pos)
	cs := ZoneColliders(z)

	floor := cs[0]
	assert.Equal(t, PartFloor, floor.Part)
	assert.Equal(t, common.Vec3{X: 40, Y: FloorThickness, Z: 40}, floor.Extents)
	assert.InDelta(t, -0.25, floor.Center.Y-pos.Y, 1e-12)
	assert.Equal(t, pos.X, floor.Center.X)
	assert.Equal(t, pos.Z, floor.Center.Z)

	want := map[ColliderPart]struct {
		offset  common.Vec3
		extents common.Vec3
	}{
		PartWallEast:  {common.Vec3{X: 20, Y: 5}, common.Vec3{X: WallThickness, Y: 10, Z: 40}},
		PartWallWest:  {common.Vec3{X: -20, Y: 5}, common.Vec3{X: WallThickness, Y: 10, Z: 40}},
		PartWallNorth: {common.Vec3{Y: 5, Z: 20}, common.Vec3{X: 40, Y: 10, Z: WallThickness}},
		PartWallSouth: {common.Vec3{Y: 5, Z: -20}, common.Vec3{X: 40, Y: 10, Z: WallThickness}},
	}
	for _, c := range cs[1:] {
		w, ok := want[c.Part]
		require.True(t, ok, "unexpected part %s", c.Part)
		assert.True(t, c.Part.IsWall())
		assert.Equal(t, pos.Add(w.offset), c.Center, "center of %s", c.Part)
		assert.Equal(t, w.extents, c.Extents, "extents of %s", c.Part)
		assert.Equal(t, z.Size.Y/2, c.Center.Y-pos.Y)
		assert.Equal(t, ZoneID(3), c.Zone)
	}
}

func TestBuildPhysicsOrderAndFunc(t *testing.T) {
	g := Generate(Config{Seed: 8, TargetZoneCount: 12, MinZoneSpacing: 30, MaxDepth: 6})

	var order []ZoneID
	BuildPhysics(g, CollisionSinkFunc(func(c Collider) {
		if c.Part == PartFloor {
			order = append(order, c.Zone)
		}
	}))
	assert.Equal(t, g.ZoneIDs(), order)
}

func TestBuildPhysicsNil(t *testing.T) {
	var colliders ColliderList
	assert.Equal(t, 0, BuildPhysics(nil, &colliders))
	assert.Equal(t, 0, BuildPhysics(Generate(DefaultConfig()), nil))
	assert.Empty(t, colliders)
}
