package levelgen

import (
	"math"
	"runtime"
	"slices"
	"testing"

	"github.com/milk9111/zonegen/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGraphDepthsMatchTree(t *testing.T) {
	g := Generate(Config{Seed: 77, TargetZoneCount: 40, MinZoneSpacing: 30, MaxDepth: 6})
	depths := g.Depths()
	require.Len(t, depths, len(g.Zones))
	assert.Equal(t, 0, depths[SpawnZoneID])
	for _, c := range g.Connections {
		assert.Equal(t, depths[c.From]+1, depths[c.To], "connection %d -> %d", c.From, c.To)
		assert.LessOrEqual(t, depths[c.To], int(g.Config.MaxDepth))
	}
}

func TestGraphValidateCatchesBrokenGraph(t *testing.T) {
	g := Generate(Config{Seed: 5, TargetZoneCount: 10, MinZoneSpacing: 30, MaxDepth: 6})
	require.Empty(t, g.Validate())

	// One-sided link.
	broken := Generate(g.Config)
	for _, id := range broken.ZoneIDs() {
		z := broken.Zones[id]
		if len(z.Connections) > 0 {
			z.Connections = z.Connections[1:]
			break
		}
	}
	assert.NotEmpty(t, broken.Validate())

	moved := Generate(g.Config)
	moved.Zones[SpawnZoneID].Position = common.Vec3{X: 1}
	assert.NotEmpty(t, moved.Validate())
}

func TestGraphNeighborsAndBounds(t *testing.T) {
	g := Generate(DefaultConfig())
	spawn := g.Spawn()
	require.NotNil(t, spawn)

	n := g.Neighbors(SpawnZoneID)
	assert.Equal(t, spawn.Connections, n)
	if len(n) > 0 {
		n[0] = 999
		assert.NotEqual(t, ZoneID(999), spawn.Connections[0], "Neighbors must copy")
	}
	assert.Nil(t, g.Neighbors(ZoneID(10_000)))

	minX, minZ, maxX, maxZ := g.Bounds()
	for _, z := range g.Zones {
		assert.GreaterOrEqual(t, z.Position.X-z.Size.X/2, minX)
		assert.LessOrEqual(t, z.Position.X+z.Size.X/2, maxX)
		assert.GreaterOrEqual(t, z.Position.Z-z.Size.Z/2, minZ)
		assert.LessOrEqual(t, z.Position.Z+z.Size.Z/2, maxZ)
	}
}

func TestGraphYAMLDump(t *testing.T) {
	g := Generate(Config{Seed: 42, TargetZoneCount: 6, MinZoneSpacing: 35, MaxDepth: 5})
	out, err := yaml.Marshal(g)
	require.NoError(t, err)

	var back struct {
		Config    Config           `yaml:"config"`
		SpawnZone ZoneID           `yaml:"spawn_zone"`
		Zones     map[ZoneID]*Zone `yaml:"zones"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, g.Config, back.Config)
	assert.Equal(t, SpawnZoneID, back.SpawnZone)
	require.Len(t, back.Zones, len(g.Zones))
	assert.Equal(t, ZoneHub, back.Zones[SpawnZoneID].Type)
	assert.Contains(t, string(out), "type: hub")
}

func TestHugeTargetAllocatesLittle(t *testing.T) {
	cfg := Config{Seed: 1, TargetZoneCount: math.MaxUint32, MinZoneSpacing: 30, MaxDepth: 0}
	require.NoError(t, cfg.Validate())

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	g := Generate(cfg)
	runtime.ReadMemStats(&after)

	assert.Len(t, g.Zones, 1)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "bytes allocated")
}

func TestFingerprintCoversEveryField(t *testing.T) {
	cfg := Config{Seed: 42, TargetZoneCount: 6, MinZoneSpacing: 35, MaxDepth: 5}
	base := Generate(cfg).Fingerprint()

	mutations := map[string]func(g *Graph){
		"zone_size":        func(g *Graph) { g.Zones[1].Size.Y++ },
		"zone_built":       func(g *Graph) { g.Zones[1].IsBuilt = true },
		"zone_position_y":  func(g *Graph) { g.Zones[1].Position.Y = 1 },
		"door_position_y":  func(g *Graph) { g.Connections[0].DoorPosition.Y = 1 },
		"door_orientation": func(g *Graph) { g.Connections[0].DoorOrientation.X = 0.5 },
		"door_roll":        func(g *Graph) { g.Connections[0].DoorOrientation.Z = 0.5 },
		"objective_list":   func(g *Graph) { g.ObjectiveZones = append(g.ObjectiveZones, 3) },
		"link_order":       func(g *Graph) { slices.Reverse(g.Zones[SpawnZoneID].Connections) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			g := Generate(cfg)
			require.GreaterOrEqual(t, len(g.Connections), 2)
			mutate(g)
			assert.NotEqual(t, base, g.Fingerprint())
		})
	}
}
