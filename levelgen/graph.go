package levelgen

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"

	"github.com/milk9111/zonegen/common"
)

// GenerationStats counts what happened while growing a graph.
type GenerationStats struct {
	FrontierPicks      int `yaml:"frontier_picks"`
	FrontierDrops      int `yaml:"frontier_drops"`
	PlacementAttempts  int `yaml:"placement_attempts"`
	PlacementFallbacks int `yaml:"placement_fallbacks"`
}

// Graph is a generated level. It is never modified after Generate returns.
type Graph struct {
	Config         Config           `yaml:"config"`
	Zones          map[ZoneID]*Zone `yaml:"zones"`
	Connections    []ZoneConnection `yaml:"connections"`
	SpawnZone      ZoneID           `yaml:"spawn_zone"`
	ObjectiveZones []ZoneID         `yaml:"objective_zones"`
	Stats          GenerationStats  `yaml:"stats"`
}

// zoneMapHint caps the initial zone map size. TargetZoneCount is untrusted and
// growth can stop far short of it.
const zoneMapHint = 256

func newGraph(cfg Config) *Graph {
	return &Graph{
		Config:    cfg,
		Zones:     make(map[ZoneID]*Zone, min(cfg.TargetZoneCount, zoneMapHint)),
		SpawnZone: SpawnZoneID,
	}
}

// Zone returns the zone with id, if present.
func (g *Graph) Zone(id ZoneID) (*Zone, bool) {
	if g == nil {
		return nil, false
	}
	z, ok := g.Zones[id]
	return z, ok
}

// Spawn returns the spawn zone.
func (g *Graph) Spawn() *Zone {
	z, _ := g.Zone(g.SpawnZone)
	return z
}

// ZoneIDs returns all zone ids in ascending order.
func (g *Graph) ZoneIDs() []ZoneID {
	if g == nil {
		return nil
	}
	ids := make([]ZoneID, 0, len(g.Zones))
	for id := range g.Zones {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Neighbors returns the ids connected to id.
func (g *Graph) Neighbors(id ZoneID) []ZoneID {
	z, ok := g.Zone(id)
	if !ok {
		return nil
	}
	return slices.Clone(z.Connections)
}

// Depths returns the hop count of every zone reachable from the spawn zone.
func (g *Graph) Depths() map[ZoneID]int {
	depths := make(map[ZoneID]int, len(g.Zones))
	if _, ok := g.Zone(g.SpawnZone); !ok {
		return depths
	}
	depths[g.SpawnZone] = 0
	queue := []ZoneID{g.SpawnZone}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range g.Zones[id].Connections {
			if _, seen := depths[n]; seen {
				continue
			}
			depths[n] = depths[id] + 1
			queue = append(queue, n)
		}
	}
	return depths
}

// Bounds returns the XZ rectangle covering every zone footprint.
func (g *Graph) Bounds() (minX, minZ, maxX, maxZ float64) {
	if g == nil || len(g.Zones) == 0 {
		return 0, 0, 0, 0
	}
	minX, minZ = math.Inf(1), math.Inf(1)
	maxX, maxZ = math.Inf(-1), math.Inf(-1)
	for _, z := range g.Zones {
		hx, hz := z.Size.X/2, z.Size.Z/2
		minX = math.Min(minX, z.Position.X-hx)
		maxX = math.Max(maxX, z.Position.X+hx)
		minZ = math.Min(minZ, z.Position.Z-hz)
		maxZ = math.Max(maxZ, z.Position.Z+hz)
	}
	return minX, minZ, maxX, maxZ
}

// Fingerprint hashes every zone field, every connection field and the
// objective list in canonical order. Peers that generated from the same
// config get the same value.
func (g *Graph) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(f float64) { putU64(math.Float64bits(f)) }
	putVec := func(v common.Vec3) {
		putF(v.X)
		putF(v.Y)
		putF(v.Z)
	}

	for _, id := range g.ZoneIDs() {
		z := g.Zones[id]
		putU64(uint64(z.ID))
		putU64(uint64(z.Type))
		putVec(z.Position)
		putVec(z.Size)
		if z.IsBuilt {
			putU64(1)
		} else {
			putU64(0)
		}
		putU64(uint64(len(z.Connections)))
		for _, c := range z.Connections {
			putU64(uint64(c))
		}
	}
	for _, c := range g.Connections {
		putU64(uint64(c.From))
		putU64(uint64(c.To))
		putVec(c.DoorPosition)
		putF(c.DoorOrientation.X)
		putF(c.DoorOrientation.Y)
		putF(c.DoorOrientation.Z)
		putF(c.DoorOrientation.W)
	}
	for _, id := range g.ObjectiveZones {
		putU64(uint64(id))
	}
	return h.Sum64()
}

// CrowdedPairs returns the number of zone pairs closer than the soft spacing
// limit. Only fallback placements can produce them.
func (g *Graph) CrowdedPairs() int {
	limit := float64(g.Config.MinZoneSpacing) * spacingTolerance
	ids := g.ZoneIDs()
	n := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if g.Zones[ids[i]].Position.Distance(g.Zones[ids[j]].Position) < limit {
				n++
			}
		}
	}
	return n
}

// Validate checks the structural invariants of a generated graph. Spacing is
// soft and is reported by CrowdedPairs instead.
func (g *Graph) Validate() []error {
	var errs []error
	spawn, ok := g.Zone(g.SpawnZone)
	switch {
	case g.SpawnZone != SpawnZoneID:
		errs = append(errs, fmt.Errorf("spawn zone is %d, want %d", g.SpawnZone, SpawnZoneID))
	case !ok:
		errs = append(errs, fmt.Errorf("spawn zone %d missing", g.SpawnZone))
	default:
		if spawn.Type != ZoneHub {
			errs = append(errs, fmt.Errorf("spawn zone type is %s, want hub", spawn.Type))
		}
		if spawn.Position.Length() != 0 {
			errs = append(errs, fmt.Errorf("spawn zone at %+v, want origin", spawn.Position))
		}
	}

	if t := int(g.Config.TargetZoneCount); t >= 1 && len(g.Zones) > t {
		errs = append(errs, fmt.Errorf("%d zones exceeds target %d", len(g.Zones), t))
	}

	for _, id := range g.ZoneIDs() {
		z := g.Zones[id]
		if len(z.Connections) > z.Type.MaxConnections() {
			errs = append(errs, fmt.Errorf("zone %d (%s) has %d connections, max %d", id, z.Type, len(z.Connections), z.Type.MaxConnections()))
		}
		for _, n := range z.Connections {
			other, ok := g.Zones[n]
			if !ok {
				errs = append(errs, fmt.Errorf("zone %d links to missing zone %d", id, n))
				continue
			}
			if !other.HasConnection(id) {
				errs = append(errs, fmt.Errorf("zone %d links to %d but not back", id, n))
			}
		}
	}

	for i, c := range g.Connections {
		from, okFrom := g.Zones[c.From]
		to, okTo := g.Zones[c.To]
		if !okFrom || !okTo {
			errs = append(errs, fmt.Errorf("connection %d references missing zone (%d -> %d)", i, c.From, c.To))
			continue
		}
		if !from.HasConnection(c.To) || !to.HasConnection(c.From) {
			errs = append(errs, fmt.Errorf("connection %d (%d -> %d) not mirrored in zone sets", i, c.From, c.To))
		}
	}

	if len(g.Zones) > 0 && len(g.Connections) != len(g.Zones)-1 {
		errs = append(errs, fmt.Errorf("%d connections for %d zones, want a tree", len(g.Connections), len(g.Zones)))
	}
	if depths := g.Depths(); len(depths) != len(g.Zones) {
		errs = append(errs, fmt.Errorf("%d of %d zones reachable from spawn", len(depths), len(g.Zones)))
	}

	for _, id := range g.ObjectiveZones {
		z, ok := g.Zones[id]
		if !ok || z.Type != ZoneObjective {
			errs = append(errs, fmt.Errorf("objective list holds non-objective zone %d", id))
		}
	}
	return errs
}
