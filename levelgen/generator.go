package levelgen

import (
	"math"

	"github.com/milk9111/zonegen/common"
)

const (
	maxBranchesPerPick   = 3
	placementAttempts    = 10
	spacingTolerance     = 0.8
	maxPlacementDistance = 1.5
	objectiveChance      = 0.15
)

type frontierEntry struct {
	zone  ZoneID
	depth uint32
}

// frontier is an unordered working set; picks are by random index and
// removal swaps the last entry into the hole.
type frontier []frontierEntry

func (f *frontier) push(e frontierEntry) {
	*f = append(*f, e)
}

func (f *frontier) swapRemove(i int) {
	last := len(*f) - 1
	(*f)[i] = (*f)[last]
	*f = (*f)[:last]
}

type generator struct {
	cfg     Config
	rng     *Rand
	graph   *Graph
	spacing float64
	nextID  ZoneID
}

// Generate grows a level graph from cfg. The same cfg always yields the same
// graph, zone for zone and draw for draw.
func Generate(cfg Config) *Graph {
	g := &generator{
		cfg:     cfg,
		rng:     NewRand(cfg.Seed),
		graph:   newGraph(cfg),
		spacing: float64(cfg.MinZoneSpacing),
	}
	g.run()
	return g.graph
}

func (g *generator) run() {
	spawn := g.addZone(ZoneHub, common.Vec3{})
	g.graph.SpawnZone = spawn.ID

	open := frontier{{zone: spawn.ID, depth: 0}}
	target := int(g.cfg.TargetZoneCount)

	for len(g.graph.Zones) < target && len(open) > 0 {
		idx := g.rng.IntN(len(open))
		entry := open[idx]
		current := g.graph.Zones[entry.zone]
		g.graph.Stats.FrontierPicks++

		if entry.depth >= g.cfg.MaxDepth || len(current.Connections) >= current.Type.MaxConnections() {
			open.swapRemove(idx)
			g.graph.Stats.FrontierDrops++
			continue
		}

		remaining := current.RemainingCapacity()
		if remaining == 0 {
			open.swapRemove(idx)
			g.graph.Stats.FrontierDrops++
			continue
		}
		branches := g.rng.IntRange(1, min(remaining, maxBranchesPerPick))
		open.swapRemove(idx)

		for i := 0; i < branches && len(g.graph.Zones) < target; i++ {
			zoneType := g.chooseZoneType(entry.depth)
			pos := g.calculateZonePosition(current.ID)
			child := g.addZone(zoneType, pos)
			g.connect(current, child)

			if zoneType.MaxConnections() > 1 {
				open.push(frontierEntry{zone: child.ID, depth: entry.depth + 1})
			}
			if zoneType == ZoneObjective {
				g.graph.ObjectiveZones = append(g.graph.ObjectiveZones, child.ID)
			}
		}

		if current.RemainingCapacity() > 0 {
			open.push(entry)
		}
	}
}

func (g *generator) addZone(t ZoneType, pos common.Vec3) *Zone {
	z := NewZone(g.nextID, t, pos)
	g.nextID++
	g.graph.Zones[z.ID] = z
	return z
}

func (g *generator) connect(from, to *Zone) {
	g.graph.Connections = append(g.graph.Connections, newZoneConnection(from, to))
	from.connect(to.ID)
	to.connect(from.ID)
}

// chooseZoneType rolls once. Deep zones become objectives on the same low
// band of the roll that would otherwise pick a hub.
func (g *generator) chooseZoneType(depth uint32) ZoneType {
	roll := g.rng.Float64()
	if depth > g.cfg.MaxDepth/2 && roll < objectiveChance {
		return ZoneObjective
	}
	switch {
	case roll < 0.15:
		return ZoneHub
	case roll < 0.35:
		return ZoneCorridor
	case roll < 0.50:
		return ZoneUtility
	case roll < 0.70:
		return ZoneIndustrial
	default:
		return ZoneStorage
	}
}

// calculateZonePosition tries to place a zone around its parent without
// crowding existing zones. When every attempt collides it falls back to a
// point at exactly the minimum spacing from the parent, which may crowd.
func (g *generator) calculateZonePosition(parent ZoneID) common.Vec3 {
	origin := g.graph.Zones[parent].Position
	minDist := g.spacing * spacingTolerance

	for attempt := 0; attempt < placementAttempts; attempt++ {
		g.graph.Stats.PlacementAttempts++
		angle := g.rng.FloatRange(0, 2*math.Pi)
		distance := g.rng.FloatRange(g.spacing, g.spacing*maxPlacementDistance)
		candidate := origin.Add(common.Vec3{X: math.Cos(angle) * distance, Z: math.Sin(angle) * distance})
		if !g.crowded(candidate, minDist) {
			return candidate
		}
	}

	g.graph.Stats.PlacementFallbacks++
	angle := g.rng.FloatRange(0, 2*math.Pi)
	return origin.Add(common.Vec3{X: math.Cos(angle) * g.spacing, Z: math.Sin(angle) * g.spacing})
}

func (g *generator) crowded(p common.Vec3, minDist float64) bool {
	// Ascending id order so float evaluation order never depends on map iteration.
	for id := ZoneID(0); id < g.nextID; id++ {
		if p.Distance(g.graph.Zones[id].Position) < minDist {
			return true
		}
	}
	return false
}
