package levelgen

import "github.com/milk9111/zonegen/common"

const (
	FloorThickness = 0.5
	WallThickness  = 0.5
)

// ColliderPart names which slab of a zone a collider is.
type ColliderPart uint8

const (
	PartFloor ColliderPart = iota
	PartWallEast
	PartWallWest
	PartWallNorth
	PartWallSouth
)

func (p ColliderPart) String() string {
	switch p {
	case PartFloor:
		return "floor"
	case PartWallEast:
		return "wall_east"
	case PartWallWest:
		return "wall_west"
	case PartWallNorth:
		return "wall_north"
	case PartWallSouth:
		return "wall_south"
	default:
		return "unknown"
	}
}

func (p ColliderPart) IsWall() bool {
	return p != PartFloor
}

// Collider is a static axis-aligned box. Extents are full lengths, not halves.
type Collider struct {
	Zone    ZoneID
	Part    ColliderPart
	Center  common.Vec3
	Extents common.Vec3
}

// CollisionSink receives static geometry. The host physics or scene system
// implements it.
type CollisionSink interface {
	AddStaticCollider(c Collider)
}

// CollisionSinkFunc adapts a function to CollisionSink.
type CollisionSinkFunc func(c Collider)

func (f CollisionSinkFunc) AddStaticCollider(c Collider) {
	f(c)
}

// ColliderList records every collider it receives.
type ColliderList []Collider

func (l *ColliderList) AddStaticCollider(c Collider) {
	*l = append(*l, c)
}

// ZoneColliders returns the floor and four walls of z.
func ZoneColliders(z *Zone) [5]Collider {
	size := z.Size
	pos := z.Position
	wallY := size.Y / 2

	return [5]Collider{
		{
			Zone:    z.ID,
			Part:    PartFloor,
			Center:  pos.Sub(common.Vec3{Y: FloorThickness / 2}),
			Extents: common.Vec3{X: size.X, Y: FloorThickness, Z: size.Z},
		},
		{
			Zone:    z.ID,
			Part:    PartWallEast,
			Center:  pos.Add(common.Vec3{X: size.X / 2, Y: wallY}),
			Extents: common.Vec3{X: WallThickness, Y: size.Y, Z: size.Z},
		},
		{
			Zone:    z.ID,
			Part:    PartWallWest,
			Center:  pos.Add(common.Vec3{X: -size.X / 2, Y: wallY}),
			Extents: common.Vec3{X: WallThickness, Y: size.Y, Z: size.Z},
		},
		{
			Zone:    z.ID,
			Part:    PartWallNorth,
			Center:  pos.Add(common.Vec3{Y: wallY, Z: size.Z / 2}),
			Extents: common.Vec3{X: size.X, Y: size.Y, Z: WallThickness},
		},
		{
			Zone:    z.ID,
			Part:    PartWallSouth,
			Center:  pos.Add(common.Vec3{Y: wallY, Z: -size.Z / 2}),
			Extents: common.Vec3{X: size.X, Y: size.Y, Z: WallThickness},
		},
	}
}

// BuildPhysics hands the static geometry of every zone to sink in ascending
// zone id order and returns how many colliders were emitted.
func BuildPhysics(g *Graph, sink CollisionSink) int {
	if g == nil || sink == nil {
		return 0
	}
	n := 0
	for _, id := range g.ZoneIDs() {
		for _, c := range ZoneColliders(g.Zones[id]) {
			sink.AddStaticCollider(c)
			n++
		}
	}
	return n
}
