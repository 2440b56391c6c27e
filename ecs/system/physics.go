package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
)

const (
	collisionTypeFloor cp.CollisionType = iota + 1
	collisionTypeWall
)

// Filter categories. Floors only answer zone queries; walls block everything.
const (
	categoryWall uint = 1 << iota
	categoryFloor
	categoryQuery
)

const physicsStep = 1.0 / 60.0

// PhysicsSystem mirrors static collider entities into a Chipmunk space. The
// level is laid flat: level X maps to space X and level Z to space Y.
type PhysicsSystem struct {
	space *cp.Space

	entities map[ecs.Entity]*cp.Shape
	// floors maps floor shapes back to their zone.
	floors map[*cp.Shape]levelgen.ZoneID
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*cp.Shape),
		floors:   make(map[*cp.Shape]levelgen.ZoneID),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// ShapeCount returns the number of collider shapes in the space.
func (ps *PhysicsSystem) ShapeCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.entities = make(map[ecs.Entity]*cp.Shape)
		ps.floors = make(map[*cp.Shape]levelgen.ZoneID)
	}

	ps.cleanupEntities(w)
	ps.syncColliders(w)
	ps.space.Step(physicsStep)
}

func (ps *PhysicsSystem) syncColliders(w *ecs.World) {
	entities := w.Query(component.StaticColliderComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		collider, ok := ecs.Get(w, e, component.StaticColliderComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		if err := ps.addCollider(w, e, transform, collider); err != nil {
			log.Printf("physics: skipping collider on %s: %v", e, err)
		}
	}
}

// addCollider puts the shape for one collider into the space and records it
// on the entity. The shape is withdrawn again if the entity cannot take it.
func (ps *PhysicsSystem) addCollider(w *ecs.World, e ecs.Entity, t component.Transform, c component.StaticCollider) error {
	shape := ps.createShape(t, c)
	c.Shape = shape
	if err := ecs.Add(w, e, component.StaticColliderComponent, c); err != nil {
		ps.space.RemoveShape(shape)
		return err
	}
	ps.entities[e] = shape
	if c.Sensor {
		ps.floors[shape] = c.Zone
	}
	return nil
}

func (ps *PhysicsSystem) createShape(t component.Transform, c component.StaticCollider) *cp.Shape {
	halfW := c.Width / 2
	halfD := c.Depth / 2
	bb := cp.BB{L: t.X - halfW, B: t.Z - halfD, R: t.X + halfW, T: t.Z + halfD}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)

	if c.Sensor {
		shape.SetCollisionType(collisionTypeFloor)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryFloor, categoryQuery))
	} else {
		shape.SetCollisionType(collisionTypeWall)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryWall, cp.ALL_CATEGORIES&^categoryFloor))
	}
	ps.space.AddShape(shape)
	return shape
}

// ZoneAt returns the zone whose floor covers the level point (x, z). Where
// floors overlap the one the point lies deepest inside wins.
func (ps *PhysicsSystem) ZoneAt(x, z float64) (levelgen.ZoneID, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, categoryQuery, categoryFloor)
	info := ps.space.PointQueryNearest(cp.Vector{X: x, Y: z}, 0, filter)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	return ps.floorZone(info.Shape)
}

func (ps *PhysicsSystem) floorZone(shape *cp.Shape) (levelgen.ZoneID, bool) {
	if ps == nil || shape == nil {
		return 0, false
	}
	id, ok := ps.floors[shape]
	return id, ok
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, shape := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.StaticColliderComponent) {
			continue
		}
		if shape != nil {
			ps.space.RemoveShape(shape)
			delete(ps.floors, shape)
		}
		delete(ps.entities, e)
	}
}
