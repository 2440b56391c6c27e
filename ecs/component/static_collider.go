package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zonegen/levelgen"
)

// StaticCollider is an axis-aligned box centered on the entity transform.
// Width, Height and Depth are full extents along X, Y and Z.
type StaticCollider struct {
	Zone   levelgen.ZoneID
	Part   levelgen.ColliderPart
	Width  float64
	Height float64
	Depth  float64
	// Sensor shapes report overlap but never block.
	Sensor bool

	// Shape is filled in by the physics system once the collider is in the space.
	Shape *cp.Shape
}

var StaticColliderComponent = NewComponent[StaticCollider]()
