package component

// LevelLoaded is added to the bounds entity once every zone, door and collider
// of a level has been spawned.
type LevelLoaded struct {
	Seed        uint64
	Fingerprint uint64
	Zones       int
	Colliders   int
}

var LevelLoadedComponent = NewComponent[LevelLoaded]()
