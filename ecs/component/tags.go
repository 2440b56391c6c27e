package component

type SpawnTag struct{}

var SpawnTagComponent = NewComponent[SpawnTag]()

type ObjectiveTag struct{}

var ObjectiveTagComponent = NewComponent[ObjectiveTag]()

// LevelTag marks every entity spawned from a level graph so the whole level
// can be torn down before loading the next one.
type LevelTag struct{}

var LevelTagComponent = NewComponent[LevelTag]()
