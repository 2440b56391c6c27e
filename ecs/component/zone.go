package component

import "github.com/milk9111/zonegen/levelgen"

// ZoneInfo describes the room an entity stands for.
type ZoneInfo struct {
	ID          levelgen.ZoneID
	Type        levelgen.ZoneType
	Width       float64
	Height      float64
	Depth       float64
	Hops        int
	Connections []levelgen.ZoneID
}

var ZoneInfoComponent = NewComponent[ZoneInfo]()

// Door is a passage between two zones, placed at the entity transform.
type Door struct {
	From levelgen.ZoneID
	To   levelgen.ZoneID
}

var DoorComponent = NewComponent[Door]()
