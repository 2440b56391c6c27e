package component

// LevelBounds stores the XZ extent of the current level.
type LevelBounds struct {
	MinX float64
	MinZ float64
	MaxX float64
	MaxZ float64
}

func (b LevelBounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b LevelBounds) Depth() float64 {
	return b.MaxZ - b.MinZ
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
