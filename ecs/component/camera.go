package component

// Camera looks straight down at the XZ plane. X and Z are the world point at
// the center of the screen.
type Camera struct {
	X    float64
	Z    float64
	Zoom float64
	// Margin is the fraction of the screen left empty around the level when fitting.
	Margin float64
	// Fit asks the camera system to frame the level bounds on its next update.
	Fit bool
}

var CameraComponent = NewComponent[Camera]()
