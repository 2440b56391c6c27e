package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
)

const defaultCameraMargin = 0.08

// NewCamera creates the top-down camera. It asks to be fitted to the first
// level it sees.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("camera: nil world")
	}
	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{
		Zoom:   1,
		Margin: defaultCameraMargin,
		Fit:    true,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return camera, nil
}

// RequestCameraFit flags every camera to reframe the level on its next update.
func RequestCameraFit(w *ecs.World) error {
	if w == nil {
		return fmt.Errorf("camera: nil world")
	}
	var errs []error
	for _, e := range w.Query(component.CameraComponent.Kind()) {
		cam, ok := ecs.Get(w, e, component.CameraComponent)
		if !ok {
			continue
		}
		cam.Fit = true
		if err := ecs.Add(w, e, component.CameraComponent, cam); err != nil {
			errs = append(errs, fmt.Errorf("camera %s: %w", e, err))
		}
	}
	return errors.Join(errs...)
}
