package camera

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithLinearStep sets the distance moved per linear action.
//
// Parameters:
//   - step: distance in world units, ignored when not positive
//
// Returns:
//   - CameraControllerOption: functional option to set the linear step
func WithLinearStep(step float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if step > 0 {
			cc.linearStep = step
		}
	}
}

// WithAngularStep sets the angle turned per rotational action.
//
// Parameters:
//   - degrees: angle in degrees, ignored when not positive
//
// Returns:
//   - CameraControllerOption: functional option to set the angular step
func WithAngularStep(degrees float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if degrees > 0 {
			cc.angularStep = common.DegToRad(degrees)
		}
	}
}

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - bindings: key code to action map, copied
//
// Returns:
//   - CameraControllerOption: functional option to set the key bindings
func WithBindings(bindings map[uint32]Action) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = make(map[uint32]Action, len(bindings))
		for code, action := range bindings {
			if action != ActionNone {
				cc.bindings[code] = action
			}
		}
	}
}

// WithTarget sets the frame the controller mutates.
//
// Parameters:
//   - f: the target frame
//
// Returns:
//   - CameraControllerOption: functional option to set the target frame
func WithTarget(f frame.Frame) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = f
	}
}
