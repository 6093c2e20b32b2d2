package camera

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
)

const (
	DefaultLinearStep         float32 = 0.1
	DefaultAngularStepDegrees float32 = 5
)

// DefaultBindings returns the stock key map: arrow keys walk and turn, WASD moves, Q/E drop and
// raise, page up/down tilt about world X, R/F pitch and Z/X roll.
//
// Returns:
//   - map[uint32]Action: a fresh key code to action map
func DefaultBindings() map[uint32]Action {
	return map[uint32]Action{
		common.KeyUp:       ActionMoveForward,
		common.KeyDown:     ActionMoveBackward,
		common.KeyLeft:     ActionTurnLeft,
		common.KeyRight:    ActionTurnRight,
		common.KeyW:        ActionMoveForward,
		common.KeyS:        ActionMoveBackward,
		common.KeyA:        ActionMoveLeft,
		common.KeyD:        ActionMoveRight,
		common.KeyQ:        ActionMoveDown,
		common.KeyE:        ActionMoveUp,
		common.KeyPageUp:   ActionTiltUp,
		common.KeyPageDown: ActionTiltDown,
		common.KeyR:        ActionPitchUp,
		common.KeyF:        ActionPitchDown,
		common.KeyZ:        ActionRollLeft,
		common.KeyX:        ActionRollRight,
	}
}

type cameraControllerImpl struct {
	target      frame.Frame
	bindings    map[uint32]Action
	linearStep  float32
	angularStep float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a CameraController with the default bindings and steps.
// Without WithTarget the controller does nothing until a target is set or it is attached to a camera.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		bindings:    DefaultBindings(),
		linearStep:  DefaultLinearStep,
		angularStep: common.DegToRad(DefaultAngularStepDegrees),
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Target() frame.Frame {
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(f frame.Frame) {
	cc.target = f
}

func (cc *cameraControllerImpl) Bind(keyCode uint32, action Action) {
	if action == ActionNone {
		delete(cc.bindings, keyCode)
		return
	}
	cc.bindings[keyCode] = action
}

func (cc *cameraControllerImpl) Binding(keyCode uint32) (Action, bool) {
	action, ok := cc.bindings[keyCode]
	return action, ok
}

func (cc *cameraControllerImpl) HandleKeyDown(keyCode uint32) bool {
	action, ok := cc.bindings[keyCode]
	if !ok {
		return false
	}
	return cc.Apply(action)
}

func (cc *cameraControllerImpl) HandleScroll(delta float32) {
	if cc.target == nil || delta == 0 {
		return
	}
	cc.target.MoveForward(delta * cc.linearStep)
}

func (cc *cameraControllerImpl) Apply(action Action) bool {
	if cc.target == nil {
		return false
	}
	f, d, a := cc.target, cc.linearStep, cc.angularStep
	switch action {
	case ActionMoveForward:
		f.MoveForward(d)
	case ActionMoveBackward:
		f.MoveForward(-d)
	case ActionMoveLeft:
		f.MoveRight(-d)
	case ActionMoveRight:
		f.MoveRight(d)
	case ActionMoveUp:
		f.MoveUp(d)
	case ActionMoveDown:
		f.MoveUp(-d)
	case ActionTurnLeft:
		f.RotateWorld(a, 0, 1, 0)
	case ActionTurnRight:
		f.RotateWorld(-a, 0, 1, 0)
	case ActionTiltUp:
		f.RotateWorld(a, 1, 0, 0)
	case ActionTiltDown:
		f.RotateWorld(-a, 1, 0, 0)
	case ActionPitchUp:
		f.RotateLocal(a, 1, 0, 0)
	case ActionPitchDown:
		f.RotateLocal(-a, 1, 0, 0)
	// local +Z points backward, so a positive turn swings up toward the left
	case ActionRollLeft:
		f.RotateLocal(a, 0, 0, 1)
	case ActionRollRight:
		f.RotateLocal(-a, 0, 0, 1)
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) LinearStep() float32 {
	return cc.linearStep
}

func (cc *cameraControllerImpl) AngularStep() float32 {
	return cc.angularStep
}
