package camera

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
)

// Action is a discrete frame mutation a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	ActionMoveForward
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionTurnLeft
	ActionTurnRight
	ActionTiltUp
	ActionTiltDown
	ActionPitchUp
	ActionPitchDown
	ActionRollLeft
	ActionRollRight
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionMoveForward:  "move_forward",
	ActionMoveBackward: "move_backward",
	ActionMoveLeft:     "move_left",
	ActionMoveRight:    "move_right",
	ActionMoveUp:       "move_up",
	ActionMoveDown:     "move_down",
	ActionTurnLeft:     "turn_left",
	ActionTurnRight:    "turn_right",
	ActionTiltUp:       "tilt_up",
	ActionTiltDown:     "tilt_down",
	ActionPitchUp:      "pitch_up",
	ActionPitchDown:    "pitch_down",
	ActionRollLeft:     "roll_left",
	ActionRollRight:    "roll_right",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves an action from its snake_case name, as used in key binding configuration.
//
// Parameters:
//   - name: the action name, case-insensitive
//
// Returns:
//   - Action: the matching action
//   - error: non-nil when no action has that name
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown camera action %q", name)
}

// CameraController maps key codes to discrete mutations of a target frame.
// Linear actions move by a fixed step along the frame's own axes. Turn and tilt rotate about
// world Y and world X through the frame's origin; pitch and roll rotate about the frame's
// local right and backward axes.
type CameraController interface {
	// Target returns the frame the controller mutates, or nil.
	//
	// Returns:
	//   - frame.Frame: the target frame
	Target() frame.Frame

	// SetTarget points the controller at a frame. Cameras and game objects can both be driven.
	//
	// Parameters:
	//   - f: the frame to mutate
	SetTarget(f frame.Frame)

	// Bind maps a key code to an action, replacing any earlier binding of that key.
	// Binding ActionNone removes the key.
	//
	// Parameters:
	//   - keyCode: the platform key code
	//   - action: the action to perform on key down
	Bind(keyCode uint32, action Action)

	// Binding returns the action bound to a key code.
	//
	// Parameters:
	//   - keyCode: the platform key code
	//
	// Returns:
	//   - Action: the bound action
	//   - bool: false when the key is unbound
	Binding(keyCode uint32) (Action, bool)

	// HandleKeyDown performs the action bound to a key.
	//
	// Parameters:
	//   - keyCode: the platform key code
	//
	// Returns:
	//   - bool: true if the key was bound and the target was mutated
	HandleKeyDown(keyCode uint32) bool

	// HandleScroll dollies the target along its forward axis by delta times the linear step.
	//
	// Parameters:
	//   - delta: scroll offset, positive moves forward
	HandleScroll(delta float32)

	// Apply performs an action on the target directly.
	//
	// Parameters:
	//   - action: the action to perform
	//
	// Returns:
	//   - bool: false for ActionNone or when no target is set
	Apply(action Action) bool

	// LinearStep returns the distance moved per linear action.
	LinearStep() float32

	// AngularStep returns the angle in radians turned per rotational action.
	AngularStep() float32
}
