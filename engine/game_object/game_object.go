package game_object

import (
	"sync/atomic"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

type gameObject struct {
	id        uint64
	enabled   atomic.Bool
	batch     string
	placement frame.Frame
	scale     common.Vector3
	radius    float32
	color     common.Vector4
	mode      shading.Mode
	children  []GameObject

	spinAxis  common.Vector3
	spinSpeed float32 // radians per second
	spinAngle float32
}

// GameObject is a drawable entity placed by its own reference frame.
// Rendering composes, innermost first: scale, then the spin rotation, then the frame's model
// matrix. Children are placed relative to the parent's frame and ignore the parent's spin and scale.
type GameObject interface {
	// ID returns the object's identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is drawn. Safe to call from any goroutine.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// Frame returns the frame that places the object in its parent's space.
	//
	// Returns:
	//   - frame.Frame: the placement frame
	Frame() frame.Frame

	// Batch returns the key of the vertex batch the renderer draws for this object.
	//
	// Returns:
	//   - string: the batch key
	Batch() string

	// Scale returns the per-axis scale applied before the spin.
	//
	// Returns:
	//   - common.Vector3: the scale
	Scale() common.Vector3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - x, y, z: scale factors
	SetScale(x, y, z float32)

	// Spin returns the spin axis, angular speed in radians per second, and the current angle.
	//
	// Returns:
	//   - axis: the spin axis in the object's frame
	//   - speed: radians per second
	//   - angle: the accumulated angle in [0, 2π)
	Spin() (axis common.Vector3, speed, angle float32)

	// SetSpin sets the spin speed and axis. The accumulated angle is kept.
	//
	// Parameters:
	//   - speed: radians per second
	//   - x, y, z: the spin axis
	SetSpin(speed, x, y, z float32)

	// Update advances the spin of this object and its children.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// Color returns the RGBA surface colour.
	//
	// Returns:
	//   - common.Vector4: the colour
	Color() common.Vector4

	// SetColor sets the RGBA surface colour.
	//
	// Parameters:
	//   - color: the colour
	SetColor(color common.Vector4)

	// Mode returns the shading mode.
	//
	// Returns:
	//   - shading.Mode: the shading mode
	Mode() shading.Mode

	// BoundingRadius returns the mesh's bounding sphere radius before scaling.
	//
	// Returns:
	//   - float32: the radius
	BoundingRadius() float32

	// Extent returns the radius, measured in the parent's space from the frame origin, of a
	// sphere enclosing this object and all of its children.
	//
	// Returns:
	//   - float32: the enclosing radius
	Extent() float32

	// Children returns the sub-parts composed relative to this object's frame.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// AddChild attaches a sub-part.
	//
	// Parameters:
	//   - child: the object to attach
	AddChild(child GameObject)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject with unit scale, a white colour and no spin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale:    common.Vec3(1, 1, 1),
		radius:   1,
		color:    common.Vec4(1, 1, 1, 1),
		spinAxis: common.Vec3(0, 1, 0),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.placement == nil {
		obj.placement = frame.NewFrame()
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Frame() frame.Frame {
	return g.placement
}

func (g *gameObject) Batch() string {
	return g.batch
}

func (g *gameObject) Scale() common.Vector3 {
	return g.scale
}

func (g *gameObject) SetScale(x, y, z float32) {
	g.scale = common.Vec3(x, y, z)
}

func (g *gameObject) Spin() (common.Vector3, float32, float32) {
	return g.spinAxis, g.spinSpeed, g.spinAngle
}

func (g *gameObject) SetSpin(speed, x, y, z float32) {
	g.spinSpeed = speed
	if axis := common.Vec3(x, y, z); axis.Len() > common.Epsilon {
		g.spinAxis = axis.Normalize()
	}
}

func (g *gameObject) Update(dt float32) {
	if g.spinSpeed != 0 {
		g.spinAngle = math32.Mod(g.spinAngle+g.spinSpeed*dt, 2*math32.Pi)
		if g.spinAngle < 0 {
			g.spinAngle += 2 * math32.Pi
		}
	}
	for _, child := range g.children {
		child.Update(dt)
	}
}

func (g *gameObject) Color() common.Vector4 {
	return g.color
}

func (g *gameObject) SetColor(color common.Vector4) {
	g.color = color
}

func (g *gameObject) Mode() shading.Mode {
	return g.mode
}

func (g *gameObject) BoundingRadius() float32 {
	return g.radius
}

func (g *gameObject) Extent() float32 {
	s := g.scale
	extent := g.radius * max(math32.Abs(s[0]), math32.Abs(s[1]), math32.Abs(s[2]))
	for _, child := range g.children {
		extent = max(extent, child.Frame().Origin().Len()+child.Extent())
	}
	return extent
}

func (g *gameObject) Children() []GameObject {
	return g.children
}

func (g *gameObject) AddChild(child GameObject) {
	if child != nil {
		g.children = append(g.children, child)
	}
}
