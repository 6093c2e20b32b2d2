package matrix_stack

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

// DefaultCapacity is the number of slots a stack holds when no capacity is configured.
const DefaultCapacity = 64

var (
	// ErrStackOverflow is returned when a push would exceed the stack's capacity.
	ErrStackOverflow = errors.New("matrix stack overflow")

	// ErrStackUnderflow is returned when a pop would remove the identity floor.
	ErrStackUnderflow = errors.New("matrix stack underflow")
)

// ModelMatrixSource is anything that can place an object, such as a frame.Frame.
type ModelMatrixSource interface {
	ModelMatrix() common.Matrix4
}

// MatrixStack is a bounded LIFO of 4x4 matrices for one transform channel (model-view or projection).
// It starts with a single identity entry that can be replaced but never popped. Pushes past
// capacity and pops of the floor fail with ErrStackOverflow and ErrStackUnderflow instead of
// silently truncating. A MatrixStack is not safe for concurrent use.
type MatrixStack interface {
	// LoadIdentity replaces the top with the identity matrix.
	LoadIdentity()

	// LoadMatrix replaces the top with m.
	//
	// Parameters:
	//   - m: the matrix to load
	LoadMatrix(m common.Matrix4)

	// LoadFrame replaces the top with the frame's model matrix.
	//
	// Parameters:
	//   - src: the placement to load
	LoadFrame(src ModelMatrixSource)

	// PushIdentity appends an identity entry.
	//
	// Returns:
	//   - error: ErrStackOverflow if the stack is full
	PushIdentity() error

	// PushCopy duplicates the current top.
	//
	// Returns:
	//   - error: ErrStackOverflow if the stack is full
	PushCopy() error

	// PushMultiply duplicates the current top multiplied by m (top * m).
	//
	// Parameters:
	//   - m: the matrix composed onto the duplicated top
	//
	// Returns:
	//   - error: ErrStackOverflow if the stack is full
	PushMultiply(m common.Matrix4) error

	// PushLoad appends m as the new top without composing it with the current top.
	//
	// Parameters:
	//   - m: the matrix to push
	//
	// Returns:
	//   - error: ErrStackOverflow if the stack is full
	PushLoad(m common.Matrix4) error

	// Pop removes the top entry.
	//
	// Returns:
	//   - error: ErrStackUnderflow if only the identity floor remains
	Pop() error

	// MultiplyTop replaces the top with top * m, so m is applied to geometry before
	// everything already composed on the stack.
	//
	// Parameters:
	//   - m: the local transform to compose
	MultiplyTop(m common.Matrix4)

	// MultiplyFrame composes the frame's model matrix onto the top.
	//
	// Parameters:
	//   - src: the placement to compose
	MultiplyFrame(src ModelMatrixSource)

	// Translate composes a translation onto the top.
	//
	// Parameters:
	//   - x, y, z: translation in the current local space
	Translate(x, y, z float32)

	// Rotate composes a rotation onto the top.
	//
	// Parameters:
	//   - angle: rotation angle in radians
	//   - x, y, z: rotation axis in the current local space
	Rotate(angle, x, y, z float32)

	// Scale composes a scale onto the top.
	//
	// Parameters:
	//   - x, y, z: scale factors
	Scale(x, y, z float32)

	// Top returns a copy of the current composed transform.
	//
	// Returns:
	//   - common.Matrix4: the top of the stack
	Top() common.Matrix4

	// Depth returns the number of entries, including the identity floor.
	//
	// Returns:
	//   - int: the current depth (always >= 1)
	Depth() int

	// Capacity returns the maximum depth.
	//
	// Returns:
	//   - int: the capacity
	Capacity() int
}

type matrixStack struct {
	slots    []common.Matrix4
	capacity int
}

var _ MatrixStack = &matrixStack{}

// NewMatrixStack creates a MatrixStack holding a single identity entry.
//
// Parameters:
//   - options: functional options to configure the stack
//
// Returns:
//   - MatrixStack: the newly created stack
func NewMatrixStack(options ...MatrixStackBuilderOption) MatrixStack {
	s := &matrixStack{
		capacity: DefaultCapacity,
	}
	for _, option := range options {
		option(s)
	}
	s.slots = make([]common.Matrix4, 1, s.capacity)
	s.slots[0] = common.Identity4()
	return s
}

func (s *matrixStack) LoadIdentity() {
	s.slots[len(s.slots)-1] = common.Identity4()
}

func (s *matrixStack) LoadMatrix(m common.Matrix4) {
	s.slots[len(s.slots)-1] = m
}

func (s *matrixStack) LoadFrame(src ModelMatrixSource) {
	s.LoadMatrix(src.ModelMatrix())
}

func (s *matrixStack) PushIdentity() error {
	return s.push(common.Identity4())
}

func (s *matrixStack) PushCopy() error {
	return s.push(s.Top())
}

func (s *matrixStack) PushMultiply(m common.Matrix4) error {
	return s.push(common.Mul4(s.Top(), m))
}

func (s *matrixStack) PushLoad(m common.Matrix4) error {
	return s.push(m)
}

func (s *matrixStack) Pop() error {
	if len(s.slots) <= 1 {
		return fmt.Errorf("%w: cannot pop the identity floor", ErrStackUnderflow)
	}
	s.slots = s.slots[:len(s.slots)-1]
	return nil
}

func (s *matrixStack) MultiplyTop(m common.Matrix4) {
	top := len(s.slots) - 1
	s.slots[top] = common.Mul4(s.slots[top], m)
}

func (s *matrixStack) MultiplyFrame(src ModelMatrixSource) {
	s.MultiplyTop(src.ModelMatrix())
}

func (s *matrixStack) Translate(x, y, z float32) {
	s.MultiplyTop(common.Translation(x, y, z))
}

func (s *matrixStack) Rotate(angle, x, y, z float32) {
	s.MultiplyTop(common.Rotation(angle, x, y, z))
}

func (s *matrixStack) Scale(x, y, z float32) {
	s.MultiplyTop(common.Scale(x, y, z))
}

func (s *matrixStack) Top() common.Matrix4 {
	return s.slots[len(s.slots)-1]
}

func (s *matrixStack) Depth() int {
	return len(s.slots)
}

func (s *matrixStack) Capacity() int {
	return s.capacity
}

// push appends m unless the stack is full; a full stack is left untouched.
func (s *matrixStack) push(m common.Matrix4) error {
	if len(s.slots) >= s.capacity {
		return fmt.Errorf("%w: depth %d reached capacity %d", ErrStackOverflow, len(s.slots), s.capacity)
	}
	s.slots = append(s.slots, m)
	return nil
}
