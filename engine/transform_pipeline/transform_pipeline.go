package transform_pipeline

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

// ErrNotBound is returned when the pipeline is queried before both stacks are bound.
var ErrNotBound = errors.New("transform pipeline has no bound matrix stacks")

// rigidTolerance bounds how far the model-view 3x3 may stray from orthonormal and still
// be used directly as the normal matrix.
const rigidTolerance float32 = 1e-4

// Stack is the read-only view of a matrix stack the pipeline borrows.
// matrix_stack.MatrixStack satisfies it.
type Stack interface {
	Top() common.Matrix4
}

// TransformPipeline fuses a model-view stack and a projection stack into the matrices a
// shading stage consumes. It holds non-owning references only, never mutates the stacks,
// and recomputes every derived matrix on request.
type TransformPipeline interface {
	// Bind associates the pipeline with one stack per channel, replacing any prior binding.
	// Passing a nil stack leaves the pipeline unbound.
	//
	// Parameters:
	//   - modelView: the model-view stack
	//   - projection: the projection stack
	Bind(modelView, projection Stack)

	// Bound reports whether both stacks are bound.
	//
	// Returns:
	//   - bool: true once Bind has been given two non-nil stacks
	Bound() bool

	// ModelViewMatrix returns the model-view stack's current top.
	//
	// Returns:
	//   - common.Matrix4: the model-view matrix
	//   - error: ErrNotBound before binding
	ModelViewMatrix() (common.Matrix4, error)

	// ProjectionMatrix returns the projection stack's current top.
	//
	// Returns:
	//   - common.Matrix4: the projection matrix
	//   - error: ErrNotBound before binding
	ProjectionMatrix() (common.Matrix4, error)

	// ModelViewProjectionMatrix returns projection * model-view, placing object-space
	// geometry directly into clip space.
	//
	// Returns:
	//   - common.Matrix4: the combined matrix
	//   - error: ErrNotBound before binding
	ModelViewProjectionMatrix() (common.Matrix4, error)

	// NormalMatrix returns the inverse-transpose of the model-view upper 3x3, which keeps
	// normals perpendicular to surfaces under non-uniform scale. A rigid model-view (rotation
	// and translation only) returns its 3x3 directly. A singular 3x3 also falls back to the
	// direct 3x3, since it has no inverse.
	//
	// Returns:
	//   - common.Matrix3: the normal matrix
	//   - error: ErrNotBound before binding
	NormalMatrix() (common.Matrix3, error)
}

type transformPipeline struct {
	modelView  Stack
	projection Stack
}

var _ TransformPipeline = &transformPipeline{}

// NewTransformPipeline creates an unbound TransformPipeline.
//
// Parameters:
//   - options: functional options to configure the pipeline
//
// Returns:
//   - TransformPipeline: the newly created pipeline
func NewTransformPipeline(options ...TransformPipelineBuilderOption) TransformPipeline {
	p := &transformPipeline{}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *transformPipeline) Bind(modelView, projection Stack) {
	p.modelView = modelView
	p.projection = projection
}

func (p *transformPipeline) Bound() bool {
	return p.modelView != nil && p.projection != nil
}

func (p *transformPipeline) ModelViewMatrix() (common.Matrix4, error) {
	if !p.Bound() {
		return common.Matrix4{}, ErrNotBound
	}
	return p.modelView.Top(), nil
}

func (p *transformPipeline) ProjectionMatrix() (common.Matrix4, error) {
	if !p.Bound() {
		return common.Matrix4{}, ErrNotBound
	}
	return p.projection.Top(), nil
}

func (p *transformPipeline) ModelViewProjectionMatrix() (common.Matrix4, error) {
	if !p.Bound() {
		return common.Matrix4{}, ErrNotBound
	}
	return common.Mul4(p.projection.Top(), p.modelView.Top()), nil
}

func (p *transformPipeline) NormalMatrix() (common.Matrix3, error) {
	if !p.Bound() {
		return common.Matrix3{}, ErrNotBound
	}
	m := common.Upper3x3(p.modelView.Top())
	if m.IsOrthonormal(rigidTolerance) {
		return m, nil
	}
	inv, ok := common.Invert3(m)
	if !ok {
		return m, nil
	}
	return common.Transpose3(inv), nil
}
