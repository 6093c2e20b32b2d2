package shading

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/transform_pipeline"
)

// TransformUniformSource is the canonical WGSL definition of the TransformUniform struct,
// its binding, the shared vertex input and the depth remap helper.
// Matches TransformUniform layout exactly (272 bytes, uniform address space).
//
//go:embed assets/transform_uniform.wgsl
var TransformUniformSource string

// TransformUniformSize is the byte size of TransformUniform and of its GPU buffer.
const TransformUniformSize = 272

// TransformUniform is the GPU-aligned block handed to a shader for one draw.
// Matches the WGSL TransformUniform struct layout exactly (see TransformUniformSource).
// Size: 272 bytes.
type TransformUniform struct {
	MVP        [16]float32 // offset   0: projection * model-view (mat4x4<f32>)
	ModelView  [16]float32 // offset  64: model-view (mat4x4<f32>)
	Projection [16]float32 // offset 128: projection (mat4x4<f32>)
	Normal     [12]float32 // offset 192: normal matrix, three columns padded to vec4 (mat3x3<f32>)
	Color      [4]float32  // offset 240: RGBA surface colour (vec4<f32>)
	Light      [4]float32  // offset 256: eye-space light position (vec4<f32>)
}

// NewTransformUniform samples a bound transform pipeline into a TransformUniform.
//
// Parameters:
//   - pipeline: a bound transform pipeline
//   - color: RGBA surface colour
//   - light: eye-space light position, ignored by Flat shading
//
// Returns:
//   - TransformUniform: the filled block
//   - error: transform_pipeline.ErrNotBound when the pipeline has no stacks
func NewTransformUniform(pipeline transform_pipeline.TransformPipeline, color, light common.Vector4) (TransformUniform, error) {
	var u TransformUniform
	mvp, err := pipeline.ModelViewProjectionMatrix()
	if err != nil {
		return u, fmt.Errorf("transform uniform: %w", err)
	}
	mv, err := pipeline.ModelViewMatrix()
	if err != nil {
		return u, fmt.Errorf("transform uniform: %w", err)
	}
	proj, err := pipeline.ProjectionMatrix()
	if err != nil {
		return u, fmt.Errorf("transform uniform: %w", err)
	}
	normal, err := pipeline.NormalMatrix()
	if err != nil {
		return u, fmt.Errorf("transform uniform: %w", err)
	}

	u.MVP = mvp
	u.ModelView = mv
	u.Projection = proj
	u.SetNormal(normal)
	u.Color = color
	u.Light = light
	return u, nil
}

// SetNormal stores a 3x3 normal matrix as three vec4-aligned columns.
//
// Parameters:
//   - m: the normal matrix
func (u *TransformUniform) SetNormal(m common.Matrix3) {
	for c := range 3 {
		col := m.Col(c)
		copy(u.Normal[c*4:c*4+3], col[:])
		u.Normal[c*4+3] = 0
	}
}

// Size returns the size of the TransformUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (272)
func (u *TransformUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the TransformUniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (u *TransformUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := 0
	put := func(vals []float32) {
		for _, v := range vals {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	put(u.MVP[:])
	put(u.ModelView[:])
	put(u.Projection[:])
	put(u.Normal[:])
	put(u.Color[:])
	put(u.Light[:])
	return buf
}
