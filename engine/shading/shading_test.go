package shading

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/matrix_stack"
	"github.com/Carmen-Shannon/oxy-transform/engine/transform_pipeline"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestTransformUniformSize(t *testing.T) {
	var u TransformUniform
	assert.Equal(t, 272, u.Size())
	assert.Len(t, u.Marshal(), 272)
	assert.Equal(t, TransformUniformSize, u.Size())
}

func TestNewTransformUniformUnbound(t *testing.T) {
	_, err := NewTransformUniform(transform_pipeline.NewTransformPipeline(), common.Vector4{}, common.Vector4{})
	assert.ErrorIs(t, err, transform_pipeline.ErrNotBound)
}

func TestNewTransformUniformLayout(t *testing.T) {
	mv := matrix_stack.NewMatrixStack()
	proj := matrix_stack.NewMatrixStack()
	mv.LoadMatrix(common.Mul4(common.Translation(0, 0, -5), common.Scale(1, 2, 1)))
	proj.LoadMatrix(common.Perspective(1, 1.5, 1, 100))
	p := transform_pipeline.NewTransformPipeline(transform_pipeline.WithMatrixStacks(mv, proj))

	color := common.Vec4(0.2, 0.4, 0.6, 1)
	light := common.Vec4(0, 10, 5, 1)
	u, err := NewTransformUniform(p, color, light)
	require.NoError(t, err)

	mvp, _ := p.ModelViewProjectionMatrix()
	normal, _ := p.NormalMatrix()
	assert.Equal(t, [16]float32(mvp), u.MVP)
	assert.Equal(t, [16]float32(mv.Top()), u.ModelView)
	assert.Equal(t, [16]float32(proj.Top()), u.Projection)

	buf := u.Marshal()
	assert.Equal(t, mvp[5], floatAt(buf, 5*4))
	assert.Equal(t, mv.Top()[14], floatAt(buf, 64+14*4))
	assert.Equal(t, proj.Top()[11], floatAt(buf, 128+11*4))

	for c := range 3 {
		for r := range 3 {
			assert.Equal(t, normal.At(r, c), floatAt(buf, 192+c*16+r*4))
		}
		assert.Zero(t, floatAt(buf, 192+c*16+12))
	}
	assert.Equal(t, float32(0.4), floatAt(buf, 240+4))
	assert.Equal(t, float32(10), floatAt(buf, 256+4))
}

func TestModeNamesAndSources(t *testing.T) {
	for _, m := range []Mode{Flat, PointLightDiffuse} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)

		src, err := m.Source()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(src, TransformUniformSource))
		assert.Contains(t, src, "fn vs_main")
		assert.Contains(t, src, "fn fs_main")
	}

	_, err := ParseMode("phong")
	assert.Error(t, err)
	_, err = Mode(7).Source()
	assert.Error(t, err)
}
