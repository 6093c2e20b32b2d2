package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("uniform 0", WithIndexCount(36))
	assert.Equal(t, "uniform 0", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Equal(t, 36, p.IndexCount())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("cube")
	p.SetIndexCount(12)
	p.SetBuffer(0, nil)

	assert.NotPanics(t, p.Release)
	assert.Equal(t, 0, p.IndexCount())
	assert.Nil(t, p.Buffer(0))
}
