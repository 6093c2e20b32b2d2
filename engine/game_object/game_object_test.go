package game_object

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/frame"
	"github.com/Carmen-Shannon/oxy-transform/engine/shading"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	assert.NotNil(t, obj.Frame())
	assert.Equal(t, common.Vec3(1, 1, 1), obj.Scale())
	assert.Equal(t, common.Vec4(1, 1, 1, 1), obj.Color())
	assert.Equal(t, shading.Flat, obj.Mode())
	assert.Equal(t, float32(1), obj.BoundingRadius())
	assert.Empty(t, obj.Children())

	axis, speed, angle := obj.Spin()
	assert.Equal(t, common.Vec3(0, 1, 0), axis)
	assert.Zero(t, speed)
	assert.Zero(t, angle)
}

func TestBuilderOptions(t *testing.T) {
	f := frame.NewFrame(frame.WithOrigin(0, 0, -4))
	obj := NewGameObject(
		WithID(7),
		WithEnabled(false),
		WithFrame(f),
		WithBatch("sphere"),
		WithScale(2, 2, 2),
		WithSpin(1, 0, 0, 3),
		WithColor(0, 0, 1, 1),
		WithMode(shading.PointLightDiffuse),
		WithBoundingRadius(0.5),
	)
	assert.Equal(t, uint64(7), obj.ID())
	assert.False(t, obj.Enabled())
	assert.Same(t, f, obj.Frame())
	assert.Equal(t, "sphere", obj.Batch())
	assert.Equal(t, common.Vec3(2, 2, 2), obj.Scale())
	assert.Equal(t, common.Vec4(0, 0, 1, 1), obj.Color())
	assert.Equal(t, shading.PointLightDiffuse, obj.Mode())

	axis, speed, _ := obj.Spin()
	assert.Equal(t, common.Vec3(0, 0, 1), axis)
	assert.Equal(t, float32(1), speed)
}

func TestUpdateAdvancesAndWrapsSpin(t *testing.T) {
	obj := NewGameObject(WithSpin(math32.Pi, 0, 1, 0))
	obj.Update(0.5)
	_, _, angle := obj.Spin()
	assert.InDelta(t, math32.Pi/2, angle, 1e-5)

	obj.Update(2)
	_, _, angle = obj.Spin()
	assert.InDelta(t, math32.Pi/2, angle, 1e-5)

	back := NewGameObject(WithSpin(-math32.Pi, 0, 1, 0))
	back.Update(0.5)
	_, _, angle = back.Spin()
	assert.InDelta(t, 3*math32.Pi/2, angle, 1e-5)
}

func TestUpdateReachesChildren(t *testing.T) {
	child := NewGameObject(WithSpin(1, 0, 1, 0))
	parent := NewGameObject(WithChildren(child))
	parent.Update(0.25)
	_, _, angle := child.Spin()
	assert.InDelta(t, 0.25, angle, 1e-6)
}

func TestExtentCoversChildren(t *testing.T) {
	obj := NewGameObject(WithScale(1, 3, 1), WithBoundingRadius(0.5))
	assert.InDelta(t, 1.5, obj.Extent(), 1e-6)

	child := NewGameObject(
		WithFrame(frame.NewFrame(frame.WithOrigin(0.8, 0, 0))),
		WithScale(0.3, 0.3, 0.3),
	)
	parent := NewGameObject(WithBoundingRadius(0.5), WithChildren(child, nil))
	assert.Len(t, parent.Children(), 1)
	assert.InDelta(t, 1.1, parent.Extent(), 1e-6)
}

func TestSetters(t *testing.T) {
	obj := NewGameObject()
	obj.SetID(3)
	obj.SetEnabled(false)
	obj.SetScale(1, 2, 3)
	obj.SetColor(common.Vec4(1, 0, 0, 1))
	obj.SetSpin(2, 0, 0, 0)

	assert.Equal(t, uint64(3), obj.ID())
	assert.False(t, obj.Enabled())
	assert.Equal(t, common.Vec3(1, 2, 3), obj.Scale())
	assert.Equal(t, common.Vec4(1, 0, 0, 1), obj.Color())
	axis, speed, _ := obj.Spin()
	assert.Equal(t, common.Vec3(0, 1, 0), axis)
	assert.Equal(t, float32(2), speed)
}
