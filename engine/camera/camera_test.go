package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_PerspectiveIdempotent(t *testing.T) {
	for name, c := range map[string]Camera{
		"fixed":  NewFixedCamera(),
		"flying": NewFlyingCamera(),
	} {
		t.Run(name, func(t *testing.T) {
			first := c.Perspective()
			second := c.Perspective()
			assert.Equal(t, first, second)
			assert.Equal(t, c.View(), c.View())
		})
	}
}

func TestCamera_defaults(t *testing.T) {
	c := NewFlyingCamera()

	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 1}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Direction())
	assert.Equal(t, common.Perspective(math.Pi/2, 1024.0/768.0, 0.1, 1024), c.Perspective())
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewFixedCamera(WithAspect(1))
	before := c.Perspective()

	c.SetAspect(2)
	assert.NotEqual(t, before, c.Perspective())

	c.SetAspect(0)
	assert.Equal(t, common.Perspective(math.Pi/2, 2, 0.1, 1024), c.Perspective())
}

func TestFixedCamera_ignoresInput(t *testing.T) {
	c := NewFixedCamera(WithPosition(mgl32.Vec3{4.5, 4.5, 12}))
	p, v := c.Perspective(), c.View()

	c.ProcessInput(input.Key{Code: common.KeyW, Pressed: true})
	c.ProcessInput(input.MouseButton{Button: common.MouseButtonMiddle, Pressed: true})
	c.ProcessInput(input.PointerMoved{X: 300, Y: 10})
	c.Update(1)

	assert.Equal(t, p, c.Perspective())
	assert.Equal(t, v, c.View())
	assert.Equal(t, mgl32.Vec3{4.5, 4.5, 12}, c.Position())
}

func TestFlyingCamera_ProcessInputIdempotent(t *testing.T) {
	once := NewFlyingCamera()
	twice := NewFlyingCamera()

	ev := input.Key{Code: common.KeyW, Pressed: true}
	once.ProcessInput(ev)
	twice.ProcessInput(ev)
	twice.ProcessInput(ev)

	assert.Equal(t, once, twice)

	once.Update(0.5)
	twice.Update(0.5)
	assert.Equal(t, once.Position(), twice.Position())
}

func TestFlyingCamera_ProcessInputDoesNotMove(t *testing.T) {
	c := NewFlyingCamera()
	p, v := c.Perspective(), c.View()

	c.ProcessInput(input.Key{Code: common.KeyW, Pressed: true})

	assert.Equal(t, p, c.Perspective())
	assert.Equal(t, v, c.View())
}

func TestFlyingCamera_UpdateMoves(t *testing.T) {
	c := NewFlyingCamera(WithMoveSpeed(2))

	c.ProcessInput(input.Key{Code: common.KeyW, Pressed: true})
	c.Update(1)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, -1}, c.Position())

	c.ProcessInput(input.Key{Code: common.KeyW, Pressed: false})
	c.Update(1)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, -1}, c.Position())
}

func TestFlyingCamera_strafeAndRise(t *testing.T) {
	c := NewFlyingCamera(WithPosition(mgl32.Vec3{}), WithMoveSpeed(1))

	c.ProcessInput(input.Key{Code: common.KeyD, Pressed: true})
	c.Update(1)
	assert.InDelta(t, 1, c.Position().X(), 1e-6)

	c.ProcessInput(input.Key{Code: common.KeyD, Pressed: false})
	c.ProcessInput(input.Key{Code: common.KeyUp, Pressed: true})
	c.Update(1)
	assert.InDelta(t, 1, c.Position().Y(), 1e-6)
}

func TestFlyingCamera_upParallelToForwardStaysFinite(t *testing.T) {
	c := NewFlyingCamera(WithPosition(mgl32.Vec3{1, 2, 3}), WithUp(mgl32.Vec3{0, 0, -1}), WithMoveSpeed(1))

	c.ProcessInput(input.Key{Code: common.KeyD, Pressed: true})
	c.ProcessInput(input.Key{Code: common.KeyA, Pressed: true})
	c.Update(1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())

	c.ProcessInput(input.Key{Code: common.KeyA, Pressed: false})
	c.ProcessInput(input.Key{Code: common.KeyW, Pressed: true})
	c.Update(1)
	pos := c.Position()
	for i := range 3 {
		assert.False(t, math.IsNaN(float64(pos[i])), "position[%d] is NaN", i)
	}
	assert.InDelta(t, 2, pos.Z(), 1e-6)
}

func TestCamera_WithUpIgnoresZero(t *testing.T) {
	c := NewFlyingCamera(WithPosition(mgl32.Vec3{}), WithUp(mgl32.Vec3{}), WithMoveSpeed(1))

	c.ProcessInput(input.Key{Code: common.KeyD, Pressed: true})
	c.Update(1)
	assert.InDelta(t, 1, c.Position().X(), 1e-6)
	for _, v := range c.View() {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestFlyingCamera_middleDragLooks(t *testing.T) {
	c := NewFlyingCamera(WithSensitivity(0.1))

	c.ProcessInput(input.MouseButton{Button: common.MouseButtonMiddle, Pressed: true})
	c.Update(0)
	require.Equal(t, mgl32.Vec3{0, 0, -1}, c.Direction())

	c.ProcessInput(input.PointerMoved{X: 10, Y: 0})
	c.Update(0)

	dir := c.Direction()
	assert.Greater(t, dir.X(), float32(0))
	assert.InDelta(t, math.Sin(float64(mgl32.DegToRad(1))), dir.X(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 1}, c.Position())
}

func TestFlyingCamera_pointerWithoutButtonDoesNotLook(t *testing.T) {
	c := NewFlyingCamera()

	c.ProcessInput(input.PointerMoved{X: 10, Y: 10})
	c.Update(0)
	c.ProcessInput(input.PointerMoved{X: 200, Y: 50})
	c.Update(0)

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Direction())
}

func TestCamera_WithDirectionClampsPitch(t *testing.T) {
	c := NewFixedCamera(WithDirection(mgl32.Vec3{0, 1, 0}))
	assert.InDelta(t, math.Sin(float64(mgl32.DegToRad(89))), c.Direction().Y(), 1e-6)
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	u := NewFixedCamera(WithPosition(mgl32.Vec3{1, 2, 3})).Uniform()
	buf := u.Marshal()

	require.Len(t, buf, 144)
	assert.Equal(t, 144, u.Size())
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, common.StructToBytes(&u), buf)
	assert.NotEmpty(t, GPUCameraUniformSource)
}
