package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() []GPUVertex {
	return []GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{2, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0, 4, 0}, Normal: [3]float32{0, 0, 1}},
	}
}

func TestMesh_basics(t *testing.T) {
	m := NewMesh("tri", triangle())

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, 3, m.VertexCount())
	assert.Len(t, m.VertexData(), 72)

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, lo)
	assert.Equal(t, mgl32.Vec3{2, 4, 0}, hi)
	assert.Equal(t, float32(4), m.BoundingRadius())
}

func TestMesh_WithScale(t *testing.T) {
	m := NewMesh("tri", triangle(), WithScale(0.5))

	assert.Equal(t, [3]float32{1, 0, 0}, m.Vertices()[1].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, m.Vertices()[1].Normal)
}

func TestMesh_WithRecenter(t *testing.T) {
	m := NewMesh("tri", triangle(), WithRecenter())

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, hi)
}

func TestMesh_empty(t *testing.T) {
	m := NewMesh("empty", nil)
	lo, hi := m.Bounds()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.Nil(t, m.VertexData())
}

func TestGPUVertex_Marshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}}
	buf := v.Marshal()

	require.Len(t, buf, 24)
	assert.Equal(t, 24, v.Size())
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[0:4])
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[16:20])
	assert.NotEmpty(t, GPUVertexSource)
}
