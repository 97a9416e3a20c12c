package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceToBytes_length(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	require.Len(t, b, 12)
	assert.Nil(t, SliceToBytes([]float32{}))
}

func TestStructToBytes_length(t *testing.T) {
	v := struct{ A, B float32 }{1, 2}
	assert.Len(t, StructToBytes(&v), 8)
}

func TestPerspective_depthRange(t *testing.T) {
	p := Perspective(mgl32.DegToRad(90), 1, 0.1, 100)

	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestPerspective_deterministic(t *testing.T) {
	a := Perspective(1.2, 4.0/3.0, 0.1, 1024)
	b := Perspective(1.2, 4.0/3.0, 0.1, 1024)
	assert.Equal(t, a, b)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
