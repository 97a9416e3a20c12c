package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("camera")

	assert.Equal(t, "camera", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.Buffer(0))
	assert.Zero(t, p.VertexCount())
}

func TestProviderVertexCount(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithVertexBuffer(nil, 36))
	assert.Equal(t, 36, p.VertexCount())

	p.SetVertexCount(12)
	assert.Equal(t, 12, p.VertexCount())

	p.Release()
	assert.Zero(t, p.VertexCount())
}
