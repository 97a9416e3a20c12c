package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline_defaults(t *testing.T) {
	p := NewPipeline("instanced")

	assert.Equal(t, "instanced", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.Pipeline())
	assert.ErrorIs(t, p.Validate(), ErrMissingShader)
}

func TestNewPipeline_options(t *testing.T) {
	p := NewPipeline("overlay",
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(nil),
	)

	assert.Equal(t, wgpu.CompareFunctionAlways, p.DepthCompare())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.Nil(t, p.BlendState())
}

func TestNewPipeline_WithProgram(t *testing.T) {
	prog, err := shader.NewProgram(shader.ProgramStatic)
	require.NoError(t, err)

	p := NewPipeline("instanced", WithProgram(prog))
	require.NoError(t, p.Validate())
	assert.Equal(t, prog.Vertex, p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, prog.Fragment, p.Shader(shader.ShaderTypeFragment))
	assert.Nil(t, p.Shader(shader.ShaderType(99)))

	onlyVertex := NewPipeline("half", WithVertexShader(prog.Vertex))
	assert.ErrorIs(t, onlyVertex.Validate(), ErrMissingShader)
	assert.NoError(t, NewPipeline("full", WithVertexShader(prog.Vertex), WithFragmentShader(prog.Fragment)).Validate())
}
