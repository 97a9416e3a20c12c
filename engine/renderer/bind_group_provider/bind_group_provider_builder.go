package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer sets a uniform buffer for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithVertexBuffer sets the vertex buffer and its record count.
//
// Parameters:
//   - buf: the vertex buffer
//   - count: number of records in buf
//
// Returns:
//   - BindGroupProviderOption: a function that sets the vertex buffer
func WithVertexBuffer(buf *wgpu.Buffer, count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexBuffer = buf
		p.vertexCount = count
	}
}
