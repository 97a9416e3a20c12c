package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// String returns the config spelling of the mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode parses "vsync" or "uncapped", case-insensitively.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: an error for unknown names
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(s) {
	case "vsync", "":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("renderer: unknown present mode %q", s)
	}
}

// wgpuPresentMode maps the mode onto the surface present mode.
func (m PresentMode) wgpuPresentMode() wgpu.PresentMode {
	if m == PresentModeVSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing.
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA converts a configured sample count into an MSAASampleCount.
//
// Parameters:
//   - n: 1 or 4
//
// Returns:
//   - MSAASampleCount: the sample count
//   - error: an error for unsupported counts
func ParseMSAA(n int) (MSAASampleCount, error) {
	switch n {
	case 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	default:
		return MSAAOff, fmt.Errorf("renderer: unsupported msaa sample count %d", n)
	}
}

// RendererBackend is the GPU-facing half of the Renderer: it owns the device, queue and
// surface and records one render pass per frame.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA target and depth texture for a size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if a texture could not be created
	ConfigureSurface(width, height int) error

	// RegisterRenderPipeline compiles a pipeline's shaders and stores the render pipeline on it.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if compilation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitVertexBuffer creates a vertex buffer on the provider and optionally uploads data.
	//
	// Parameters:
	//   - provider: the provider that receives the buffer
	//   - size: the buffer size in bytes
	//   - data: initial contents, or nil
	//   - count: the number of records in the buffer
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	InitVertexBuffer(provider bind_group_provider.BindGroupProvider, size uint64, data []byte, count int) error

	// InitBindGroup creates the uniform buffers and bind group for one group of a layout.
	//
	// Parameters:
	//   - provider: the provider that receives the bind group
	//   - descriptor: the group's layout descriptor
	//
	// Returns:
	//   - error: an error if a GPU resource could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer uploads that land before the next submission.
	//
	// Parameters:
	//   - writes: the uploads to perform
	//
	// Returns:
	//   - error: the first upload failure
	WriteBuffers(writes []bind_group_provider.BufferWrite) error

	// BeginFrame acquires the surface texture and begins the render pass, clearing color and depth.
	BeginFrame() error

	// DrawInstanced records a non-indexed instanced draw.
	//
	// Parameters:
	//   - p: the compiled pipeline
	//   - vertexBuffers: providers bound to vertex slots in order
	//   - vertexCount: vertices per instance
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound to bind group indices in order
	DrawInstanced(p pipeline.Pipeline, vertexBuffers []bind_group_provider.BindGroupProvider, vertexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the pass, submits the commands and presents the surface texture.
	EndFrame() error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color attachment clear value.
	SetClearColor(c wgpu.Color)

	// InFrame reports whether a frame has begun and not yet ended.
	InFrame() bool

	// Release frees every GPU object owned by the backend.
	Release()
}
