package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-instancing/engine/instance"
	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-instancing/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBufferMapped is returned when a draw reads an instance buffer whose mapping is still held.
	ErrBufferMapped = errors.New("renderer: instance buffer is mapped")

	// ErrUnknownResource is returned when a draw names a pipeline or mesh that was never registered.
	ErrUnknownResource = errors.New("renderer: unknown resource")
)

// Surface is the window-side half of the renderer: a surface to present to and its size.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// registeredPipeline is a compiled pipeline plus the bind groups it draws with.
type registeredPipeline struct {
	pipeline      pipeline.Pipeline
	groups        []bind_group_provider.BindGroupProvider
	cameraGroup   int
	cameraBinding int
}

type renderer struct {
	backend RendererBackend
	logger  *zap.Logger

	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
	forceFallbackAdapter bool
	initialPipelines     []pipeline.Pipeline

	pipelines map[string]*registeredPipeline
	meshes    map[string]bind_group_provider.BindGroupProvider
	instances []*instanceBuffer
}

// Renderer is the WebGPU graphics device used by the frame loop. It owns the meshes,
// instance buffers and pipelines it creates and releases them in Release.
type Renderer interface {
	scene.Device

	// InitMesh uploads a mesh's vertices under a key that draw calls refer to.
	//
	// Parameters:
	//   - key: the mesh key
	//   - mesh: the mesh to upload
	//
	// Returns:
	//   - error: an error for empty meshes, duplicate keys or upload failures
	InitMesh(key string, mesh *model.Mesh) error

	// NewInstanceBuffer allocates a per-instance attribute buffer with count slots. The
	// returned buffer uploads to the GPU each time its Write mapping is released.
	//
	// Parameters:
	//   - count: number of instances
	//
	// Returns:
	//   - instance.AttributeBuffer: the device-backed buffer
	//   - error: an error if the GPU buffer could not be created
	NewInstanceBuffer(count int) (instance.AttributeBuffer, error)

	// RegisterPipeline compiles a pipeline and creates its bind groups. The vertex shader
	// must declare the camera uniform.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error for duplicate keys, missing camera uniform or compile failures
	RegisterPipeline(p pipeline.Pipeline) error

	// Pipeline returns a registered pipeline by key.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil
	//   - bool: whether the key is registered
	Pipeline(key string) (pipeline.Pipeline, bool)

	// Release frees every GPU resource owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the WebGPU device for a window surface, configures the surface at the
// window's size and registers any pipelines passed with WithPipeline.
//
// Parameters:
//   - surface: the window to render into
//   - options: functional options (present mode, MSAA, clear color, logger, pipelines)
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the device, surface or a pipeline could not be created
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(nil, options...)

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	if err != nil {
		return nil, err
	}
	backend.SetPresentMode(r.presentMode)
	backend.SetClearColor(r.clearColor)
	if err := backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	r.backend = backend

	for _, p := range r.initialPipelines {
		if err := r.RegisterPipeline(p); err != nil {
			r.Release()
			return nil, err
		}
	}

	r.logger.Info("renderer ready",
		zap.Int("width", surface.Width()),
		zap.Int("height", surface.Height()),
		zap.Stringer("present_mode", r.presentMode),
		zap.Uint32("msaa", uint32(r.msaa)),
	)
	return r, nil
}

func newRenderer(backend RendererBackend, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		backend:     backend,
		logger:      zap.NewNop(),
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		pipelines:   make(map[string]*registeredPipeline),
		meshes:      make(map[string]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// label makes a unique GPU debug label.
func label(kind, key string) string {
	return fmt.Sprintf("%s %s %s", kind, key, uuid.NewString()[:8])
}

func (r *renderer) InitMesh(key string, mesh *model.Mesh) error {
	if _, ok := r.meshes[key]; ok {
		return fmt.Errorf("renderer: mesh %q already initialized", key)
	}
	if mesh == nil || mesh.VertexCount() == 0 {
		return fmt.Errorf("renderer: mesh %q has no vertices", key)
	}

	provider := bind_group_provider.NewBindGroupProvider(label("mesh", key))
	data := mesh.VertexData()
	if err := r.backend.InitVertexBuffer(provider, uint64(len(data)), data, mesh.VertexCount()); err != nil {
		return fmt.Errorf("failed to upload mesh %q: %w", key, err)
	}
	r.meshes[key] = provider
	r.logger.Debug("mesh uploaded", zap.String("key", key), zap.Int("vertices", mesh.VertexCount()))
	return nil
}

func (r *renderer) NewInstanceBuffer(count int) (instance.AttributeBuffer, error) {
	if count < 0 {
		return nil, fmt.Errorf("renderer: negative instance count %d", count)
	}

	provider := bind_group_provider.NewBindGroupProvider(label("instances", fmt.Sprint(count)))
	if count > 0 {
		var attr instance.GPUInstanceAttribute
		size := uint64(attr.Size() * count)
		if err := r.backend.InitVertexBuffer(provider, size, nil, count); err != nil {
			return nil, fmt.Errorf("failed to allocate instance buffer: %w", err)
		}
	}

	buf := newInstanceBuffer(provider, r.backend, count)
	r.instances = append(r.instances, buf)
	return buf, nil
}

func (r *renderer) RegisterPipeline(p pipeline.Pipeline) error {
	key := p.PipelineKey()
	if _, ok := r.pipelines[key]; ok {
		return fmt.Errorf("renderer: pipeline %q already registered", key)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	vs := p.Shader(shader.ShaderTypeVertex)
	cameraGroup, cameraBinding, ok := vs.BindingOf(shader.AnnotationArgCamera)
	if !ok {
		return fmt.Errorf("renderer: pipeline %q declares no camera uniform", key)
	}

	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("failed to register pipeline %q: %w", key, err)
	}

	layouts := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptors())
	groups := make([]bind_group_provider.BindGroupProvider, len(layouts))
	for g, desc := range layouts {
		provider := bind_group_provider.NewBindGroupProvider(label(key, fmt.Sprintf("group %d", g)))
		if err := r.backend.InitBindGroup(provider, desc); err != nil {
			for _, prev := range groups[:g] {
				prev.Release()
			}
			return fmt.Errorf("failed to create bind group %d for %q: %w", g, key, err)
		}
		groups[g] = provider
	}

	r.pipelines[key] = &registeredPipeline{
		pipeline:      p,
		groups:        groups,
		cameraGroup:   cameraGroup,
		cameraBinding: cameraBinding,
	}
	r.logger.Debug("pipeline registered", zap.String("key", key), zap.Int("bind_groups", len(groups)))
	return nil
}

func (r *renderer) Pipeline(key string) (pipeline.Pipeline, bool) {
	rp, ok := r.pipelines[key]
	if !ok {
		return nil, false
	}
	return rp.pipeline, true
}

func (r *renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	return nil
}

func (r *renderer) DrawInstanced(call scene.DrawCall) error {
	rp, ok := r.pipelines[call.PipelineKey]
	if !ok {
		return fmt.Errorf("%w: pipeline %q", ErrUnknownResource, call.PipelineKey)
	}
	mesh, ok := r.meshes[call.MeshKey]
	if !ok {
		return fmt.Errorf("%w: mesh %q", ErrUnknownResource, call.MeshKey)
	}
	buf, ok := call.Instances.(*instanceBuffer)
	if !ok {
		return fmt.Errorf("renderer: instance buffer %T was not allocated by this renderer", call.Instances)
	}
	if buf.Mapped() {
		return ErrBufferMapped
	}
	if buf.Len() == 0 {
		return nil
	}

	uniform := call.Camera
	if err := r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: rp.groups[rp.cameraGroup],
		Binding:  rp.cameraBinding,
		Data:     uniform.Marshal(),
	}}); err != nil {
		return fmt.Errorf("failed to upload camera uniform: %w", err)
	}

	vertexBuffers := []bind_group_provider.BindGroupProvider{mesh, buf.provider}
	if err := r.backend.DrawInstanced(rp.pipeline, vertexBuffers, uint32(mesh.VertexCount()), uint32(buf.Len()), rp.groups); err != nil {
		return fmt.Errorf("failed to draw %q: %w", call.MeshKey, err)
	}
	return nil
}

func (r *renderer) EndFrame() error {
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to end frame: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	r.logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (r *renderer) Release() {
	for _, buf := range r.instances {
		buf.provider.Release()
	}
	r.instances = nil
	for key, mesh := range r.meshes {
		mesh.Release()
		delete(r.meshes, key)
	}
	for key, rp := range r.pipelines {
		for _, g := range rp.groups {
			g.Release()
		}
		if compiled := rp.pipeline.Pipeline(); compiled != nil {
			compiled.Release()
			rp.pipeline.SetRenderPipeline(nil)
		}
		delete(r.pipelines, key)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
