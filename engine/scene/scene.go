package scene

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-instancing/engine"
	"github.com/Carmen-Shannon/oxy-instancing/engine/camera"
	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/Carmen-Shannon/oxy-instancing/engine/instance"
	"go.uber.org/zap"
)

// DrawCall describes one instanced draw of a registered mesh.
type DrawCall struct {
	// PipelineKey names a pipeline registered on the device.
	PipelineKey string
	// MeshKey names a mesh uploaded to the device.
	MeshKey string
	// Instances is the per-instance attribute buffer; it must not be mapped.
	Instances instance.AttributeBuffer
	// Camera carries the projection and view for this frame.
	Camera camera.GPUCameraUniform
}

// Device is the graphics device as seen by the frame callback.
type Device interface {
	// BeginFrame acquires the next surface texture and clears color and depth.
	BeginFrame() error

	// DrawInstanced records a depth-tested, depth-writing instanced draw.
	DrawInstanced(call DrawCall) error

	// EndFrame submits recorded work and presents the frame.
	EndFrame() error

	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int) error
}

// FrameContext holds everything the per-frame callback mutates or reads.
// It is owned by the frame loop; nothing else may retain its fields across frames.
type FrameContext struct {
	Store  *instance.Store
	Buffer instance.AttributeBuffer
	Camera camera.Camera
	Device Device

	PipelineKey string
	MeshKey     string

	Logger *zap.Logger

	frames uint64
}

// NewFrameContext assembles a frame context and checks that the store and buffer agree in size.
//
// Parameters:
//   - store: the instance store
//   - buf: the device buffer mirroring the store
//   - cam: the camera variant to render with
//   - device: the graphics device
//   - options: functional options (pipeline and mesh keys, logger)
//
// Returns:
//   - *FrameContext: the frame context
//   - error: error if a collaborator is missing or the sizes disagree
func NewFrameContext(store *instance.Store, buf instance.AttributeBuffer, cam camera.Camera, device Device, options ...FrameContextOption) (*FrameContext, error) {
	if store == nil || buf == nil || cam == nil || device == nil {
		return nil, errors.New("frame context requires a store, buffer, camera, and device")
	}
	if buf.Len() != store.Len() {
		return nil, fmt.Errorf("instance buffer has %d slots for %d instances", buf.Len(), store.Len())
	}

	f := &FrameContext{
		Store:       store,
		Buffer:      buf,
		Camera:      cam,
		Device:      device,
		PipelineKey: DefaultPipelineKey,
		MeshKey:     DefaultMeshKey,
		Logger:      zap.NewNop(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f, nil
}

// Frames returns how many frames completed successfully.
func (f *FrameContext) Frames() uint64 {
	return f.frames
}

// Frame runs one tick: advance and sync instances, draw, then dispatch the tick's events.
// The instance buffer mapping is released before the draw is recorded. A close request
// yields engine.Stop after the frame has still been drawn. Any device error is returned as is
// and ends the loop.
//
// Parameters:
//   - t: the tick from the frame loop
//
// Returns:
//   - engine.Action: Stop if a close was requested, otherwise Continue
//   - error: error if syncing, drawing or resizing failed
func (f *FrameContext) Frame(t engine.Tick) (engine.Action, error) {
	f.Store.Advance(t.DeltaTime)
	if err := f.Store.Sync(f.Buffer); err != nil {
		return engine.Stop, err
	}

	f.Camera.Update(t.DeltaTime)
	if err := f.draw(); err != nil {
		return engine.Stop, err
	}

	action := engine.Continue
	for _, ev := range t.Events {
		switch e := ev.(type) {
		case input.CloseRequested:
			f.Logger.Info("close requested", zap.Uint64("tick", t.Index))
			action = engine.Stop
		case input.Resized:
			if e.Width <= 0 || e.Height <= 0 {
				continue
			}
			f.Logger.Debug("resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
			if err := f.Device.Resize(e.Width, e.Height); err != nil {
				return engine.Stop, fmt.Errorf("failed to resize surface: %w", err)
			}
			f.Camera.SetAspect(float32(e.Width) / float32(e.Height))
		default:
			f.Camera.ProcessInput(ev)
		}
	}

	f.frames++
	return action, nil
}

func (f *FrameContext) draw() error {
	if err := f.Device.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	call := DrawCall{
		PipelineKey: f.PipelineKey,
		MeshKey:     f.MeshKey,
		Instances:   f.Buffer,
		Camera:      f.Camera.Uniform(),
	}
	if err := f.Device.DrawInstanced(call); err != nil {
		return fmt.Errorf("failed to draw instances: %w", err)
	}
	if err := f.Device.EndFrame(); err != nil {
		return fmt.Errorf("failed to end frame: %w", err)
	}
	return nil
}
