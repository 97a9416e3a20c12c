package renderer

import (
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option used to configure the Renderer during construction.
type RendererBuilderOption func(*renderer)

// WithPipeline registers a pipeline as soon as the surface is configured.
//
// Parameters:
//   - p: the pipeline to register
//
// Returns:
//   - RendererBuilderOption: a function that queues the pipeline for registration
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.initialPipelines = append(r.initialPipelines, p)
	}
}

// WithPresentMode sets the surface present mode. Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - RendererBuilderOption: a function that sets the present mode
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the MSAA sample count of the main pass. Defaults to MSAA4x.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithClearColor sets the color the surface is cleared to each frame.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that sets the clear color
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithForceSoftwareRenderer requests the fallback (software) adapter.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger used for setup and resize messages.
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
