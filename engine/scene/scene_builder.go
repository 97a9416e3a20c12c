package scene

import "go.uber.org/zap"

const (
	// DefaultPipelineKey is the pipeline key used when none is configured.
	DefaultPipelineKey = "instanced"
	// DefaultMeshKey is the mesh key used when none is configured.
	DefaultMeshKey = "mesh"
)

// FrameContextOption is a functional option for configuring a FrameContext.
type FrameContextOption func(f *FrameContext)

// WithPipelineKey selects the registered pipeline used for the draw.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - FrameContextOption: option function to apply
func WithPipelineKey(key string) FrameContextOption {
	return func(f *FrameContext) {
		f.PipelineKey = key
	}
}

// WithMeshKey selects the uploaded mesh used for the draw.
//
// Parameters:
//   - key: the mesh key
//
// Returns:
//   - FrameContextOption: option function to apply
func WithMeshKey(key string) FrameContextOption {
	return func(f *FrameContext) {
		f.MeshKey = key
	}
}

// WithLogger sets the logger for frame events.
func WithLogger(logger *zap.Logger) FrameContextOption {
	return func(f *FrameContext) {
		if logger != nil {
			f.Logger = logger
		}
	}
}
