package camera

import "github.com/Carmen-Shannon/oxy-instancing/engine/input"

// fixedCamera is a non-interactive camera: input and time have no effect on it.
type fixedCamera struct {
	cameraState
}

var _ Camera = &fixedCamera{}

// NewFixedCamera creates a camera with a fixed pose. Only SetAspect changes it after construction.
//
// Parameters:
//   - options: functional options to configure the lens and pose
//
// Returns:
//   - Camera: the fixed camera
func NewFixedCamera(options ...CameraBuilderOption) Camera {
	c := &fixedCamera{cameraState: defaultState()}
	for _, opt := range options {
		opt(&c.cameraState)
	}
	return c
}

func (c *fixedCamera) ProcessInput(input.Event) {}

func (c *fixedCamera) Update(float32) {}
