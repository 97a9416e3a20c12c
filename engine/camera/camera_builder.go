package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option shared by every camera variant.
type CameraBuilderOption func(*cameraState)

// WithUp sets the camera's up vector. A zero vector is ignored.
//
// Parameters:
//   - up: the world up direction
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraState) {
		if up.Len() == 0 {
			return
		}
		c.up = up
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.SetAspect(aspect)
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.far = far
	}
}

// WithPosition sets the initial world-space position.
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraState) {
		c.position = position
	}
}

// WithDirection sets the initial forward vector. Pitch is clamped to +/-89 degrees.
//
// Parameters:
//   - direction: the look direction (need not be normalized; zero is ignored)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithDirection(direction mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraState) {
		c.setDirection(direction)
	}
}

// WithMoveSpeed sets the flying speed in world units per second.
func WithMoveSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.moveSpeed = speed
	}
}

// WithSensitivity sets the look sensitivity in degrees per pixel of cursor motion.
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraState) {
		c.sensitivity = sensitivity
	}
}
