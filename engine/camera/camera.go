package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera turns input events into view and projection transforms.
//
// ProcessInput only records intent; Update applies it. Matrices are recomputed from current
// state on every call, so repeated calls without intervening input return identical results.
type Camera interface {
	// ProcessInput records the motion intent carried by an event.
	// Repeating an identical event leaves the camera in the same state.
	//
	// Parameters:
	//   - e: the input event
	ProcessInput(e input.Event)

	// Update applies recorded intent over an elapsed time step.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Perspective returns the projection matrix in WebGPU clip space.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major projection matrix
	Perspective() mgl32.Mat4

	// View returns the world-to-camera matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view matrix
	View() mgl32.Mat4

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Direction returns the unit forward vector.
	Direction() mgl32.Vec3

	// SetAspect sets the aspect ratio (width / height), usually after a resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Uniform packs the current matrices and position for upload.
	//
	// Returns:
	//   - GPUCameraUniform: the GPU-aligned camera data
	Uniform() GPUCameraUniform
}

// cameraState is the lens and pose shared by every camera variant.
// Orientation is stored as yaw and pitch in degrees; yaw 0 looks down -Z.
type cameraState struct {
	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	moveSpeed   float32
	sensitivity float32
}

// defaultState is the interactive cube demo camera.
func defaultState() cameraState {
	s := cameraState{
		up:          mgl32.Vec3{0, 1, 0},
		fov:         math.Pi / 2,
		aspect:      1024.0 / 768.0,
		near:        0.1,
		far:         1024,
		position:    mgl32.Vec3{0.1, 0.1, 1},
		moveSpeed:   0.6,
		sensitivity: 0.1,
	}
	s.setDirection(mgl32.Vec3{0, 0, -1})
	return s
}

func (s *cameraState) Perspective() mgl32.Mat4 {
	return common.Perspective(s.fov, s.aspect, s.near, s.far)
}

func (s *cameraState) View() mgl32.Mat4 {
	return mgl32.LookAtV(s.position, s.position.Add(s.Direction()), s.up)
}

func (s *cameraState) Position() mgl32.Vec3 {
	return s.position
}

func (s *cameraState) Direction() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(s.yaw))
	pitch := float64(mgl32.DegToRad(s.pitch))
	return mgl32.Vec3{
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(-math.Cos(yaw) * math.Cos(pitch)),
	}
}

func (s *cameraState) SetAspect(aspect float32) {
	if aspect > 0 {
		s.aspect = aspect
	}
}

func (s *cameraState) Uniform() GPUCameraUniform {
	return GPUCameraUniform{
		Perspective:    s.Perspective(),
		View:           s.View(),
		CameraPosition: common.Vec3Array(s.position),
	}
}

// setDirection derives yaw and pitch from a forward vector. A zero vector is ignored.
func (s *cameraState) setDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	s.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(d[0]), float64(-d[2]))))
	s.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(d[1])))))
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -89, 89)
}
