package camera

import (
	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// flyingCamera is a free-moving camera driven by keyboard and middle-mouse drag.
//
// Keys: W/S forward and back, A/D strafe, Up/Space rise, Down/LeftShift sink.
// Holding the middle mouse button while moving the cursor turns the camera.
type flyingCamera struct {
	cameraState

	movingForward  bool
	movingBackward bool
	movingLeft     bool
	movingRight    bool
	movingUp       bool
	movingDown     bool

	looking    bool
	hasCursor  bool
	anchored   bool
	cursor     mgl32.Vec2
	lastCursor mgl32.Vec2
}

var _ Camera = &flyingCamera{}

// NewFlyingCamera creates an input-driven camera.
//
// Parameters:
//   - options: functional options to configure the lens, pose, and motion speeds
//
// Returns:
//   - Camera: the flying camera
func NewFlyingCamera(options ...CameraBuilderOption) Camera {
	c := &flyingCamera{cameraState: defaultState()}
	for _, opt := range options {
		opt(&c.cameraState)
	}
	return c
}

func (c *flyingCamera) ProcessInput(e input.Event) {
	switch ev := e.(type) {
	case input.Key:
		switch ev.Code {
		case common.KeyW:
			c.movingForward = ev.Pressed
		case common.KeyS:
			c.movingBackward = ev.Pressed
		case common.KeyA:
			c.movingLeft = ev.Pressed
		case common.KeyD:
			c.movingRight = ev.Pressed
		case common.KeyUp, common.KeySpace:
			c.movingUp = ev.Pressed
		case common.KeyDown, common.KeyLeftShift:
			c.movingDown = ev.Pressed
		}
	case input.MouseButton:
		if ev.Button == common.MouseButtonMiddle {
			c.looking = ev.Pressed
			c.cursor = mgl32.Vec2{ev.X, ev.Y}
			c.hasCursor = true
		}
	case input.PointerMoved:
		c.cursor = mgl32.Vec2{ev.X, ev.Y}
		c.hasCursor = true
	}
}

func (c *flyingCamera) Update(dt float32) {
	if c.looking && c.anchored {
		delta := c.cursor.Sub(c.lastCursor)
		c.yaw += delta[0] * c.sensitivity
		c.pitch = clampPitch(c.pitch - delta[1]*c.sensitivity)
	}
	c.lastCursor = c.cursor
	c.anchored = c.hasCursor

	forward := c.Direction()
	// Strafing is disabled while up is parallel to forward.
	var right mgl32.Vec3
	if side := forward.Cross(c.up); side.Len() > 1e-6 {
		right = side.Normalize()
	}

	var move mgl32.Vec3
	if c.movingForward {
		move = move.Add(forward)
	}
	if c.movingBackward {
		move = move.Sub(forward)
	}
	if c.movingRight {
		move = move.Add(right)
	}
	if c.movingLeft {
		move = move.Sub(right)
	}
	if c.movingUp {
		move = move.Add(c.up)
	}
	if c.movingDown {
		move = move.Sub(c.up)
	}

	if move.Len() > 0 && dt > 0 {
		c.position = c.position.Add(move.Normalize().Mul(c.moveSpeed * dt))
	}
}
