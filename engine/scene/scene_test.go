package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine"
	"github.com/Carmen-Shannon/oxy-instancing/engine/camera"
	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/Carmen-Shannon/oxy-instancing/engine/instance"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	calls     []string
	drawn     [][]instance.GPUInstanceAttribute
	mappedAt  []bool
	lastCall  DrawCall
	resizedTo [2]int
	drawErr   error
	resizeErr error
}

func (d *fakeDevice) BeginFrame() error {
	d.calls = append(d.calls, "begin")
	return nil
}

func (d *fakeDevice) DrawInstanced(call DrawCall) error {
	d.calls = append(d.calls, "draw")
	if d.drawErr != nil {
		return d.drawErr
	}
	buf := call.Instances.(*instance.HostBuffer)
	d.drawn = append(d.drawn, buf.Snapshot())
	d.mappedAt = append(d.mappedAt, buf.Mapped())
	d.lastCall = call
	return nil
}

func (d *fakeDevice) EndFrame() error {
	d.calls = append(d.calls, "end")
	return nil
}

func (d *fakeDevice) Resize(width, height int) error {
	d.calls = append(d.calls, "resize")
	if d.resizeErr != nil {
		return d.resizeErr
	}
	d.resizedTo = [2]int{width, height}
	return nil
}

type recordingCamera struct {
	camera.Camera
	events  []input.Event
	aspects []float32
}

func (c *recordingCamera) ProcessInput(e input.Event) {
	c.events = append(c.events, e)
	c.Camera.ProcessInput(e)
}

func (c *recordingCamera) SetAspect(aspect float32) {
	c.aspects = append(c.aspects, aspect)
	c.Camera.SetAspect(aspect)
}

func newTestContext(t *testing.T, speed float32) (*FrameContext, *instance.HostBuffer, *fakeDevice, *recordingCamera) {
	t.Helper()
	store := instance.NewStore(instance.Initialize(instance.DefaultConfig()), instance.WithSpeed(speed))
	buf := instance.NewHostBuffer(store.Len())
	buf.Fill(instance.GPUInstanceAttribute{WorldPosition: [3]float32{-1, -1, -1}})
	dev := &fakeDevice{}
	cam := &recordingCamera{Camera: camera.NewFlyingCamera()}

	f, err := NewFrameContext(store, buf, cam, dev, WithPipelineKey("lit"), WithMeshKey("cube"))
	require.NoError(t, err)
	return f, buf, dev, cam
}

func TestFrameContext_DrawSeesPostSyncContent(t *testing.T) {
	f, _, dev, _ := newTestContext(t, 1)

	action, err := f.Frame(engine.Tick{Index: 0, DeltaTime: 0.5})

	require.NoError(t, err)
	assert.Equal(t, engine.Continue, action)
	require.Len(t, dev.drawn, 1)
	assert.False(t, dev.mappedAt[0])
	for i, inst := range f.Store.Instances() {
		assert.Equal(t, common.Vec3Array(inst.Position), dev.drawn[0][i].WorldPosition)
	}
	assert.Equal(t, [3]float32{7.5, 3.5, 0.5}, dev.drawn[0][37].WorldPosition)
	assert.Equal(t, []string{"begin", "draw", "end"}, dev.calls)
	assert.Equal(t, "lit", dev.lastCall.PipelineKey)
	assert.Equal(t, "cube", dev.lastCall.MeshKey)
}

func TestFrameContext_CloseStopsAfterDraw(t *testing.T) {
	f, _, dev, _ := newTestContext(t, 0)

	action, err := f.Frame(engine.Tick{Events: []input.Event{input.CloseRequested{}}})

	require.NoError(t, err)
	assert.Equal(t, engine.Stop, action)
	assert.Equal(t, []string{"begin", "draw", "end"}, dev.calls)
	assert.Equal(t, uint64(1), f.Frames())
}

func TestFrameContext_ResizeUpdatesDeviceAndCamera(t *testing.T) {
	f, _, dev, cam := newTestContext(t, 0)

	_, err := f.Frame(engine.Tick{Events: []input.Event{
		input.Resized{Width: 800, Height: 400},
		input.Resized{Width: 0, Height: 0},
	}})

	require.NoError(t, err)
	assert.Equal(t, [2]int{800, 400}, dev.resizedTo)
	assert.Equal(t, []float32{2}, cam.aspects)
	assert.Empty(t, cam.events)
}

func TestFrameContext_InputReachesCameraAfterDraw(t *testing.T) {
	f, _, dev, cam := newTestContext(t, 0)
	w := input.Key{Code: common.KeyW, Pressed: true}

	_, err := f.Frame(engine.Tick{Events: []input.Event{w}})
	require.NoError(t, err)
	assert.Equal(t, []input.Event{w}, cam.events)
	firstPos := dev.lastCall.Camera.CameraPosition

	_, err = f.Frame(engine.Tick{DeltaTime: 1})
	require.NoError(t, err)
	assert.NotEqual(t, firstPos, dev.lastCall.Camera.CameraPosition)
	assert.Equal(t, common.Vec3Array(cam.Position()), dev.lastCall.Camera.CameraPosition)
}

func TestFrameContext_DeviceErrorIsReturned(t *testing.T) {
	f, _, dev, _ := newTestContext(t, 0)
	lost := errors.New("device lost")
	dev.drawErr = lost

	action, err := f.Frame(engine.Tick{})

	require.ErrorIs(t, err, lost)
	assert.Equal(t, engine.Stop, action)
	assert.Zero(t, f.Frames())
}

func TestFrameContext_ResizeErrorIsReturned(t *testing.T) {
	f, _, dev, cam := newTestContext(t, 0)
	lost := errors.New("surface lost")
	dev.resizeErr = lost

	action, err := f.Frame(engine.Tick{Events: []input.Event{
		input.Resized{Width: 800, Height: 400},
		input.CloseRequested{},
	}})

	require.ErrorIs(t, err, lost)
	assert.Equal(t, engine.Stop, action)
	assert.Empty(t, cam.aspects)
	assert.Zero(t, f.Frames())
}

func TestFrameContext_ResizeErrorStopsEngine(t *testing.T) {
	f, _, dev, _ := newTestContext(t, 0)
	lost := errors.New("surface lost")
	dev.resizeErr = lost

	q := input.NewQueue()
	q.Push(input.Resized{Width: 640, Height: 480})
	e := engine.NewEngine(engine.WithEventSource(q))

	require.ErrorIs(t, e.Run(f.Frame), lost)
	assert.Equal(t, engine.StateStopped, e.State())
	assert.Equal(t, uint64(1), e.Ticks())
}

func TestNewFrameContext_validation(t *testing.T) {
	store := instance.NewStore(instance.Initialize(instance.DefaultConfig()))
	cam := camera.NewFixedCamera()

	_, err := NewFrameContext(store, instance.NewHostBuffer(10), cam, &fakeDevice{})
	assert.Error(t, err)

	_, err = NewFrameContext(store, nil, cam, &fakeDevice{})
	assert.Error(t, err)

	f, err := NewFrameContext(store, instance.NewHostBuffer(100), cam, &fakeDevice{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPipelineKey, f.PipelineKey)
	assert.Equal(t, DefaultMeshKey, f.MeshKey)
}

func TestFrameContext_RunsUnderEngine(t *testing.T) {
	f, buf, dev, _ := newTestContext(t, 0)
	q := input.NewQueue()
	e := engine.NewEngine(engine.WithEventSource(q))

	err := e.Run(func(tick engine.Tick) (engine.Action, error) {
		if tick.Index == 4 {
			q.Push(input.CloseRequested{})
		}
		return f.Frame(tick)
	})

	require.NoError(t, err)
	// The close is pushed during tick 4 and drained by tick 5.
	assert.Equal(t, uint64(6), e.Ticks())
	assert.Equal(t, engine.StateStopped, e.State())
	assert.Len(t, dev.drawn, 6)
	assert.Equal(t, 6, buf.Flushes())
	assert.Equal(t, mgl32.Vec3{7, 3, 0}, f.Store.At(37).Position)
}
