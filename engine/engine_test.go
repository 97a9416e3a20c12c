package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: time.Unix(0, 0), step: step}
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
}

func TestEngine_StopTerminates(t *testing.T) {
	e := NewEngine()
	require.Equal(t, StateRunning, e.State())

	calls := 0
	err := e.Run(func(tick Tick) (Action, error) {
		calls++
		if tick.Index == 2 {
			return Stop, nil
		}
		return Continue, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(3), e.Ticks())
	assert.Equal(t, StateStopped, e.State())
}

func TestEngine_NoTicksAfterStop(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Run(func(Tick) (Action, error) { return Stop, nil }))

	calls := 0
	err := e.Run(func(Tick) (Action, error) {
		calls++
		return Continue, nil
	})

	assert.ErrorIs(t, err, ErrStopped)
	assert.Zero(t, calls)
	assert.Equal(t, uint64(1), e.Ticks())
	assert.Equal(t, StateStopped, e.State())
}

func TestEngine_ErrorIsFatal(t *testing.T) {
	deviceLost := errors.New("device lost")
	e := NewEngine()

	calls := 0
	err := e.Run(func(tick Tick) (Action, error) {
		calls++
		if tick.Index == 1 {
			return Continue, deviceLost
		}
		return Continue, nil
	})

	require.ErrorIs(t, err, deviceLost)
	assert.Contains(t, err.Error(), "frame 1")
	assert.Equal(t, 2, calls)
	assert.Equal(t, StateStopped, e.State())
	assert.ErrorIs(t, e.Run(func(Tick) (Action, error) { return Stop, nil }), ErrStopped)
}

func TestEngine_DrainsEventsEachTick(t *testing.T) {
	q := input.NewQueue()
	q.Push(input.Key{Code: 87, Pressed: true})
	q.Push(input.PointerMoved{X: 3, Y: 4})
	e := NewEngine(WithEventSource(q))

	var seen [][]input.Event
	err := e.Run(func(tick Tick) (Action, error) {
		seen = append(seen, tick.Events)
		switch tick.Index {
		case 0:
			q.Push(input.CloseRequested{})
			return Continue, nil
		case 1:
			return Continue, nil
		default:
			return Stop, nil
		}
	})

	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.Equal(t, []input.Event{input.Key{Code: 87, Pressed: true}, input.PointerMoved{X: 3, Y: 4}}, seen[0])
	assert.Equal(t, []input.Event{input.CloseRequested{}}, seen[1])
	assert.Empty(t, seen[2])
	assert.Zero(t, q.Len())
}

func TestEngine_DeltaTime(t *testing.T) {
	clock := newFakeClock(10 * time.Millisecond)
	e := NewEngine(WithClock(clock.now, clock.sleep))

	var dts []float32
	require.NoError(t, e.Run(func(tick Tick) (Action, error) {
		dts = append(dts, tick.DeltaTime)
		if tick.Index == 2 {
			return Stop, nil
		}
		return Continue, nil
	}))

	require.Len(t, dts, 3)
	assert.Zero(t, dts[0])
	assert.InDelta(t, 0.01, dts[1], 1e-6)
	assert.InDelta(t, 0.01, dts[2], 1e-6)
}

func TestEngine_FrameLimitSleeps(t *testing.T) {
	clock := newFakeClock(5 * time.Millisecond)
	e := NewEngine(WithClock(clock.now, clock.sleep), WithRenderFrameLimit(50))

	require.NoError(t, e.Run(func(tick Tick) (Action, error) {
		if tick.Index == 1 {
			return Stop, nil
		}
		return Continue, nil
	}))

	// One sleep after tick 0; tick 1 stops before limiting.
	assert.Equal(t, []time.Duration{15 * time.Millisecond}, clock.slept)
}

func TestEngine_PanicStopsLoop(t *testing.T) {
	e := NewEngine()

	assert.PanicsWithValue(t, "contract violation", func() {
		_ = e.Run(func(Tick) (Action, error) { panic("contract violation") })
	})
	assert.Equal(t, StateStopped, e.State())
}

func TestEngine_NilCallback(t *testing.T) {
	e := NewEngine()
	assert.Error(t, e.Run(nil))
	assert.Equal(t, StateRunning, e.State())
}

func TestEngine_SetRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetRenderFrameLimit(60)
	assert.Equal(t, time.Second/60, e.renderFrameLimit)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
}
