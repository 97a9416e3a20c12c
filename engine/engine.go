package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"github.com/Carmen-Shannon/oxy-instancing/engine/profiler"
	"go.uber.org/zap"
)

// Action is the continuation decision returned by a frame callback.
type Action int

const (
	// Continue schedules another tick.
	Continue Action = iota
	// Stop ends the loop after the current tick.
	Stop
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// State is the lifecycle state of the frame loop.
type State int

const (
	// StateRunning is the initial state; ticks may be scheduled.
	StateRunning State = iota
	// StateStopped is terminal; no further ticks run.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tick is the input to one frame callback.
type Tick struct {
	// Index counts ticks from zero.
	Index uint64
	// DeltaTime is the time in seconds since the previous tick started (0 on the first tick).
	DeltaTime float32
	// Events holds every input event drained at the start of this tick, in arrival order.
	Events []input.Event
}

// FrameFunc is the per-frame callback. Returning an error is fatal: the loop stops and
// Run returns the error.
type FrameFunc func(t Tick) (Action, error)

// ErrStopped is returned by Run once the engine has reached StateStopped.
var ErrStopped = errors.New("engine is stopped")

// engine implements the Engine interface.
// Runs the frame loop on the calling goroutine.
type engine struct {
	state State
	ticks uint64

	events input.Source
	logger *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the frame loop driver. It owns tick cadence and termination.
//
// Each tick drains all pending input events, hands them to the frame callback, and acts on
// the returned Action. The loop runs on the calling goroutine; GLFW and WebGPU require that
// goroutine to be the locked main thread.
type Engine interface {
	// Run executes ticks until the callback returns Stop or an error.
	// Blocks for the lifetime of the loop.
	//
	// Parameters:
	//   - fn: the per-frame callback
	//
	// Returns:
	//   - error: nil after Stop, the wrapped callback error, or ErrStopped if already stopped
	Run(fn FrameFunc) error

	// State returns the current lifecycle state.
	State() State

	// Ticks returns the number of ticks executed so far.
	Ticks() uint64

	// EnableProfiler enables performance statistics output to the logger.
	EnableProfiler()

	// DisableProfiler disables performance statistics output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)
}

var _ Engine = &engine{}

// NewEngine creates a new Engine in StateRunning.
//
// Parameters:
//   - options: functional options for engine configuration (event source, logger, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		state:  StateRunning,
		logger: zap.NewNop(),
		now:    time.Now,
		sleep:  time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(e.logger.Named("profiler"), time.Second)
	return e
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) Ticks() uint64 {
	return e.ticks
}

func (e *engine) Run(fn FrameFunc) error {
	if e.state == StateStopped {
		return ErrStopped
	}
	if fn == nil {
		return errors.New("frame callback is nil")
	}

	// A panicking callback is a contract violation; the loop is stopped before it propagates.
	defer func() {
		if r := recover(); r != nil {
			e.state = StateStopped
			e.logger.Error("frame callback panicked", zap.Uint64("tick", e.ticks), zap.Any("panic", r))
			panic(r)
		}
	}()

	e.logger.Info("frame loop started")
	last := e.now()
	first := true

	for {
		start := e.now()
		var dt float32
		if !first {
			dt = float32(start.Sub(last).Seconds())
		}
		last = start
		first = false

		var events []input.Event
		if e.events != nil {
			events = e.events.PollEvents()
		}

		tick := Tick{Index: e.ticks, DeltaTime: dt, Events: events}
		action, err := fn(tick)
		e.ticks++

		if err != nil {
			e.state = StateStopped
			e.logger.Error("frame failed", zap.Uint64("tick", tick.Index), zap.Error(err))
			return fmt.Errorf("frame %d: %w", tick.Index, err)
		}

		if e.profilingEnabled {
			e.profiler.Tick()
		}

		if action == Stop {
			e.state = StateStopped
			e.logger.Info("frame loop stopped", zap.Uint64("ticks", e.ticks))
			return nil
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
}

// EnableProfiler enables performance statistics output to the logger.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance statistics output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
