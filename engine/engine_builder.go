package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-instancing/engine/input"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithEventSource sets where each tick drains its input events from, usually the window.
// Without a source every tick receives no events.
//
// Parameters:
//   - src: the event source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEventSource(src input.Source) EngineBuilderOption {
	return func(e *engine) {
		e.events = src
	}
}

// WithLogger sets the logger for loop lifecycle and profiler output.
//
// Parameters:
//   - logger: the logger (nil keeps the no-op default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithClock replaces the time source and sleep function, for deterministic tests.
//
// Parameters:
//   - now: returns the current time
//   - sleep: blocks for the given duration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time, sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
		if sleep != nil {
			e.sleep = sleep
		}
	}
}
