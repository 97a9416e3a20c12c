package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProfiler_TickLogsAfterInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core), time.Nanosecond)

	time.Sleep(time.Millisecond)
	require.True(t, p.Tick())

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "fps")
}

func TestProfiler_TickWithinInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core), time.Hour)

	assert.False(t, p.Tick())
	assert.False(t, p.Tick())
	assert.Zero(t, logs.Len())
}

func TestNewProfiler_defaults(t *testing.T) {
	p := NewProfiler(nil, 0)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
}
