package instance

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SyncIndexAligned(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()))
	buf := NewHostBuffer(store.Len())
	buf.Fill(GPUInstanceAttribute{WorldPosition: [3]float32{-1, -1, -1}})

	require.NoError(t, store.Sync(buf))

	snap := buf.Snapshot()
	for i, inst := range store.Instances() {
		assert.Equal(t, [3]float32{inst.Position[0], inst.Position[1], inst.Position[2]}, snap[i].WorldPosition, "slot %d", i)
	}
	assert.Equal(t, [3]float32{7, 3, 0}, snap[37].WorldPosition)
	assert.False(t, buf.Mapped())
	assert.Equal(t, 1, buf.Flushes())
}

func TestStore_SyncArbitraryPositions(t *testing.T) {
	instances := []Instance{
		{Position: mgl32.Vec3{5, -2, 0.5}},
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{-8, 3, 1e6}},
	}
	store := NewStore(instances)
	buf := NewHostBuffer(3)
	buf.Fill(GPUInstanceAttribute{WorldPosition: [3]float32{42, 42, 42}})

	require.NoError(t, store.Sync(buf))

	snap := buf.Snapshot()
	assert.Equal(t, [3]float32{5, -2, 0.5}, snap[0].WorldPosition)
	assert.Equal(t, [3]float32{0, 0, 0}, snap[1].WorldPosition)
	assert.Equal(t, [3]float32{-8, 3, 1e6}, snap[2].WorldPosition)
}

func TestStore_SyncLengthMismatchPanics(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()))
	buf := NewHostBuffer(99)

	assert.PanicsWithValue(t, "instance: buffer has 99 slots for 100 instances", func() {
		_ = store.Sync(buf)
	})
	assert.Equal(t, 0, buf.Flushes())
}

func TestStore_SyncReflectsAdvance(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()), WithSpeed(2))
	buf := NewHostBuffer(store.Len())

	store.Advance(0.5)
	require.NoError(t, store.Sync(buf))

	assert.Equal(t, [3]float32{8, 4, 1}, buf.Snapshot()[37].WorldPosition)
	assert.Equal(t, mgl32.Vec3{8, 4, 1}, store.At(37).Position)
}

func TestStore_AdvanceZeroSpeed(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()))
	before := store.Instances()

	store.Advance(1)

	assert.Equal(t, before, store.Instances())
	assert.Equal(t, float32(0), store.Speed())
}

func TestStore_InstancesIsCopy(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()))
	out := store.Instances()
	out[0].Position = mgl32.Vec3{100, 100, 100}

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, store.At(0).Position)
}

type failingBuffer struct{ n int }

func (f failingBuffer) Len() int { return f.n }
func (f failingBuffer) Write(func([]GPUInstanceAttribute)) error {
	return errors.New("device lost")
}

func TestStore_SyncWrapsWriteError(t *testing.T) {
	store := NewStore(Initialize(DefaultConfig()))

	err := store.Sync(failingBuffer{n: store.Len()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device lost")
}

func TestHostBuffer_scopedMapping(t *testing.T) {
	buf := NewHostBuffer(2)

	err := buf.Write(func(attrs []GPUInstanceAttribute) {
		assert.True(t, buf.Mapped())
		attrs[1].WorldPosition = [3]float32{1, 2, 3}
		// Staged writes stay invisible until release.
		assert.Equal(t, [3]float32{}, buf.Snapshot()[1].WorldPosition)
		assert.ErrorIs(t, buf.Write(func([]GPUInstanceAttribute) {}), ErrAlreadyMapped)
	})

	require.NoError(t, err)
	assert.False(t, buf.Mapped())
	assert.Equal(t, [3]float32{1, 2, 3}, buf.Snapshot()[1].WorldPosition)
}

func TestHostBuffer_releasesOnPanic(t *testing.T) {
	buf := NewHostBuffer(1)

	assert.Panics(t, func() {
		_ = buf.Write(func([]GPUInstanceAttribute) { panic("boom") })
	})
	assert.False(t, buf.Mapped())
	assert.NoError(t, buf.Write(func([]GPUInstanceAttribute) {}))
}
