package instance

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_deterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Initialize(cfg)
	b := Initialize(cfg)

	require.Len(t, a, 100)
	assert.Equal(t, a, b)
}

func TestInitialize_defaultLayout(t *testing.T) {
	instances := Initialize(DefaultConfig())

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, instances[0].Position)
	assert.Equal(t, mgl32.Vec3{7, 3, 0}, instances[37].Position)
	assert.Equal(t, mgl32.Vec3{9, 9, 0}, instances[99].Position)
	for _, inst := range instances {
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, inst.Direction)
	}
}

func TestInitialize_spacing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spacing = 2.5
	instances := Initialize(cfg)

	assert.Equal(t, mgl32.Vec3{17.5, 7.5, 0}, instances[37].Position)
}

func TestInitialize_emptyCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 0
	assert.Empty(t, Initialize(cfg))
}

func TestInitialize_invalidGridPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 0
	assert.PanicsWithValue(t, "instance: grid size must be positive, got 0", func() {
		Initialize(cfg)
	})
}

func TestInitialize_duplicatesBeyondGrid(t *testing.T) {
	cfg := Config{Count: 10, GridSize: 2, Spacing: 1, Strategy: GridUnravel}
	instances := Initialize(cfg)

	// 2^3 = 8 cells, so index 8 wraps onto index 0.
	assert.Equal(t, instances[0].Position, instances[8].Position)
}

func TestGridStrategy_Coords(t *testing.T) {
	tests := []struct {
		name     string
		strategy GridStrategy
		c, n     int
		want     [3]int
	}{
		{"legacy origin", GridLegacy, 0, 10, [3]int{0, 0, 0}},
		{"legacy 37", GridLegacy, 37, 10, [3]int{7, 3, 0}},
		{"legacy flattens k", GridLegacy, 250, 10, [3]int{0, 5, 0}},
		{"unravel 37", GridUnravel, 37, 10, [3]int{7, 3, 0}},
		{"unravel 250", GridUnravel, 250, 10, [3]int{0, 5, 2}},
		{"unravel wraps", GridUnravel, 8, 2, [3]int{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, k := tt.strategy.Coords(tt.c, tt.n)
			assert.Equal(t, tt.want, [3]int{i, j, k})
		})
	}
}

func TestGridStrategy_strategiesAgreeOnDefault(t *testing.T) {
	legacy := DefaultConfig()
	unravel := DefaultConfig()
	unravel.Strategy = GridUnravel

	assert.Equal(t, Initialize(legacy), Initialize(unravel))
}

func TestParseGridStrategy(t *testing.T) {
	g, err := ParseGridStrategy("Unravel")
	require.NoError(t, err)
	assert.Equal(t, GridUnravel, g)

	g, err = ParseGridStrategy("")
	require.NoError(t, err)
	assert.Equal(t, GridLegacy, g)

	_, err = ParseGridStrategy("spiral")
	assert.Error(t, err)

	assert.Equal(t, "legacy", GridLegacy.String())
	assert.Equal(t, "unravel", GridUnravel.String())
}

func TestGPUInstanceAttribute_Marshal(t *testing.T) {
	a := GPUInstanceAttribute{WorldPosition: [3]float32{1, 2, 3}}
	buf := a.Marshal()

	require.Len(t, buf, 12)
	assert.Equal(t, 12, a.Size())
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[0:4])
}
