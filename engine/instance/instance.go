package instance

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Instance is the simulation record for one copy of the base mesh.
type Instance struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
}

// GridStrategy selects how an instance index is decomposed into 3-D grid coordinates.
type GridStrategy int

const (
	// GridLegacy computes k as ((c / n) * n) mod n, which is always 0.
	// Every instance lands in a single n-by-n layer.
	GridLegacy GridStrategy = iota
	// GridUnravel computes k as (c / (n*n)) mod n, a conventional row-major unravel.
	GridUnravel
)

func (g GridStrategy) String() string {
	switch g {
	case GridLegacy:
		return "legacy"
	case GridUnravel:
		return "unravel"
	default:
		return fmt.Sprintf("GridStrategy(%d)", int(g))
	}
}

// ParseGridStrategy maps a configuration name onto a GridStrategy.
//
// Parameters:
//   - s: "legacy" or "unravel" (case-insensitive)
//
// Returns:
//   - GridStrategy: the parsed strategy
//   - error: error if the name is not recognized
func ParseGridStrategy(s string) (GridStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy", "":
		return GridLegacy, nil
	case "unravel":
		return GridUnravel, nil
	default:
		return 0, fmt.Errorf("unknown grid strategy %q", s)
	}
}

// Coords decomposes index c into grid coordinates for a grid of side n.
// i = c mod n and j = (c / n) mod n for every strategy; k depends on the strategy.
//
// Parameters:
//   - c: the instance index
//   - n: the grid side length, must be positive
//
// Returns:
//   - i, j, k: the grid coordinates
func (g GridStrategy) Coords(c, n int) (i, j, k int) {
	i = c % n
	j = (c / n) % n
	switch g {
	case GridUnravel:
		k = (c / (n * n)) % n
	default:
		k = (c / n * n) % n
	}
	return i, j, k
}

// Config describes the initial instance layout.
type Config struct {
	// Count is the number of instances. Values above GridSize^3 yield duplicate positions.
	Count int
	// GridSize is the side length n of the placement grid.
	GridSize int
	// Spacing scales grid coordinates into world units.
	Spacing float32
	// Direction is the movement direction assigned to every instance.
	Direction mgl32.Vec3
	Strategy  GridStrategy
}

// DefaultConfig returns the cube demo layout: 100 instances on a 10-wide grid.
func DefaultConfig() Config {
	return Config{
		Count:     100,
		GridSize:  10,
		Spacing:   1,
		Direction: mgl32.Vec3{1, 1, 1},
		Strategy:  GridLegacy,
	}
}

// Initialize lays out cfg.Count instances on a grid. The result is deterministic: the same
// configuration always yields the same ordered list.
// Panics if cfg.GridSize is not positive.
//
// Parameters:
//   - cfg: the layout configuration
//
// Returns:
//   - []Instance: the instances in index order
func Initialize(cfg Config) []Instance {
	if cfg.GridSize <= 0 {
		panic(fmt.Sprintf("instance: grid size must be positive, got %d", cfg.GridSize))
	}
	if cfg.Count <= 0 {
		return nil
	}

	instances := make([]Instance, cfg.Count)
	for c := range instances {
		i, j, k := cfg.Strategy.Coords(c, cfg.GridSize)
		instances[c] = Instance{
			Position:  mgl32.Vec3{float32(i), float32(j), float32(k)}.Mul(cfg.Spacing),
			Direction: cfg.Direction,
		}
	}
	return instances
}
