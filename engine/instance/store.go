package instance

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-instancing/common"
)

// Store owns the ordered instance collection and keeps a device buffer mirroring positions.
// The collection has fixed cardinality for its lifetime.
type Store struct {
	instances []Instance
	speed     float32
}

// NewStore wraps an instance collection. The store takes ownership of the slice.
//
// Parameters:
//   - instances: the instances, usually produced by Initialize
//   - options: functional options (movement speed)
//
// Returns:
//   - *Store: the new store
func NewStore(instances []Instance, options ...StoreBuilderOption) *Store {
	s := &Store{instances: instances}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Len returns the number of instances.
func (s *Store) Len() int {
	return len(s.instances)
}

// At returns a copy of the instance at index i.
func (s *Store) At(i int) Instance {
	return s.instances[i]
}

// Instances returns a copy of the collection in index order.
func (s *Store) Instances() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// Speed returns the movement speed in world units per second.
func (s *Store) Speed() float32 {
	return s.speed
}

// Advance moves every instance along its direction by speed*dt.
// With zero speed the positions are unchanged.
//
// Parameters:
//   - dt: elapsed time in seconds
func (s *Store) Advance(dt float32) {
	if s.speed == 0 || dt == 0 {
		return
	}
	step := s.speed * dt
	for i := range s.instances {
		inst := &s.instances[i]
		inst.Position = inst.Position.Add(inst.Direction.Mul(step))
	}
}

// Sync writes every instance position into the matching slot of buf, in index order.
// After Sync returns, buf[i].WorldPosition equals instance i's position for every i,
// and the mapping has been released.
// Panics if buf and the store differ in length.
//
// Parameters:
//   - buf: the device buffer to refresh
//
// Returns:
//   - error: error if the buffer could not be mapped or released
func (s *Store) Sync(buf AttributeBuffer) error {
	if buf.Len() != len(s.instances) {
		panic(fmt.Sprintf("instance: buffer has %d slots for %d instances", buf.Len(), len(s.instances)))
	}
	err := buf.Write(func(attrs []GPUInstanceAttribute) {
		for i := range s.instances {
			attrs[i].WorldPosition = common.Vec3Array(s.instances[i].Position)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to sync instance buffer: %w", err)
	}
	return nil
}
