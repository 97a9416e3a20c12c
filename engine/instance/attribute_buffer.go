package instance

import "errors"

// ErrAlreadyMapped is returned when Write is called while the buffer is already mapped.
var ErrAlreadyMapped = errors.New("instance buffer is already mapped")

// AttributeBuffer is a device-side array of per-instance attributes.
//
// Write access exists only inside Write: the mapping is acquired before fn runs and released
// (flushed) when fn returns or panics. The slice passed to fn must not be retained.
type AttributeBuffer interface {
	// Len returns the number of attribute slots.
	Len() int

	// Write maps the buffer, passes the mapped slots to fn, and releases the mapping.
	//
	// Parameters:
	//   - fn: receives exactly Len() slots in index order
	//
	// Returns:
	//   - error: ErrAlreadyMapped on re-entrant use, or an error from the release
	Write(fn func(attrs []GPUInstanceAttribute)) error
}

// HostBuffer is an AttributeBuffer kept in host memory.
// Mapped writes go to a staging copy that becomes visible through Snapshot only on release,
// mirroring how a device buffer behaves.
type HostBuffer struct {
	staging   []GPUInstanceAttribute
	committed []GPUInstanceAttribute
	mapped    bool
	flushes   int
}

var _ AttributeBuffer = &HostBuffer{}

// NewHostBuffer creates a zeroed host-memory buffer with n slots.
func NewHostBuffer(n int) *HostBuffer {
	return &HostBuffer{
		staging:   make([]GPUInstanceAttribute, n),
		committed: make([]GPUInstanceAttribute, n),
	}
}

func (b *HostBuffer) Len() int {
	return len(b.committed)
}

func (b *HostBuffer) Write(fn func(attrs []GPUInstanceAttribute)) error {
	if b.mapped {
		return ErrAlreadyMapped
	}
	b.mapped = true
	defer b.release()

	fn(b.staging)
	return nil
}

func (b *HostBuffer) release() {
	copy(b.committed, b.staging)
	b.mapped = false
	b.flushes++
}

// Fill overwrites every committed and staged slot with attr.
func (b *HostBuffer) Fill(attr GPUInstanceAttribute) {
	for i := range b.committed {
		b.committed[i] = attr
		b.staging[i] = attr
	}
}

// Snapshot returns a copy of the released (flushed) contents.
func (b *HostBuffer) Snapshot() []GPUInstanceAttribute {
	out := make([]GPUInstanceAttribute, len(b.committed))
	copy(out, b.committed)
	return out
}

// Mapped reports whether a Write is in progress.
func (b *HostBuffer) Mapped() bool {
	return b.mapped
}

// Flushes returns how many mappings have been released.
func (b *HostBuffer) Flushes() int {
	return b.flushes
}
