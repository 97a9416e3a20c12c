package instance

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUInstanceAttributeSource is the WGSL definition of the InstanceInput struct.
// Matches GPUInstanceAttribute layout exactly (12 bytes, vertex buffer packed).
//
//go:embed assets/instance_attribute.wgsl
var GPUInstanceAttributeSource string

// GPUInstanceAttribute is the per-instance vertex attribute consumed by the instanced draw.
// Bound at shader location 2 with step mode "instance".
// Size: 12 bytes (vec3<f32>, tightly packed in a vertex buffer).
type GPUInstanceAttribute struct {
	WorldPosition [3]float32 // offset 0: world-space translation of the instance
}

// Size returns the size of the GPUInstanceAttribute struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (12)
func (g *GPUInstanceAttribute) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the attribute into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 12-byte little-endian buffer
func (g *GPUInstanceAttribute) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.WorldPosition[i]))
	}
	return buf
}
