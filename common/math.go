package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipSpaceCorrection maps an OpenGL-convention clip volume (depth in [-1, 1]) onto the
// WebGPU clip volume (depth in [0, 1]). Column-major, applied on the left of a projection.
var ClipSpaceCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective builds a right-handed perspective projection for WebGPU clip space.
// The result is recomputed from its arguments on every call.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return ClipSpaceCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Vec3Array copies an mgl32.Vec3 into a plain array suitable for GPU structs.
func Vec3Array(v mgl32.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}
