package model

import (
	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is shared base geometry: an ordered, non-indexed triangle list.
// Every three consecutive vertices form one triangle.
type Mesh struct {
	name     string
	vertices []GPUVertex
}

// NewMesh creates a mesh from a triangle list. Options transform the vertices once at creation.
//
// Parameters:
//   - name: identifier used as the cache key and GPU label
//   - vertices: the triangle list, length a multiple of 3
//   - options: functional options (scale, recentering)
//
// Returns:
//   - *Mesh: the new mesh
func NewMesh(name string, vertices []GPUVertex, options ...MeshBuilderOption) *Mesh {
	m := &Mesh{name: name, vertices: vertices}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Name returns the mesh identifier.
func (m *Mesh) Name() string {
	return m.name
}

// Vertices returns the vertex list. Callers must not modify it.
func (m *Mesh) Vertices() []GPUVertex {
	return m.vertices
}

// VertexCount returns the number of vertices (three per triangle).
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// VertexData returns the vertex list as raw bytes for upload. The bytes alias the vertices.
func (m *Mesh) VertexData() []byte {
	return common.SliceToBytes(m.vertices)
}

// Bounds returns the axis-aligned minimum and maximum corners. An empty mesh returns zeros.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.vertices) == 0 {
		return lo, hi
	}
	lo = mgl32.Vec3(m.vertices[0].Position)
	hi = lo
	for _, v := range m.vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

// BoundingRadius returns the distance from the origin to the farthest vertex.
func (m *Mesh) BoundingRadius() float32 {
	var r float32
	for _, v := range m.vertices {
		r = max(r, mgl32.Vec3(v.Position).Len())
	}
	return r
}
