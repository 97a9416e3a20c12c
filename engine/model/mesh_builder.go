package model

// MeshBuilderOption is a functional option applied to a Mesh at creation.
type MeshBuilderOption func(m *Mesh)

// WithScale uniformly scales every vertex position. Normals are unchanged.
//
// Parameters:
//   - s: the scale factor (values <= 0 are ignored)
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithScale(s float32) MeshBuilderOption {
	return func(m *Mesh) {
		if s <= 0 || s == 1 {
			return
		}
		for i := range m.vertices {
			for j := range 3 {
				m.vertices[i].Position[j] *= s
			}
		}
	}
}

// WithRecenter translates the mesh so its bounding box is centered on the origin.
func WithRecenter() MeshBuilderOption {
	return func(m *Mesh) {
		lo, hi := m.Bounds()
		center := lo.Add(hi).Mul(0.5)
		for i := range m.vertices {
			for j := range 3 {
				m.vertices[i].Position[j] -= center[j]
			}
		}
	}
}
