package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
)

// loaderBackend defines the generic interface for decoding meshes from files or streams.
// Concrete implementations (e.g., wavefrontLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the mesh file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.Mesh: the decoded mesh
	//   - error: error if reading or decoding fails
	Load(path string) (*model.Mesh, error)

	// LoadReader decodes a mesh from a reader stream.
	//
	// Parameters:
	//   - name: the name given to the decoded mesh
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *model.Mesh: the decoded mesh
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*model.Mesh, error)
}
