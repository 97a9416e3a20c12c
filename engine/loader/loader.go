package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"go.uber.org/zap"
)

// CubeOBJ is the built-in mesh: a unit cube spanning [-1, 1] on every axis.
//
//go:embed assets/cube.obj
var CubeOBJ []byte

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeWavefront selects the Wavefront OBJ loader backend.
	BackendTypeWavefront LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	meshCache map[string]*model.Mesh

	backend     loaderBackend
	meshOptions []model.MeshBuilderOption
	logger      *zap.Logger
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format behind a backend and caches meshes by name.
// Any decoding failure is returned; callers treat it as fatal at startup.
type Loader interface {
	// Load decodes a mesh file and caches the result by path.
	// If the mesh is already cached, the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - *model.Mesh: the loaded and cached mesh
	//   - error: error if the format is unsupported or decoding fails
	Load(path string) (*model.Mesh, error)

	// LoadBytes decodes an in-memory mesh and caches it by name.
	//
	// Parameters:
	//   - name: the cache key for the mesh
	//   - data: the raw file contents
	//
	// Returns:
	//   - *model.Mesh: the loaded mesh
	//   - error: error if decoding fails
	LoadBytes(name string, data []byte) (*model.Mesh, error)

	// LoadReader decodes a mesh from a reader stream and caches it by name.
	//
	// Parameters:
	//   - name: the cache key for the mesh
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *model.Mesh: the loaded mesh
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*model.Mesh, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	Get(name string) *model.Mesh

	// Meshes returns a copy of the mesh cache keyed by name.
	Meshes() map[string]*model.Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeWavefront)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		meshCache: make(map[string]*model.Mesh),
		logger:    zap.NewNop(),
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeWavefront:
		l.backend = newWavefrontLoaderBackend(l.meshOptions...)
	}
	return l
}

func (l *loader) Load(path string) (*model.Mesh, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	mesh, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return l.store(path, mesh), nil
}

func (l *loader) LoadBytes(name string, data []byte) (*model.Mesh, error) {
	return l.LoadReader(name, bytes.NewReader(data))
}

func (l *loader) LoadReader(name string, r io.Reader) (*model.Mesh, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	mesh, err := l.backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, mesh), nil
}

func (l *loader) Get(name string) *model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]*model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*model.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		result[k] = v
	}
	return result
}

func (l *loader) store(name string, mesh *model.Mesh) *model.Mesh {
	l.mu.Lock()
	l.meshCache[name] = mesh
	l.mu.Unlock()

	l.logger.Debug("mesh loaded",
		zap.String("name", name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Float32("radius", mesh.BoundingRadius()))
	return mesh
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only Wavefront OBJ is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}
