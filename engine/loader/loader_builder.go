package loader

import (
	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMesh is an option builder that pre-populates the mesh cache with a mesh.
//
// Parameters:
//   - key: the cache key for the mesh
//   - mesh: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, mesh *model.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = mesh
	}
}

// WithMeshOptions sets options applied to every mesh the loader decodes, such as scaling.
//
// Parameters:
//   - options: mesh builder options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh options to a loader
func WithMeshOptions(options ...model.MeshBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.meshOptions = append(l.meshOptions, options...)
	}
}

// WithLogger sets the logger used to report loaded meshes.
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
