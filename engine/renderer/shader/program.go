package shader

import (
	_ "embed"
	"fmt"
	"sort"
)

// Built-in program names.
const (
	// ProgramStatic shades every instance with a flat base color.
	ProgramStatic = "static"
	// ProgramLit shades with a single directional light plus an ambient floor.
	ProgramLit = "lit"
)

//go:embed assets/instanced.vert.wgsl
var instancedVertexSource string

//go:embed assets/static.frag.wgsl
var staticFragmentSource string

//go:embed assets/lit.frag.wgsl
var litFragmentSource string

var programFragments = map[string]string{
	ProgramStatic: staticFragmentSource,
	ProgramLit:    litFragmentSource,
}

// Program is a vertex/fragment shader pair ready to be placed in a pipeline.
type Program struct {
	Name     string
	Vertex   Shader
	Fragment Shader
}

// NewProgram builds one of the built-in programs. All programs share the instanced
// vertex stage and differ in their fragment stage.
//
// Parameters:
//   - name: ProgramStatic or ProgramLit
//
// Returns:
//   - Program: the parsed shader pair
//   - error: an error for unknown names or unparsable sources
func NewProgram(name string) (Program, error) {
	frag, ok := programFragments[name]
	if !ok {
		return Program{}, fmt.Errorf("shader: unknown program %q (have %v)", name, ProgramNames())
	}
	vs, err := NewShader(name+".vert", ShaderTypeVertex, instancedVertexSource)
	if err != nil {
		return Program{}, err
	}
	fs, err := NewShader(name+".frag", ShaderTypeFragment, frag)
	if err != nil {
		return Program{}, err
	}
	return Program{Name: name, Vertex: vs, Fragment: fs}, nil
}

// ProgramNames lists the built-in program names in sorted order.
func ProgramNames() []string {
	names := make([]string, 0, len(programFragments))
	for name := range programFragments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
