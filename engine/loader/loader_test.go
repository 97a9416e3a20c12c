package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CubeOBJ(t *testing.T) {
	l := NewLoader(BackendTypeWavefront)

	mesh, err := l.LoadBytes("cube", CubeOBJ)

	require.NoError(t, err)
	assert.Equal(t, 36, mesh.VertexCount())
	assert.Equal(t, model.GPUVertex{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{0, 0, 1}}, mesh.Vertices()[0])
	assert.Equal(t, model.GPUVertex{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 0, 1}}, mesh.Vertices()[2])

	lo, hi := mesh.Bounds()
	assert.Equal(t, float32(-1), lo.X())
	assert.Equal(t, float32(1), hi.Z())
}

func TestLoader_CubeNormalsFaceOutward(t *testing.T) {
	mesh, err := NewLoader(BackendTypeWavefront).LoadBytes("cube", CubeOBJ)
	require.NoError(t, err)

	v := mesh.Vertices()
	for i := 0; i < len(v); i += 3 {
		a, b, c := v[i].Position, v[i+1].Position, v[i+2].Position
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		n := v[i].Normal
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		assert.Greater(t, dot, float32(0), "triangle %d winds against its normal", i/3)
	}
}

func TestLoader_MeshOptions(t *testing.T) {
	l := NewLoader(BackendTypeWavefront, WithMeshOptions(model.WithScale(0.25)))

	mesh, err := l.LoadBytes("cube", CubeOBJ)

	require.NoError(t, err)
	assert.Equal(t, float32(0.25), mesh.Vertices()[2].Position[0])
}

func TestLoader_FanTriangulationAndFlatNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 2 1 0
v 1 2 0
v 0 1 0
f 1 2 3 4 5
`
	mesh, err := NewLoader(BackendTypeWavefront).LoadReader("pentagon", strings.NewReader(src))

	require.NoError(t, err)
	require.Equal(t, 9, mesh.VertexCount())
	v := mesh.Vertices()
	assert.Equal(t, [3]float32{0, 0, 0}, v[3].Position)
	assert.Equal(t, [3]float32{2, 1, 0}, v[4].Position)
	assert.Equal(t, [3]float32{1, 2, 0}, v[5].Position)
	for _, vert := range v {
		assert.Equal(t, [3]float32{0, 0, 1}, vert.Normal)
	}
}

func TestLoader_IndexForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 1 0
f 1/1/1 2/1 -1//-1
`
	mesh, err := NewLoader(BackendTypeWavefront).LoadReader("forms", strings.NewReader(src))

	require.NoError(t, err)
	v := mesh.Vertices()
	assert.Equal(t, [3]float32{0, 1, 0}, v[0].Normal)
	assert.Equal(t, [3]float32{0, 0, 1}, v[1].Normal)
	assert.Equal(t, [3]float32{0, 1, 0}, v[2].Position)
	assert.Equal(t, [3]float32{0, 1, 0}, v[2].Normal)
}

func TestLoader_Malformed(t *testing.T) {
	tests := map[string]string{
		"short vertex":   "v 1 2\n",
		"bad number":     "v a b c\n",
		"short face":     "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"out of range":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"zero index":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"bad normal ref": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n",
		"no faces":       "v 0 0 0\n",
		"empty":          "",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader(BackendTypeWavefront).LoadReader(name, strings.NewReader(src))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoader_MalformedReportsLine(t *testing.T) {
	_, err := NewLoader(BackendTypeWavefront).LoadReader("x", strings.NewReader("# header\nv 0 0 0\nv 1 nope 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoader_Cache(t *testing.T) {
	l := NewLoader(BackendTypeWavefront)

	first, err := l.LoadBytes("cube", CubeOBJ)
	require.NoError(t, err)
	second, err := l.LoadBytes("cube", []byte("not an obj"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, l.Get("cube"))
	assert.Nil(t, l.Get("missing"))
	assert.Len(t, l.Meshes(), 1)
}

func TestLoader_WithMesh(t *testing.T) {
	pre := model.NewMesh("pre", nil)
	l := NewLoader(BackendTypeWavefront, WithMesh("pre", pre))
	assert.Same(t, pre, l.Get("pre"))
}

func TestLoader_LoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.obj")
	require.NoError(t, os.WriteFile(path, CubeOBJ, 0o644))

	l := NewLoader(BackendTypeWavefront)
	mesh, err := l.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "cube", mesh.Name())
	assert.Same(t, mesh, l.Get(path))

	_, err = l.Load(filepath.Join(dir, "cube.gltf"))
	assert.ErrorContains(t, err, "unsupported mesh format")

	_, err = l.Load(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}
