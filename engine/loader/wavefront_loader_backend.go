package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformed is wrapped by every decoding error caused by invalid file contents.
var ErrMalformed = errors.New("malformed mesh data")

// wavefrontLoaderBackend decodes the geometry subset of Wavefront OBJ: positions (v), normals (vn)
// and polygonal faces (f). Faces are fan-triangulated and de-indexed into a flat triangle list.
// Texture coordinates, groups, smoothing and materials are accepted and ignored.
type wavefrontLoaderBackend struct {
	meshOptions []model.MeshBuilderOption
}

var _ loaderBackend = &wavefrontLoaderBackend{}

func newWavefrontLoaderBackend(options ...model.MeshBuilderOption) *wavefrontLoaderBackend {
	return &wavefrontLoaderBackend{meshOptions: options}
}

func (b *wavefrontLoaderBackend) Load(path string) (*model.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.LoadReader(name, f)
}

func (b *wavefrontLoaderBackend) LoadReader(name string, r io.Reader) (*model.Mesh, error) {
	d := &wavefrontDecoder{}
	if err := d.decode(r); err != nil {
		return nil, err
	}
	if len(d.vertices) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformed)
	}
	return model.NewMesh(name, d.vertices, b.meshOptions...), nil
}

// faceCorner is one resolved corner of a face. normal is -1 when the corner has none.
type faceCorner struct {
	position int
	normal   int
}

type wavefrontDecoder struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	vertices  []model.GPUVertex
	line      int
}

func (d *wavefrontDecoder) decode(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v mgl32.Vec3
			if v, err = d.parseVec3(fields[1:]); err == nil {
				d.positions = append(d.positions, v)
			}
		case "vn":
			var n mgl32.Vec3
			if n, err = d.parseVec3(fields[1:]); err == nil {
				d.normals = append(d.normals, n)
			}
		case "f":
			err = d.parseFace(fields[1:])
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read line %d: %w", d.line+1, err)
	}
	return nil
}

func (d *wavefrontDecoder) malformed(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, d.line, fmt.Sprintf(format, args...))
}

func (d *wavefrontDecoder) parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, d.malformed("expected 3 components, got %d", len(fields))
	}
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, d.malformed("invalid number %q", fields[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

func (d *wavefrontDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return d.malformed("face needs at least 3 vertices, got %d", len(fields))
	}

	corners := make([]faceCorner, len(fields))
	for i, field := range fields {
		c, err := d.parseCorner(field)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	// Fan triangulation around the first corner.
	for i := 1; i < len(corners)-1; i++ {
		d.appendTriangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

// parseCorner resolves "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based indices.
func (d *wavefrontDecoder) parseCorner(field string) (faceCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return faceCorner{}, d.malformed("invalid face vertex %q", field)
	}

	pos, err := d.resolveIndex(parts[0], len(d.positions))
	if err != nil {
		return faceCorner{}, err
	}

	c := faceCorner{position: pos, normal: -1}
	if len(parts) == 3 && parts[2] != "" {
		if c.normal, err = d.resolveIndex(parts[2], len(d.normals)); err != nil {
			return faceCorner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a one-based (or negative, relative) OBJ index into a slice index.
func (d *wavefrontDecoder) resolveIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, d.malformed("invalid index %q", s)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += n
	default:
		return 0, d.malformed("index 0 is not valid")
	}
	if idx < 0 || idx >= n {
		return 0, d.malformed("index %s out of range (%d defined)", s, n)
	}
	return idx, nil
}

func (d *wavefrontDecoder) appendTriangle(a, b, c faceCorner) {
	pa, pb, pc := d.positions[a.position], d.positions[b.position], d.positions[c.position]

	// Corners without a normal get the flat face normal.
	var flat mgl32.Vec3
	if n := pb.Sub(pa).Cross(pc.Sub(pa)); n.Len() > 0 {
		flat = n.Normalize()
	}

	for _, corner := range [3]faceCorner{a, b, c} {
		normal := flat
		if corner.normal >= 0 {
			normal = d.normals[corner.normal]
		}
		d.vertices = append(d.vertices, model.GPUVertex{
			Position: common.Vec3Array(d.positions[corner.position]),
			Normal:   common.Vec3Array(normal),
		})
	}
}
