// Package mesh holds triangle meshes and their materials, and loads them from
// Wavefront OBJ/MTL and glTF files.
package mesh

import (
	"errors"
	"fmt"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/rgb"
)

// ErrIndexRange reports a face index that points outside its array.
var ErrIndexRange = errors.New("mesh: index out of range")

// DefaultMaterialName is used for faces that precede any usemtl.
const DefaultMaterialName = "no_mtl"

// Material holds reflectance terms. SpecExp and Specular are carried but not
// used by the Lambertian shader.
type Material struct {
	Name     string
	Ambient  rgb.RGB
	Diffuse  rgb.RGB
	Specular rgb.RGB
	SpecExp  float64
	Texture  string // optional texture name or path
}

// DefaultMaterial returns the magenta fallback material.
func DefaultMaterial(name string) *Material {
	return &Material{
		Name:    name,
		Ambient: rgb.Grey(0.1),
		Diffuse: rgb.RGB{1, 0, 1},
	}
}

// Index references one face corner. All fields are 1-based; 0 means absent.
type Index struct {
	V  int
	UV int
	N  int
}

// Face is a triangle with its material.
type Face struct {
	Material *Material
	Idx      [3]Index
}

// Mesh holds geometry arrays shared by its faces.
type Mesh struct {
	Name      string
	Materials map[string]*Material
	Faces     []Face
	Verts     []mathutil.Vec3
	Normals   []mathutil.Vec3
	UVs       [][2]float64
}

// New returns an empty mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name, Materials: make(map[string]*Material)}
}

// Material returns the named material, creating a default one if needed.
func (m *Mesh) Material(name string) *Material {
	if mtl, ok := m.Materials[name]; ok {
		return mtl
	}
	mtl := DefaultMaterial(name)
	m.Materials[name] = mtl
	return mtl
}

// Validate checks every face index against the geometry arrays.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		if f.Material == nil {
			return fmt.Errorf("mesh: %s: face %d has no material", m.Name, fi)
		}
		for k, ix := range f.Idx {
			if ix.V < 1 || ix.V > len(m.Verts) {
				return fmt.Errorf("%w: %s: face %d corner %d vertex %d of %d", ErrIndexRange, m.Name, fi, k, ix.V, len(m.Verts))
			}
			if ix.UV < 0 || ix.UV > len(m.UVs) {
				return fmt.Errorf("%w: %s: face %d corner %d uv %d of %d", ErrIndexRange, m.Name, fi, k, ix.UV, len(m.UVs))
			}
			if ix.N < 0 || ix.N > len(m.Normals) {
				return fmt.Errorf("%w: %s: face %d corner %d normal %d of %d", ErrIndexRange, m.Name, fi, k, ix.N, len(m.Normals))
			}
		}
	}
	return nil
}

// FaceNormal returns the unit geometric normal from the face winding.
func (m *Mesh) FaceNormal(f Face) mathutil.Vec3 {
	a := m.Verts[f.Idx[0].V-1]
	b := m.Verts[f.Idx[1].V-1]
	c := m.Verts[f.Idx[2].V-1]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Corner resolves corner k of face f. A missing normal falls back to the
// face normal and a missing UV to (0,0). The mesh must be valid.
func (m *Mesh) Corner(f Face, k int) (pos, normal mathutil.Vec3, uv [2]float64) {
	ix := f.Idx[k]
	pos = m.Verts[ix.V-1]
	if ix.N > 0 {
		normal = m.Normals[ix.N-1]
	} else {
		normal = m.FaceNormal(f)
	}
	if ix.UV > 0 {
		uv = m.UVs[ix.UV-1]
	}
	return pos, normal, uv
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	lo, hi = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}
