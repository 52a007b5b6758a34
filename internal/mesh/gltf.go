package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"mesh-rasterizer/internal/mathutil"
)

// LoadGLTF reads every triangle primitive of a .gltf or .glb file into one
// mesh. All faces share a default material; glTF materials are not mapped.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open gltf %s: %w", path, err)
	}

	m := New(filepath.Base(path))
	mtl := m.Material(DefaultMaterialName)

	for _, gm := range doc.Meshes {
		if err := appendGLTFMesh(doc, gm, m, mtl); err != nil {
			return nil, fmt.Errorf("mesh: gltf %s: mesh %q: %w", path, gm.Name, err)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger().Debug("gltf loaded", "path", path, "verts", len(m.Verts), "faces", len(m.Faces))
	return m, nil
}

func appendGLTFMesh(doc *gltf.Document, gm *gltf.Mesh, m *Mesh, mtl *Material) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []mathutil.Vec3
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3Accessor(doc, idx); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float64
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVec2Accessor(doc, idx); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		baseV, baseN, baseT := len(m.Verts), len(m.Normals), len(m.UVs)
		m.Verts = append(m.Verts, positions...)
		if len(normals) == len(positions) {
			for _, n := range normals {
				m.Normals = append(m.Normals, n.Normalize())
			}
		}
		if len(uvs) == len(positions) {
			for _, uv := range uvs {
				// glTF puts v=0 at the top of the image.
				m.UVs = append(m.UVs, [2]float64{uv[0], 1 - uv[1]})
			}
		}
		hasN := len(m.Normals) > baseN
		hasT := len(m.UVs) > baseT

		corner := func(i int) Index {
			ix := Index{V: baseV + i + 1}
			if hasN {
				ix.N = baseN + i + 1
			}
			if hasT {
				ix.UV = baseT + i + 1
			}
			return ix
		}

		var indices []int
		if prim.Indices != nil {
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				return fmt.Errorf("%w: index beyond %d positions", ErrIndexRange, len(positions))
			}
			m.Faces = append(m.Faces, Face{
				Material: mtl,
				Idx:      [3]Index{corner(a), corner(b), corner(c)},
			})
		}
	}
	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]mathutil.Vec3, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]mathutil.Vec3, acc.Count)
	for i := range out {
		off := i * stride
		for j := 0; j < 3; j++ {
			out[i][j] = float64(readFloat32(data[off+j*4:]))
		}
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([][2]float64, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = [2]float64{float64(readFloat32(data[off:])), float64(readFloat32(data[off+4:]))}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}
	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component %v", acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

// accessorBytes returns the accessor's slice of its buffer and the element
// stride, checking that every element fits.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if start < 0 || start > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor offset %d exceeds buffer of %d bytes", start, len(buf.Data))
	}
	if acc.Count > 0 {
		end := start + (acc.Count-1)*stride + elemSize
		if end > len(buf.Data) {
			return nil, 0, fmt.Errorf("accessor range %d..%d exceeds buffer of %d bytes", start, end, len(buf.Data))
		}
	}
	return buf.Data[start:], stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
