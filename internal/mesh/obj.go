package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mesh-rasterizer/internal/mathutil"
)

// ParseOBJ reads a Wavefront OBJ file. Material libraries named by mtllib
// are read relative to the OBJ file's directory.
func ParseOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}
	defer f.Close()

	return DecodeOBJ(f, path, func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(filepath.Dir(path), name))
	})
}

// OpenFunc opens a file referenced from inside an OBJ, such as a material
// library.
type OpenFunc func(name string) (io.ReadCloser, error)

// DecodeOBJ parses OBJ text from r. name labels errors and the mesh.
// open may be nil, in which case mtllib statements are ignored.
//
// Supported statements: v, vn, vt, f, usemtl, mtllib, o. Polygons are
// fan-triangulated. Negative indices count back from the latest element.
func DecodeOBJ(r io.Reader, name string, open OpenFunc) (*Mesh, error) {
	m := New(filepath.Base(name))
	cur := m.Material(DefaultMaterialName)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		args := fields[1:]

		fail := func(format string, a ...any) error {
			return fmt.Errorf("mesh: parse %s:%d: "+format, append([]any{name, lineNo}, a...)...)
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(args)
			if err != nil {
				return nil, fail("vertex: %v", err)
			}
			m.Verts = append(m.Verts, v)
		case "vn":
			v, err := parseVec3(args)
			if err != nil {
				return nil, fail("normal: %v", err)
			}
			m.Normals = append(m.Normals, v.Normalize())
		case "vt":
			if len(args) < 2 {
				return nil, fail("uv: want 2 components, got %d", len(args))
			}
			u, err1 := strconv.ParseFloat(args[0], 64)
			v, err2 := strconv.ParseFloat(args[1], 64)
			if err1 != nil || err2 != nil {
				return nil, fail("uv: %q", strings.Join(args, " "))
			}
			m.UVs = append(m.UVs, [2]float64{u, v})
		case "f":
			if len(args) < 3 {
				return nil, fail("face: want at least 3 corners, got %d", len(args))
			}
			corners := make([]Index, len(args))
			for i, a := range args {
				ix, err := parseCorner(a, len(m.Verts), len(m.UVs), len(m.Normals))
				if err != nil {
					return nil, fail("face corner %q: %w", a, err)
				}
				corners[i] = ix
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Faces = append(m.Faces, Face{
					Material: cur,
					Idx:      [3]Index{corners[0], corners[i], corners[i+1]},
				})
			}
		case "usemtl":
			if len(args) == 0 {
				return nil, fail("usemtl: missing name")
			}
			cur = m.Material(strings.Join(args, " "))
		case "mtllib":
			if len(args) == 0 {
				return nil, fail("mtllib: missing file name")
			}
			if open == nil {
				continue
			}
			lib := strings.Join(args, " ")
			if err := loadMTL(m, lib, filepath.Dir(name), open); err != nil {
				return nil, err
			}
		case "o":
			if len(args) > 0 {
				m.Name = strings.Join(args, " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", name, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	logger().Debug("obj parsed", "name", name, "verts", len(m.Verts), "faces", len(m.Faces), "materials", len(m.Materials))
	return m, nil
}

func loadMTL(m *Mesh, lib, dir string, open OpenFunc) error {
	rc, err := open(lib)
	if err != nil {
		return fmt.Errorf("mesh: read mtllib %s: %w", lib, err)
	}
	defer rc.Close()
	return DecodeMTL(rc, filepath.Join(dir, lib), m.Materials)
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn. Negative indices are made
// absolute against the current element counts.
func parseCorner(s string, nv, nt, nn int) (Index, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return Index{}, fmt.Errorf("too many components")
	}
	counts := [3]int{nv, nt, nn}
	var out [3]int
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return Index{}, fmt.Errorf("missing vertex index")
			}
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return Index{}, err
		}
		switch {
		case v < 0:
			v = counts[i] + 1 + v
			if v < 1 {
				return Index{}, fmt.Errorf("%w: relative index %s", ErrIndexRange, p)
			}
		case v == 0:
			return Index{}, fmt.Errorf("%w: zero index", ErrIndexRange)
		}
		out[i] = v
	}
	return Index{V: out[0], UV: out[1], N: out[2]}, nil
}

func parseVec3(args []string) (mathutil.Vec3, error) {
	if len(args) < 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 components, got %d", len(args))
	}
	var v mathutil.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}
