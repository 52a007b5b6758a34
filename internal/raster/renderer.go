package raster

import (
	"image/color"
	"time"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/mesh"
)

// Axis gizmo colors for x, y and z.
var (
	AxisColorX = color.RGBA{R: 200, A: 255}
	AxisColorY = color.RGBA{G: 200, A: 255}
	AxisColorZ = color.RGBA{B: 200, A: 255}
)

const axisLength = 0.3

// Scene is everything needed to render one image.
type Scene struct {
	Meshes     []*mesh.Mesh
	Lights     []Light
	Eye        mathutil.Vec3
	View       mathutil.ViewVolume
	Background color.RGBA
	Axes       bool
}

// Stats summarizes a render.
type Stats struct {
	Faces           int `json:"faces"`
	Drawn           int `json:"drawn"`
	Degenerate      int `json:"degenerate"`
	Fragments       int `json:"fragments"`
	MissingTextures int `json:"missing_textures"`
}

// ShadeFaces runs the vertex stage over every face of every mesh.
func ShadeFaces(meshes []*mesh.Mesh, lights []Light, vt mathutil.ViewTransforms) []ShadedFace {
	n := 0
	for _, m := range meshes {
		n += len(m.Faces)
	}
	faces := make([]ShadedFace, 0, n)

	for _, m := range meshes {
		for _, f := range m.Faces {
			sf := ShadedFace{Material: f.Material}
			for k := range 3 {
				pos, normal, uv := m.Corner(f, k)
				sf.Triangle[k] = ShadeVertex(vt.Combined, vt.Camera, lights, pos, normal, uv)
			}
			faces = append(faces, sf)
		}
	}
	return faces
}

// DrawScene runs the fragment stage over a batch of shaded faces.
func DrawScene(s *Surface, faces []ShadedFace, fs *FragmentStage) Stats {
	st := Stats{Faces: len(faces)}
	for _, f := range faces {
		r := fs.Draw(s, f)
		st.Fragments += r.Fragments
		if r.Degenerate {
			st.Degenerate++
		}
		if r.MissingTexture {
			st.MissingTextures++
		}
		if r.Fragments > 0 {
			st.Drawn++
		}
	}
	return st
}

// DrawAxes draws short world-space x, y and z axes from the origin.
func DrawAxes(s *Surface, vt mathutil.ViewTransforms) {
	o := vt.Combined.MulPoint(mathutil.Vec3{})
	DrawLineH(s, AxisColorX, o, vt.Combined.MulPoint(mathutil.AxisX.Scale(axisLength)))
	DrawLineH(s, AxisColorY, o, vt.Combined.MulPoint(mathutil.AxisY.Scale(axisLength)))
	DrawLineH(s, AxisColorZ, o, vt.Combined.MulPoint(mathutil.AxisZ.Scale(axisLength)))
}

// Render draws scene into a new w×h surface.
func Render(scene *Scene, w, h int, fs *FragmentStage) (*Surface, Stats) {
	start := time.Now()

	vv := scene.View
	if vv.IsZero() {
		vv = mathutil.DefaultViewVolume()
	}
	vt := mathutil.NewViewTransforms(scene.Eye, vv, w, h)

	s := NewSurface(w, h)
	s.Reset(scene.Background)

	faces := ShadeFaces(scene.Meshes, scene.Lights, vt)
	st := DrawScene(s, faces, fs)
	if scene.Axes {
		DrawAxes(s, vt)
	}

	logger().Debug("render done",
		"width", w, "height", h,
		"faces", st.Faces, "drawn", st.Drawn,
		"degenerate", st.Degenerate, "fragments", st.Fragments,
		"missing_textures", st.MissingTextures,
		"elapsed", time.Since(start))
	return s, st
}
