package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/rgb"
	"mesh-rasterizer/internal/texture"
)

// flatFace builds a face from screen points with h = 1, full white light
// and no ambient, so covered pixels take the diffuse color unchanged.
func flatFace(kd rgb.RGB, z float64, pts ...[2]float64) ShadedFace {
	f := ShadedFace{Material: &mesh.Material{Name: "flat", Diffuse: kd}}
	for i, p := range pts {
		f.Triangle[i] = ShadedVertex{
			Coord: mathutil.Vec4{p[0], p[1], z, 1},
			Z:     z,
			Light: rgb.Grey(1),
			H:     1,
		}
	}
	return f
}

func linearStage() *FragmentStage {
	return &FragmentStage{Gamma: 1, AmbientDamping: AmbientDamping}
}

func covers(s *Surface) map[image.Point]bool {
	out := make(map[image.Point]bool)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if s.DepthAt(x, y) != FarDepth {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func TestEdgeOwnership(t *testing.T) {
	tests := []struct {
		name string
		p, q [2]float64
		ref  float64
		want bool
	}{
		{"reference above horizontal", [2]float64{0, 0}, [2]float64{4, 0}, -5, true},
		{"reference below horizontal", [2]float64{0, 0}, [2]float64{4, 0}, 5, false},
		{"diagonal through reference", [2]float64{0, 0}, [2]float64{4, 4}, -1, true},
		{"diagonal through reference, other side", [2]float64{0, 0}, [2]float64{4, 4}, 1, false},
		{"vertical", [2]float64{3, 0}, [2]float64{3, 5}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEdge(tt.p, tt.q)
			if got := e.owns(tt.ref); got != tt.want {
				t.Errorf("owns(%v) = %v, want %v", tt.ref, got, tt.want)
			}
			if e.owns(tt.ref) == e.owns(-tt.ref) {
				t.Error("an edge must be owned by exactly one side")
			}
		})
	}
}

func TestSharedEdgeOwnedOnce(t *testing.T) {
	lower := flatFace(rgb.RGB{1, 0, 0}, -5, [2]float64{1, 1}, [2]float64{3, 1}, [2]float64{3, 3})
	upper := flatFace(rgb.RGB{0, 1, 0}, -5, [2]float64{1, 1}, [2]float64{3, 3}, [2]float64{1, 3})
	fs := linearStage()

	s1 := NewSurface(5, 5)
	r1 := fs.Draw(s1, lower)
	s2 := NewSurface(5, 5)
	r2 := fs.Draw(s2, upper)

	want1 := map[image.Point]bool{{2, 2}: true, {3, 2}: true, {3, 3}: true}
	want2 := map[image.Point]bool{{2, 3}: true}

	got1, got2 := covers(s1), covers(s2)
	if !equalSets(got1, want1) {
		t.Errorf("lower triangle covers %v, want %v", got1, want1)
	}
	if !equalSets(got2, want2) {
		t.Errorf("upper triangle covers %v, want %v", got2, want2)
	}
	if r1.Fragments != 3 || r2.Fragments != 1 {
		t.Errorf("fragments = %d, %d; want 3, 1", r1.Fragments, r2.Fragments)
	}
	for p := range got1 {
		if got2[p] {
			t.Errorf("pixel %v drawn by both triangles", p)
		}
	}

	// Both on one surface: each pixel keeps exactly the color of its owner.
	s := NewSurface(5, 5)
	fs.Draw(s, lower)
	fs.Draw(s, upper)
	for p := range want1 {
		if got := s.At(p.X, p.Y); got != red {
			t.Errorf("At%v = %v, want red", p, got)
		}
	}
	if got := s.At(2, 3); got != green {
		t.Errorf("At(2,3) = %v, want green", got)
	}
}

func TestSharedEdgeLargeQuad(t *testing.T) {
	// A quad split along its other diagonal, at non-integer positions.
	a := [2]float64{0.5, 0.25}
	b := [2]float64{12.75, 1.5}
	c := [2]float64{11.25, 13.5}
	d := [2]float64{1.5, 12}
	fs := linearStage()

	s1 := NewSurface(16, 16)
	fs.Draw(s1, flatFace(rgb.Grey(1), -5, a, b, d))
	s2 := NewSurface(16, 16)
	fs.Draw(s2, flatFace(rgb.Grey(1), -5, b, c, d))

	for p := range covers(s1) {
		if covers(s2)[p] {
			t.Errorf("pixel %v drawn by both triangles", p)
		}
	}
}

func TestDepthOrderIndependence(t *testing.T) {
	far := flatFace(rgb.RGB{1, 0, 0}, -5, [2]float64{0, 0}, [2]float64{8, 0}, [2]float64{0, 8})
	near := flatFace(rgb.RGB{0, 1, 0}, -4, [2]float64{1, 1}, [2]float64{9, 1}, [2]float64{1, 9})
	fs := linearStage()

	s1 := NewSurface(10, 10)
	fs.Draw(s1, far)
	fs.Draw(s1, near)

	s2 := NewSurface(10, 10)
	fs.Draw(s2, near)
	fs.Draw(s2, far)

	for i := range s1.Color {
		if s1.Color[i] != s2.Color[i] {
			t.Fatalf("color byte %d differs between draw orders", i)
		}
	}
	if got := s1.At(2, 2); got != green {
		t.Errorf("overlap pixel = %v, want nearer green", got)
	}
	if got := s1.At(6, 1); got != red {
		t.Errorf("far-only pixel = %v, want red", got)
	}
	if got := s1.DepthAt(2, 2); math.Abs(got+4) > 1e-12 {
		t.Errorf("depth = %v, want -4", got)
	}
}

func TestDepthTieKeepsFirst(t *testing.T) {
	fs := linearStage()
	s := NewSurface(6, 6)
	fs.Draw(s, flatFace(rgb.RGB{1, 0, 0}, -5, [2]float64{0, 0}, [2]float64{5, 0}, [2]float64{0, 5}))
	r := fs.Draw(s, flatFace(rgb.RGB{0, 0, 1}, -5, [2]float64{0, 0}, [2]float64{5, 0}, [2]float64{0, 5}))
	if r.Fragments != 0 {
		t.Errorf("equal depth overwrote %d pixels", r.Fragments)
	}
	if got := s.At(1, 1); got != red {
		t.Errorf("At(1,1) = %v, want red", got)
	}
}

func TestPerspectiveWeights(t *testing.T) {
	// Clip-space a=(0,0,h=1) and b=(18,0,h=3). The screen midpoint x=3
	// corresponds to t=0.25 along the segment.
	bw, gw := perspectiveWeights(1, 3, 1, 0.5, 0)
	if math.Abs(bw-0.25) > 1e-12 || gw != 0 {
		t.Errorf("weights = %v, %v; want 0.25, 0", bw, gw)
	}

	bw, gw = perspectiveWeights(2, 2, 2, 0.3, 0.2)
	if math.Abs(bw-0.3) > 1e-12 || math.Abs(gw-0.2) > 1e-12 {
		t.Errorf("equal h should keep weights, got %v, %v", bw, gw)
	}
}

func TestPerspectiveCorrectUV(t *testing.T) {
	tex := texture.New("strip", 4, 1)
	tex.Set(0, 0, red)
	tex.Set(1, 0, green)
	tex.Set(2, 0, blue)
	tex.Set(3, 0, white)
	cache := texture.NewCache(nil, "")
	cache.Put("strip", tex)

	face := ShadedFace{
		Material: &mesh.Material{Name: "textured", Diffuse: rgb.RGB{1, 0, 1}, Texture: "strip"},
		Triangle: ShadedTriangle{
			{Coord: mathutil.Vec4{0, 0, 0, 1}, Z: -5, Light: rgb.Grey(1), U: 0, H: 1},
			{Coord: mathutil.Vec4{18, 0, 0, 3}, Z: -5, Light: rgb.Grey(1), U: 1, H: 3},
			{Coord: mathutil.Vec4{0, -6, 0, 1}, Z: -5, Light: rgb.Grey(1), U: 0, H: 1},
		},
	}
	fs := &FragmentStage{Textures: cache, Gamma: 1}
	s := NewSurface(8, 2)
	r := fs.Draw(s, face)
	if r.MissingTexture || r.Degenerate {
		t.Fatalf("unexpected result %+v", r)
	}

	// Screen-linear interpolation would give u=0.5 and sample blue.
	if got := s.At(3, 0); got != green {
		t.Errorf("At(3,0) = %v, want green (u=0.25)", got)
	}
}

func TestTriangleClipsToSurface(t *testing.T) {
	tests := []struct {
		name string
		pts  [3][2]float64
		want int
	}{
		{"overhangs every side", [3][2]float64{{-5, -5}, {25, -5}, {-5, 25}}, 100},
		{"far vertex", [3][2]float64{{-1, -1}, {1e6, -1}, {-1, 20}}, 100},
		{"vertex past int range", [3][2]float64{{-1, -1}, {1e19, -1}, {-1, 20}}, 100},
		{"vertex far past int range", [3][2]float64{{-1, -1}, {1e25, -1}, {-1, 20}}, 100},
		{"right of surface", [3][2]float64{{20, 0}, {30, 0}, {20, 5}}, 0},
		{"beyond int range", [3][2]float64{{1e25, 0}, {2e25, 0}, {1e25, 5}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(10, 10)
			r := linearStage().Draw(s, flatFace(rgb.Grey(1), -5, tt.pts[0], tt.pts[1], tt.pts[2]))
			if r.Degenerate {
				t.Fatalf("result = %+v, want non-degenerate", r)
			}
			if r.Fragments != tt.want {
				t.Errorf("fragments = %d, want %d", r.Fragments, tt.want)
			}
			if got := len(covers(s)); got != tt.want {
				t.Errorf("covered %d pixels, want %d", got, tt.want)
			}
			if len(s.Color) != 10*10*3 || len(s.Depth) != 10*10 {
				t.Errorf("buffers resized to %d, %d", len(s.Color), len(s.Depth))
			}
		})
	}
}

func TestTexturedQuadSeam(t *testing.T) {
	tex := texture.New("grid", 8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tex.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 100, A: 255})
		}
	}
	cache := texture.NewCache(nil, "")
	cache.Put("grid", tex)

	vert := func(x, y, h, u, v float64) ShadedVertex {
		return ShadedVertex{
			Coord: mathutil.Vec4{x * h, y * h, -5, h},
			Z:     -5,
			Light: rgb.Grey(1),
			U:     u,
			V:     v,
			H:     h,
		}
	}
	p0 := vert(1, 1, 1, 0, 0)
	p1 := vert(9, 1, 4, 1, 0)
	p2 := vert(9, 9, 2, 1, 1)
	p3 := vert(1, 9, 1, 0, 1)
	lower := ShadedTriangle{p0, p1, p2}
	upper := ShadedTriangle{p0, p2, p3}

	mtl := &mesh.Material{Name: "grid", Texture: "grid"}
	fs := &FragmentStage{Textures: cache, Gamma: 1}
	s := NewSurface(11, 11)
	for _, tri := range []ShadedTriangle{lower, upper} {
		if r := fs.Draw(s, ShadedFace{Material: mtl, Triangle: tri}); r.Degenerate || r.MissingTexture {
			t.Fatalf("unexpected result %+v", r)
		}
	}

	lowerSetup, ok1 := newTriangleSetup(lower)
	upperSetup, ok2 := newTriangleSetup(upper)
	if !ok1 || !ok2 {
		t.Fatal("quad halves should not be degenerate")
	}

	// (1,1) sits on two unowned outer edges; the rest of the diagonal is drawn.
	for k := 2; k <= 9; k++ {
		x, y := float64(k), float64(k)
		_, b1, g1 := lowerSetup.weights(x, y)
		u1, v1 := lower.uv(b1, g1)
		_, b2, g2 := upperSetup.weights(x, y)
		u2, v2 := upper.uv(b2, g2)
		if math.Abs(u1-u2) > 1e-9 || math.Abs(v1-v2) > 1e-9 {
			t.Errorf("(%d,%d): lower uv (%v,%v), upper uv (%v,%v)", k, k, u1, v1, u2, v2)
		}
		if s.DepthAt(k, k) == FarDepth {
			t.Errorf("diagonal pixel (%d,%d) not drawn", k, k)
			continue
		}
		if got, want := s.At(k, k), SampleNearest(tex, u1, v1); got != want {
			t.Errorf("At(%d,%d) = %v, want %v", k, k, got, want)
		}
	}
}

func TestGammaOutput(t *testing.T) {
	for _, g := range []float64{1, 1.8, 2.05, 2.2} {
		f := flatFace(rgb.Grey(1), -5, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{0, 4})
		for i := range f.Triangle {
			f.Triangle[i].Light = rgb.Grey(0.5)
		}
		s := NewSurface(5, 5)
		fs := &FragmentStage{Gamma: g}
		fs.Draw(s, f)

		want := uint8(math.Round(255 * math.Pow(0.5, 1/g)))
		if got := s.At(1, 1); got.R != want || got.G != want || got.B != want {
			t.Errorf("gamma %v: got %v, want %d", g, got, want)
		}
	}
}

func TestAmbientTerm(t *testing.T) {
	f := flatFace(rgb.RGB{1, 0.5, 0}, -5, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{0, 4})
	f.Material.Ambient = rgb.Grey(1)
	for i := range f.Triangle {
		f.Triangle[i].Light = rgb.RGB{}
	}
	s := NewSurface(5, 5)
	(&FragmentStage{Gamma: 1, AmbientDamping: 0.5}).Draw(s, f)

	want := color.RGBA{R: 128, G: 64, B: 0, A: 255}
	if got := s.At(1, 1); got != want {
		t.Errorf("ambient only = %v, want %v", got, want)
	}
}

func TestDegenerateSkipped(t *testing.T) {
	tests := []struct {
		name string
		face ShadedFace
	}{
		{"collinear", flatFace(rgb.Grey(1), -5, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})},
		{"repeated vertex", flatFace(rgb.Grey(1), -5, [2]float64{1, 1}, [2]float64{1, 1}, [2]float64{3, 1})},
	}
	zeroH := flatFace(rgb.Grey(1), -5, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{0, 4})
	zeroH.Triangle[1].Coord[3] = 0
	tests = append(tests, struct {
		name string
		face ShadedFace
	}{"zero h", zeroH})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(5, 5)
			r := linearStage().Draw(s, tt.face)
			if !r.Degenerate || r.Fragments != 0 {
				t.Errorf("result = %+v, want degenerate with no fragments", r)
			}
			if len(covers(s)) != 0 {
				t.Error("degenerate triangle wrote pixels")
			}
		})
	}
}

func TestMissingTextureFallsBackToDiffuse(t *testing.T) {
	f := flatFace(rgb.RGB{0, 0, 1}, -5, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{0, 4})
	f.Material.Texture = "absent.tga"

	s := NewSurface(5, 5)
	fs := &FragmentStage{Textures: texture.NewCache(nil, t.TempDir()), Gamma: 1}
	r := fs.Draw(s, f)
	if !r.MissingTexture {
		t.Error("MissingTexture not reported")
	}
	if got := s.At(1, 1); got != blue {
		t.Errorf("At(1,1) = %v, want diffuse blue", got)
	}
}

func TestSampleNearest(t *testing.T) {
	tex := texture.New("t", 2, 2)
	tex.Set(0, 0, red)
	tex.Set(1, 0, green)
	tex.Set(0, 1, blue)
	tex.Set(1, 1, white)

	tests := []struct {
		u, v float64
		want color.RGBA
	}{
		{0, 0, red},
		{0.49, 0.2, red},
		{0.5, 0, green},
		{1, 0, green},
		{0, 1, blue},
		{1, 1, white},
		{-3, 7, blue},
		{math.NaN(), 0, red},
	}
	for _, tt := range tests {
		if got := SampleNearest(tex, tt.u, tt.v); got != tt.want {
			t.Errorf("SampleNearest(%v,%v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func equalSets(a, b map[image.Point]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}
