package raster

import (
	"math"

	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/rgb"
	"mesh-rasterizer/internal/texture"
)

// AmbientDamping scales the ambient term so it does not wash out the
// light-only term.
const AmbientDamping = 0.23

// ShadedTriangle is the vertex stage output for one face.
type ShadedTriangle [3]ShadedVertex

// ShadedFace pairs a shaded triangle with its material.
type ShadedFace struct {
	Material *mesh.Material
	Triangle ShadedTriangle
}

// FaceResult reports what happened to a single face.
type FaceResult struct {
	Fragments      int  // pixels that passed the depth test
	Degenerate     bool // skipped for zero area or h == 0
	MissingTexture bool // texture named but unresolved; diffuse used instead
}

// FragmentStage rasterizes shaded faces into a surface.
type FragmentStage struct {
	Textures       texture.Resolver // may be nil
	Gamma          float64
	AmbientDamping float64
}

// NewFragmentStage returns a stage with the default gamma and damping.
func NewFragmentStage(textures texture.Resolver) *FragmentStage {
	return &FragmentStage{
		Textures:       textures,
		Gamma:          rgb.MonitorGamma,
		AmbientDamping: AmbientDamping,
	}
}

// Draw rasterizes one face, depth testing each covered pixel. Larger depth
// is nearer; ties keep the existing pixel.
func (fs *FragmentStage) Draw(s *Surface, f ShadedFace) FaceResult {
	var res FaceResult
	tri := f.Triangle
	mtl := f.Material
	if mtl == nil {
		mtl = mesh.DefaultMaterial(mesh.DefaultMaterialName)
	}

	var tex *texture.Texture
	if mtl.Texture != "" {
		if fs.Textures != nil {
			tex = fs.Textures.Resolve(mtl.Texture)
		}
		if tex == nil || tex.Width == 0 || tex.Height == 0 {
			tex = nil
			res.MissingTexture = true
		}
	}

	ts, ok := newTriangleSetup(tri)
	if !ok {
		res.Degenerate = true
		return res
	}

	// Clamp while still float64: a vertex near the eye plane can project
	// beyond the int range.
	p := ts.p
	xmin := clampPixel(math.Floor(min(p[0][0], p[1][0], p[2][0])), 0, s.Width)
	xmax := clampPixel(math.Ceil(max(p[0][0], p[1][0], p[2][0])), -1, s.Width-1)
	ymin := clampPixel(math.Floor(min(p[0][1], p[1][1], p[2][1])), 0, s.Height)
	ymax := clampPixel(math.Ceil(max(p[0][1], p[1][1], p[2][1])), -1, s.Height-1)

	a, b, c := tri[0], tri[1], tri[2]
	gamma := fs.Gamma
	if gamma == 0 {
		gamma = rgb.MonitorGamma
	}
	damping := fs.AmbientDamping

	for y := ymin; y <= ymax; y++ {
		fy := float64(y)
		for x := xmin; x <= xmax; x++ {
			alpha, beta, gam := ts.weights(float64(x), fy)
			if !ts.covers(alpha, beta, gam) {
				continue
			}

			z := alpha*a.Z + beta*b.Z + gam*c.Z
			if z <= s.DepthAt(x, y) {
				continue
			}
			s.SetDepth(x, y, z)

			kd := mtl.Diffuse
			if tex != nil {
				u, v := tri.uv(beta, gam)
				kd = rgb.FromColor(SampleNearest(tex, u, v))
			}

			ka := mtl.Ambient.Mul(kd).Scale(damping)
			light := a.Light.Scale(alpha).Add(b.Light.Scale(beta)).Add(c.Light.Scale(gam))
			s.Set(x, y, ka.Add(light.Mul(kd)).Bytes(gamma))
			res.Fragments++
		}
	}
	return res
}

// uv interpolates texture coordinates at screen barycentrics beta and gamma,
// correcting for perspective.
func (tri ShadedTriangle) uv(beta, gamma float64) (float64, float64) {
	a, b, c := tri[0], tri[1], tri[2]
	bw, gw := perspectiveWeights(a.H, b.H, c.H, beta, gamma)
	aw := 1 - bw - gw
	return aw*a.U + bw*b.U + gw*c.U, aw*a.V + bw*b.V + gw*c.V
}

// perspectiveWeights converts screen-space barycentrics beta and gamma into
// weights that are linear in camera space, given each vertex's h.
func perspectiveWeights(ha, hb, hc, beta, gamma float64) (float64, float64) {
	d := hb*hc + hc*beta*(ha-hb) + hb*gamma*(ha-hc)
	if d == 0 {
		return beta, gamma
	}
	return ha * hc * beta / d, ha * hb * gamma / d
}

// clampPixel limits v to [lo, hi] before converting to int. A box that
// misses the surface clamps to an empty range.
func clampPixel(v float64, lo, hi int) int {
	return int(min(max(v, float64(lo)), float64(hi)))
}
