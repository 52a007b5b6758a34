package raycast

import (
	"math"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/rgb"
)

// Hit describes the nearest intersection along a ray.
type Hit struct {
	T      float64
	Point  mathutil.Vec3
	Normal mathutil.Vec3
	Color  rgb.RGB
}

// Shape is anything a ray can hit.
type Shape interface {
	Hit(r Ray, tMin, tMax float64) (Hit, bool)
}

// Sphere is a solid-colored sphere.
type Sphere struct {
	Center mathutil.Vec3
	Radius float64
	Color  rgb.RGB
}

// Hit solves the ray-sphere quadratic and returns the nearest root in
// [tMin, tMax].
func (s Sphere) Hit(r Ray, tMin, tMax float64) (Hit, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(disc)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Hit{}, false
		}
	}

	p := r.At(root)
	return Hit{
		T:      root,
		Point:  p,
		Normal: p.Sub(s.Center).Scale(1 / s.Radius),
		Color:  s.Color,
	}, true
}

// Triangle is a solid-colored triangle.
type Triangle struct {
	A, B, C mathutil.Vec3
	Color   rgb.RGB
}

// Hit solves a + β(b-a) + γ(c-a) = e + t·d with Cramer's rule.
func (tr Triangle) Hit(r Ray, tMin, tMax float64) (Hit, bool) {
	ab := tr.A.Sub(tr.B)
	ac := tr.A.Sub(tr.C)
	ae := tr.A.Sub(r.Origin)

	m := mathutil.Mat3Cols(ab, ac, r.Dir).Det()
	if m == 0 {
		return Hit{}, false
	}

	t := mathutil.Mat3Cols(ab, ac, ae).Det() / m
	if t < tMin || t > tMax {
		return Hit{}, false
	}
	gamma := mathutil.Mat3Cols(ab, ae, r.Dir).Det() / m
	if gamma < 0 || gamma > 1 {
		return Hit{}, false
	}
	beta := mathutil.Mat3Cols(ae, ac, r.Dir).Det() / m
	if beta < 0 || beta > 1-gamma {
		return Hit{}, false
	}

	return Hit{
		T:      t,
		Point:  r.At(t),
		Normal: tr.B.Sub(tr.A).Cross(tr.C.Sub(tr.A)).Normalize(),
		Color:  tr.Color,
	}, true
}

// Nearest returns the closest hit among shapes.
func Nearest(shapes []Shape, r Ray, tMin, tMax float64) (Hit, bool) {
	var best Hit
	found := false
	for _, s := range shapes {
		if h, ok := s.Hit(r, tMin, tMax); ok {
			best, found = h, true
			tMax = h.T
		}
	}
	return best, found
}
