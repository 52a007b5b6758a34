package raster

import "math"

// edge is the implicit line a·x + b·y + c = 0 through two projected vertices.
type edge struct {
	a, b, c float64
}

func newEdge(p, q [2]float64) edge {
	return edge{
		a: p[1] - q[1],
		b: q[0] - p[0],
		c: p[0]*q[1] - q[0]*p[1],
	}
}

func (e edge) eval(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

// ownershipPoints are off-surface points used to break ties on shared
// edges. The first point not on the edge's line decides.
var ownershipPoints = [...][2]float64{{-1, -1}, {-1, -2}, {-2, -1}}

// owns is the edge ownership test. ref is the edge evaluated at the opposite
// vertex. A pixel lying exactly on the edge belongs to this triangle iff the
// opposite vertex and the ownership point are on the same side. Two triangles
// sharing an edge have their opposite vertices on different sides, so
// exactly one of them owns it.
func (e edge) owns(ref float64) bool {
	for _, p := range ownershipPoints {
		if v := e.eval(p[0], p[1]); v != 0 {
			return ref*v > 0
		}
	}
	return false
}

// covered applies the fill rule to one barycentric coordinate.
func covered(c float64, owned bool) bool {
	return c > 0 || (c == 0 && owned)
}

// triangleSetup holds the projected vertices and edge functions of one
// triangle. Edge i is opposite vertex i.
type triangleSetup struct {
	p     [3][2]float64
	edges [3]edge
	ref   [3]float64 // edge i evaluated at vertex i
	owned [3]bool
}

// newTriangleSetup projects tri to the screen. It reports false when a
// vertex has h == 0 or the triangle has no usable area.
func newTriangleSetup(tri ShadedTriangle) (triangleSetup, bool) {
	var ts triangleSetup
	for i, v := range tri {
		if v.Coord.H() == 0 {
			return ts, false
		}
		ts.p[i] = [2]float64{v.Coord[0] / v.Coord.H(), v.Coord[1] / v.Coord.H()}
	}
	for i := range 3 {
		j, k := (i+1)%3, (i+2)%3
		ts.edges[i] = newEdge(ts.p[j], ts.p[k])
		ts.ref[i] = ts.edges[i].eval(ts.p[i][0], ts.p[i][1])
		if !usable(ts.ref[i]) {
			return ts, false
		}
		ts.owned[i] = ts.edges[i].owns(ts.ref[i])
	}
	return ts, true
}

// weights returns the screen-space barycentric coordinates of (x, y).
func (ts *triangleSetup) weights(x, y float64) (alpha, beta, gamma float64) {
	return ts.edges[0].eval(x, y) / ts.ref[0],
		ts.edges[1].eval(x, y) / ts.ref[1],
		ts.edges[2].eval(x, y) / ts.ref[2]
}

func (ts *triangleSetup) covers(alpha, beta, gamma float64) bool {
	return covered(alpha, ts.owned[0]) && covered(beta, ts.owned[1]) && covered(gamma, ts.owned[2])
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
