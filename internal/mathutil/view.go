package mathutil

// ViewVolume bounds the perspective frustum in camera space. Near and Far
// are negative because the camera looks down -w.
type ViewVolume struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	Near   float64 `json:"near"`
	Far    float64 `json:"far"`
}

// DefaultViewVolume is a 4:3 frustum between z=-4 and z=-6.
func DefaultViewVolume() ViewVolume {
	return ViewVolume{Left: -1, Right: 1, Bottom: -0.75, Top: 0.75, Near: -4, Far: -6}
}

// IsZero reports whether no bound has been set.
func (vv ViewVolume) IsZero() bool {
	return vv == ViewVolume{}
}

// Viewport maps the canonical square [-1,1]² onto an nx×ny pixel grid
// whose pixel centers sit on integer coordinates.
func Viewport(nx, ny int) Mat4 {
	fx, fy := float64(nx), float64(ny)
	return Mat4{
		fx / 2, 0, 0, (fx - 1) / 2,
		0, fy / 2, 0, (fy - 1) / 2,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective maps the view volume to the canonical cube. The fourth row
// copies camera-space z into h.
func Perspective(vv ViewVolume) Mat4 {
	r, l, t, b, n, f := vv.Right, vv.Left, vv.Top, vv.Bottom, vv.Near, vv.Far
	return Mat4{
		2 * n / (r - l), 0, (l + r) / (l - r), 0,
		0, 2 * n / (t - b), (b + t) / (b - t), 0,
		0, 0, (f + n) / (n - f), 2 * f * n / (f - n),
		0, 0, 1, 0,
	}
}

// CameraBasis is an orthonormal frame (U right, V up, W backward) at eye E.
type CameraBasis struct {
	U, V, W, E Vec3
}

// NewCameraBasis aims a camera at eye toward the world origin.
func NewCameraBasis(eye Vec3) CameraBasis {
	w := eye.Normalize()
	var u Vec3
	if w[2] <= 0 {
		t := Vec3{w[0], w[1], 1}
		u = t.Cross(w).Normalize()
	} else {
		t := Vec3{w[0], w[1], -1}
		u = w.Cross(t).Normalize()
	}
	v := w.Cross(u).Normalize()
	return CameraBasis{U: u, V: v, W: w, E: eye}
}

// Transform returns the world-to-camera matrix.
func (b CameraBasis) Transform() Mat4 {
	rot := Mat4{
		b.U[0], b.U[1], b.U[2], 0,
		b.V[0], b.V[1], b.V[2], 0,
		b.W[0], b.W[1], b.W[2], 0,
		0, 0, 0, 1,
	}
	return Mat4Mul(rot, Translate(b.E.Neg()))
}

// ViewTransforms carries the two matrices the vertex stage consumes.
type ViewTransforms struct {
	Combined Mat4 // viewport · perspective · camera
	Camera   Mat4
}

// NewViewTransforms composes the transforms for an nx×ny image.
func NewViewTransforms(eye Vec3, vv ViewVolume, nx, ny int) ViewTransforms {
	cam := NewCameraBasis(eye).Transform()
	return ViewTransforms{
		Combined: Mat4Mul(Mat4Mul(Viewport(nx, ny), Perspective(vv)), cam),
		Camera:   cam,
	}
}
