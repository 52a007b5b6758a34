// Package rgb implements real-valued color arithmetic and the gamma-corrected
// conversion to 8-bit channels.
package rgb

import (
	"image/color"
	"math"
)

// MonitorGamma is the display gamma the renderer corrects for.
const MonitorGamma = 2.05

// RGB is a linear color with channels nominally in [0,1].
// Arithmetic does not clamp; call Clamp before conversion.
type RGB [3]float64

// Grey returns an RGB with all channels set to v.
func Grey(v float64) RGB {
	return RGB{v, v, v}
}

func (a RGB) Add(b RGB) RGB {
	return RGB{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Mul multiplies component-wise.
func (a RGB) Mul(b RGB) RGB {
	return RGB{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func (a RGB) Scale(s float64) RGB {
	return RGB{a[0] * s, a[1] * s, a[2] * s}
}

// Clamp limits every channel to [0,1].
func (a RGB) Clamp() RGB {
	return RGB{clamp01(a[0]), clamp01(a[1]), clamp01(a[2])}
}

// Bytes clamps the color, applies inverse gamma and returns an opaque
// 8-bit color.
func (a RGB) Bytes(gamma float64) color.RGBA {
	return color.RGBA{
		R: Channel(a[0], gamma),
		G: Channel(a[1], gamma),
		B: Channel(a[2], gamma),
		A: 255,
	}
}

// Channel converts one intensity to a byte: round(255 * v^(1/gamma)),
// with v clamped to [0,1] first. A gamma of 1 (or less) skips the power.
func Channel(v, gamma float64) uint8 {
	v = clamp01(v)
	if gamma > 1 {
		v = math.Pow(v, 1/gamma)
	}
	return clamp255(math.Round(v * 255))
}

// FromColor converts an 8-bit color to linear [0,1] channels without any
// gamma decoding.
func FromColor(c color.RGBA) RGB {
	return RGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
