package rgb

import (
	"image/color"
	"math"
	"testing"
)

func TestChannelGamma(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		gamma float64
		want  uint8
	}{
		{"half at monitor gamma", 0.5, MonitorGamma, uint8(math.Round(255 * math.Pow(0.5, 1/MonitorGamma)))},
		{"half at 2.2", 0.5, 2.2, uint8(math.Round(255 * math.Pow(0.5, 1/2.2)))},
		{"half linear", 0.5, 1, 128},
		{"zero", 0, MonitorGamma, 0},
		{"one", 1, MonitorGamma, 255},
		{"over range clamps", 3.5, MonitorGamma, 255},
		{"negative clamps", -0.2, MonitorGamma, 0},
		{"nan is black", math.NaN(), MonitorGamma, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Channel(tt.v, tt.gamma); got != tt.want {
				t.Errorf("Channel(%v, %v) = %d, want %d", tt.v, tt.gamma, got, tt.want)
			}
		})
	}
}

func TestChannelHalfIsMidGrey(t *testing.T) {
	// 0.5^(1/2.05) ≈ 0.7132, so the byte must land at 182.
	if got := Channel(0.5, MonitorGamma); got != 182 {
		t.Errorf("Channel(0.5, 2.05) = %d, want 182", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := RGB{0.25, 0.5, 0.75}
	b := RGB{0.5, 0.5, 2}

	if got := a.Add(b); got != (RGB{0.75, 1, 2.75}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Mul(b); got != (RGB{0.125, 0.25, 1.5}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Add(b).Clamp(); got != (RGB{0.75, 1, 1}) {
		t.Errorf("Clamp = %v", got)
	}
}

func TestBytesAndFromColor(t *testing.T) {
	c := color.RGBA{R: 255, G: 0, B: 51, A: 255}
	got := FromColor(c).Bytes(1)
	if got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}
