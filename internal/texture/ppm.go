package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/spakin/netpbm"
)

// ErrPPMFormat reports a malformed or oversized PPM stream.
var ErrPPMFormat = errors.New("texture: invalid ppm")

// MaxPixels caps the area a texture header may declare, checked before any
// pixel buffer is allocated.
const MaxPixels = 1 << 26

// DecodePPM reads a binary (P6) or ASCII (P3) portable pixmap. Other
// netpbm flavors are rejected.
func DecodePPM(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPPMFormat, err)
	}
	if _, err := DecodePPMConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	img, err := netpbm.Decode(bytes.NewReader(data), &netpbm.DecodeOptions{Target: netpbm.PPM})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPPMFormat, err)
	}
	return img, nil
}

// DecodePPMConfig returns the dimensions without reading pixel data.
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: magic: %v", ErrPPMFormat, err)
	}
	if m := string(magic); m != "P3" && m != "P6" {
		return image.Config{}, fmt.Errorf("%w: magic %q", ErrPPMFormat, m)
	}
	cfg, err := netpbm.DecodeConfig(br)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: header: %v", ErrPPMFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return image.Config{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrPPMFormat, cfg.Width, cfg.Height, MaxPixels)
	}
	return cfg, nil
}
