// Package imageio writes rendered images in the format named by the output
// path's extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat reports an output extension with no encoder.
var ErrUnknownFormat = errors.New("imageio: unknown format")

// DefaultJPEGQuality is used when Options.Quality is zero.
const DefaultJPEGQuality = 92

// Options tune lossy encoders.
type Options struct {
	Quality int // JPEG quality 1-100
}

// Formats lists the supported output formats.
var Formats = []string{"tga", "webp", "png", "jpeg", "bmp", "tiff", "ppm"}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "tga", "webp", "png", "bmp", "ppm":
		return ext, nil
	case "jpg", "jpeg":
		return "jpeg", nil
	case "tif", "tiff":
		return "tiff", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string, opt *Options) error {
	switch format {
	case "tga":
		return tga.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		q := DefaultJPEGQuality
		if opt != nil && opt.Quality > 0 {
			q = opt.Quality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "ppm":
		return netpbm.Encode(w, img, &netpbm.EncodeOptions{Format: netpbm.PPM, MaxValue: 255})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes img to path, creating parent directories as needed.
func Save(path string, img image.Image, opt *Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("imageio: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}

	if err := Encode(f, img, format, opt); err != nil {
		f.Close()
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imageio: close %s: %w", path, err)
	}
	return nil
}
