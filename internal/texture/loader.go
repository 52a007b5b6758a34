package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Load decodes a TGA, PPM, PNG, JPEG, BMP or TIFF file into a Texture named
// after its base file name.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := Decode(bufio.NewReader(f), path)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	tex := FromImage(filepath.Base(path), img)
	logger().Debug("texture loaded", "path", path, "format", format, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// Decode picks a decoder from the file extension of name and falls back to
// format sniffing. TGA has no magic number, so it is never sniffed.
func Decode(r io.Reader, name string) (image.Image, string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		img, err := tga.Decode(r)
		return img, "tga", err
	case ".ppm", ".pnm":
		img, err := DecodePPM(r)
		return img, "ppm", err
	case ".png":
		img, err := png.Decode(r)
		return img, "png", err
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(r)
		return img, "jpeg", err
	case ".bmp":
		img, err := bmp.Decode(r)
		return img, "bmp", err
	case ".tif", ".tiff":
		img, err := tiff.Decode(r)
		return img, "tiff", err
	default:
		return image.Decode(r)
	}
}
