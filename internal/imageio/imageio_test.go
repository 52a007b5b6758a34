package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"mesh-rasterizer/internal/texture"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(60 * y), B: 128, A: 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out/scene.tga", "tga"},
		{"scene.WEBP", "webp"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.tif", "tiff"},
		{"a.ppm", "ppm"},
		{"a.bmp", "bmp"},
		{"a.png", "png"},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}

	if _, err := FormatFromPath("scene.gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif error = %v, want ErrUnknownFormat", err)
	}
	if _, err := FormatFromPath("scene"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("no-extension error = %v, want ErrUnknownFormat", err)
	}
}

func TestEncodeLossless(t *testing.T) {
	decoders := map[string]func(io.Reader) (image.Image, error){
		"tga":  tga.Decode,
		"png":  png.Decode,
		"bmp":  bmp.Decode,
		"tiff": tiff.Decode,
		"ppm":  texture.DecodePPM,
	}
	src := sample()
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format, nil); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Bounds().Size() != src.Bounds().Size() {
				t.Fatalf("size = %v, want %v", got.Bounds().Size(), src.Bounds().Size())
			}
			b := got.Bounds()
			for y := 0; y < 4; y++ {
				for x := 0; x < 6; x++ {
					want := src.NRGBAAt(x, y)
					c := color.NRGBAModel.Convert(got.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
					if c.R != want.R || c.G != want.G || c.B != want.B {
						t.Fatalf("(%d,%d) = %v, want %v", x, y, c, want)
					}
				}
			}
		})
	}
}

func TestEncodeLossy(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample(), "jpeg", &Options{Quality: 50}); err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(&buf)
	if err != nil || cfg.Width != 6 || cfg.Height != 4 {
		t.Errorf("jpeg config = %+v, %v", cfg, err)
	}

	buf.Reset()
	if err := Encode(&buf, sample(), "webp", nil); err != nil {
		t.Fatalf("webp: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Errorf("webp output missing RIFF header")
	}
}

func TestEncodeUnknown(t *testing.T) {
	if err := Encode(io.Discard, sample(), "gif", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scene.png")
	if err := Save(path, sample(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved png does not decode: %v", err)
	}

	if err := Save(filepath.Join(t.TempDir(), "scene.gif"), sample(), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif save err = %v, want ErrUnknownFormat", err)
	}
}
