package texture

import (
	"image"
	"image/color"
)

// Texture is a decoded RGB image. Rows are stored bottom-to-top so that
// sample (0,0) is the bottom-left texel, matching v increasing upward.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, len = Width*Height*3
}

// New allocates a black texture.
func New(name string, w, h int) *Texture {
	return &Texture{Name: name, Width: w, Height: h, Pix: make([]uint8, w*h*3)}
}

// FromImage copies img into a Texture, flipping rows and dropping alpha.
func FromImage(name string, img image.Image) *Texture {
	b := img.Bounds()
	t := New(name, b.Dx(), b.Dy())

	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < t.Height; y++ {
			src := n.Pix[(y)*n.Stride:]
			dst := t.Pix[(t.Height-1-y)*t.Width*3:]
			for x := 0; x < t.Width; x++ {
				dst[x*3] = src[x*4]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}
		return t
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := t.Height - 1 - (y - b.Min.Y)
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := (row*t.Width + (x - b.Min.X)) * 3
			t.Pix[i], t.Pix[i+1], t.Pix[i+2] = c.R, c.G, c.B
		}
	}
	return t
}

// At returns the texel at (x, y) with y counted from the bottom row.
func (t *Texture) At(x, y int) color.RGBA {
	i := (y*t.Width + x) * 3
	return color.RGBA{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: 255}
}

// Set writes the texel at (x, y) with y counted from the bottom row.
func (t *Texture) Set(x, y int, c color.RGBA) {
	i := (y*t.Width + x) * 3
	t.Pix[i], t.Pix[i+1], t.Pix[i+2] = c.R, c.G, c.B
}

// Image converts back to a conventional top-down image.
func (t *Texture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		src := t.Pix[(t.Height-1-y)*t.Width*3:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < t.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}
