package postprocess

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionMargin = 4

// Caption stamps lines of text into the top-left corner of img over a
// translucent backing box. It draws in place and returns img.
func Caption(img *image.NRGBA, lines []string, fg color.Color) *image.NRGBA {
	if len(lines) == 0 {
		return img
	}

	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}

	b := img.Bounds()
	box := image.Rect(b.Min.X, b.Min.Y,
		b.Min.X+width+2*captionMargin, b.Min.Y+lineH*len(lines)+2*captionMargin).Intersect(b)
	draw.Draw(img, box, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(b.Min.X+captionMargin, b.Min.Y+captionMargin+face.Metrics().Ascent.Ceil()+i*lineH)
		d.DrawString(l)
	}
	return img
}
