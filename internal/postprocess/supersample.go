package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample filters img down to w×h with CatmullRom. The scaler reads
// premultiplied colors and the NRGBA destination unpremultiplies on store, so
// translucent edges do not darken. Images already within w×h are returned
// unchanged.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Thumbnail scales img so its longer side is maxDim, keeping aspect ratio.
func Thumbnail(img *image.NRGBA, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || w == 0 || h == 0 {
		return img
	}
	if w >= h {
		return Downsample(img, maxDim, max(1, h*maxDim/w))
	}
	return Downsample(img, max(1, w*maxDim/h), maxDim)
}
