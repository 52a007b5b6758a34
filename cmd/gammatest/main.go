package main

import (
	"flag"
	"fmt"
	"os"

	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/rgb"
)

// The left half is 50% grey after inverse gamma; the right half is a
// one-pixel black/white checkerboard. On a monitor with matching gamma the
// two halves look equally bright from a distance.
func main() {
	gamma := flag.Float64("gamma", 2.2, "Monitor gamma to test")
	output := flag.String("output", "gamma_test.tga", "Output image path")
	width := flag.Int("width", 1000, "Image width")
	height := flag.Int("height", 500, "Image height")
	flag.Parse()

	if err := raster.CheckSize(*width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	s := raster.NewSurface(*width, *height)
	grey := rgb.Grey(0.5).Bytes(*gamma)
	black := rgb.Grey(0).Bytes(1)
	white := rgb.Grey(1).Bytes(1)

	half := *width / 2
	for y := 0; y < *height; y++ {
		for x := 0; x < *width; x++ {
			switch {
			case x < half:
				s.Set(x, y, grey)
			case (x+y)%2 == 0:
				s.Set(x, y, black)
			default:
				s.Set(x, y, white)
			}
		}
	}

	if err := imageio.Save(*output, s.Image(), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("gamma %.2f: grey level %d, wrote %s\n", *gamma, grey.R, *output)
}
