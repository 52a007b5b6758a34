package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/texture"
)

// texconvert decodes textures in any supported format (TGA, PPM, PNG,
// JPEG, BMP, TIFF) and re-encodes them, by default as PNG next to the input.
func main() {
	format := flag.String("format", "png", "Output format: "+strings.Join(imageio.Formats, ", "))
	outDir := flag.String("out", "", "Output directory (default: alongside each input)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texconvert [-format png] [-out dir] texture...")
		os.Exit(2)
	}

	errors := 0
	for _, src := range flag.Args() {
		if err := convert(src, *format, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}

func convert(src, format, outDir string) error {
	tex, err := texture.Load(src)
	if err != nil {
		return err
	}

	dir := filepath.Dir(src)
	if outDir != "" {
		dir = outDir
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dst := filepath.Join(dir, stem+"."+format)
	if dst == src {
		return fmt.Errorf("%s: output would overwrite input", src)
	}

	if err := imageio.Save(dst, tex.Image(), nil); err != nil {
		return err
	}
	fmt.Printf("OK  %s -> %s  (%dx%d)\n", src, dst, tex.Width, tex.Height)
	return nil
}
