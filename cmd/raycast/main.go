package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/logging"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/raycast"
)

func main() {
	configFile := flag.String("config", "", "Path to a ray-cast config JSON file")
	output := flag.String("output", "", "Output image path (default: raycast_scene.tga)")
	width := flag.Int("width", 0, "Image width (default: 1024)")
	height := flag.Int("height", 0, "Image height (default: 768)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg config.RaycastConfig
	if *configFile != "" {
		var err error
		cfg, err = config.LoadRaycast(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Output: *output, Width: *width, Height: *height})

	if err := raster.CheckSize(cfg.Width, cfg.Height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scene := cfg.Scene()
	fmt.Printf("Ray casting %d shape(s) at %dx%d\n", len(scene.Shapes), cfg.Width, cfg.Height)

	start := time.Now()
	s := raycast.Render(&scene, cfg.Width, cfg.Height)
	fmt.Printf("Render time: %.3fs\n", time.Since(start).Seconds())

	if err := imageio.Save(cfg.Output, s.Image(), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", cfg.Output)
}
