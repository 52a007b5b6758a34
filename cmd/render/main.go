package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mesh-rasterizer/internal/batch"
	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/logging"
	"mesh-rasterizer/internal/texture"
)

type configList []string

func (c *configList) String() string     { return strings.Join(*c, ",") }
func (c *configList) Set(v string) error { *c = append(*c, v); return nil }

func main() {
	// CLI flags
	var configs configList
	flag.Var(&configs, "config", "Path to a scene config JSON file (repeatable)")
	output := flag.String("output", "", "Output image path; extension picks the format (single scene only)")
	width := flag.Int("width", 0, "Image width (default: 1200)")
	height := flag.Int("height", 0, "Image height (default: 900)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	axes := flag.Bool("axes", false, "Draw the world axis gizmo")
	texDir := flag.String("textures", "", "Extra texture search directory")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the run to this path")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()
	configs = append(configs, flag.Args()...)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *output != "" && len(configs) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -output applies to a single scene; set output in each config instead.")
		os.Exit(1)
	}

	flags := config.Flags{
		Output:     *output,
		Width:      *width,
		Height:     *height,
		Workers:    *workers,
		Axes:       *axes,
		TextureDir: *texDir,
	}

	// Load configs; no config renders the built-in defaults with no meshes.
	var jobs []config.Config
	if len(configs) == 0 {
		var cfg config.Config
		cfg.Resolve(flags)
		jobs = append(jobs, cfg)
	}
	for _, path := range configs {
		cfg, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg.Resolve(flags)
		jobs = append(jobs, cfg)
	}

	// Build texture index over every texture dir and mesh dir
	var dirs []string
	for _, j := range jobs {
		if j.TextureDir != "" {
			dirs = append(dirs, j.TextureDir)
		}
		for _, m := range j.Meshes {
			dirs = append(dirs, filepath.Dir(m.Path))
		}
	}
	texIndex := texture.BuildIndex(dirs...)
	texCache := texture.NewCache(texIndex, "")

	fmt.Printf("Mesh rasterizer\n")
	fmt.Printf("Scenes: %d, Workers: %d, Textures: %d indexed\n", len(jobs), jobs[0].Workers, texIndex.Len())
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		TexResolver: texCache,
		Workers:     jobs[0].Workers,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs\n", elapsed.Seconds())

	failed := 0
	for _, r := range results {
		if r.Success {
			fmt.Printf("  %s -> %s (%dx%d, faces %d, drawn %d, degenerate %d, fragments %d, missing textures %d) %.2fs\n",
				r.Name, r.Output, r.Width, r.Height,
				r.Stats.Faces, r.Stats.Drawn, r.Stats.Degenerate, r.Stats.Fragments, r.Stats.MissingTextures,
				r.Duration.Seconds())
		} else {
			failed++
			fmt.Printf("  %s: FAILED: %s\n", r.Name, r.Error)
		}
	}

	if *manifest != "" {
		if err := batch.WriteManifest(*manifest, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", *manifest)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
