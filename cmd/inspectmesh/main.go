package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/texture"
)

func main() {
	texDir := flag.String("textures", "", "Extra texture search directory")
	flag.Parse()

	failed := 0
	for _, arg := range flag.Args() {
		m, err := mesh.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed++
			continue
		}

		dirs := []string{filepath.Dir(arg)}
		if *texDir != "" {
			dirs = append(dirs, *texDir)
		}
		cache := texture.NewCache(texture.BuildIndex(dirs...), "")

		fmt.Printf("\n=== %s (verts=%d normals=%d uvs=%d faces=%d) ===\n",
			arg, len(m.Verts), len(m.Normals), len(m.UVs), len(m.Faces))

		lo, hi := m.Bounds()
		fmt.Printf("  bounds x=[%.3f..%.3f] y=[%.3f..%.3f] z=[%.3f..%.3f]\n",
			lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])

		printMaterials(m, cache)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func printMaterials(m *mesh.Mesh, cache *texture.Cache) {
	counts := make(map[*mesh.Material]int)
	for _, f := range m.Faces {
		counts[f.Material]++
	}

	names := make([]string, 0, len(m.Materials))
	for name := range m.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mtl := m.Materials[name]
		texInfo := "-"
		if mtl.Texture != "" {
			texInfo = "MISSING " + mtl.Texture
			if tex := cache.Resolve(mtl.Texture); tex != nil {
				texInfo = fmt.Sprintf("%s %dx%d", mtl.Texture, tex.Width, tex.Height)
			}
		}
		fmt.Printf("  Material %-16s faces=%-6d Ka=%.2f Kd=%.2f tex=%s\n",
			name, counts[mtl], mtl.Ambient, mtl.Diffuse, texInfo)
	}
}
